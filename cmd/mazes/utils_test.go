package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByPiece(t *testing.T) {
	testCases := []struct {
		input string
		sep   string
		array []string
	}{
		{"a b c", " ", []string{"a", "b", "c"}},
		{"a 2\ns\n\np", "\n", []string{"a 2", "s", "", "p"}},
		{"p", "\n", []string{"p"}},
	}
	for _, test := range testCases {
		var pieces []string
		for i, p := range byPiece(test.input, test.sep) {
			assert.Equal(t, len(pieces), i)
			pieces = append(pieces, p)
		}
		assert.Equal(t, test.array, pieces)
	}
}

func TestByPieceStops(t *testing.T) {
	count := 0
	for range byPiece("a\nb\nc", "\n") {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestSendJSONStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	_, err := sendJSONStatus(rec, 409, map[string]int{"opened": 2})
	assert.NoError(t, err)
	assert.Equal(t, 409, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"opened": 2}`, rec.Body.String())
}
