package maze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrawSingleCell(t *testing.T) {
	g := generated(t, 1, 1, newRand())
	want := "" +
		"┌───┐\n" +
		"│   │\n" +
		"└───┘\n"
	assert.Equal(t, want, g.String())
}

func TestDrawPath(t *testing.T) {
	g := generated(t, 2, 1, newRand())
	want := "" +
		"┌───────┐\n" +
		"│ •   • │\n" +
		"└───────┘\n"
	assert.Equal(t, want, Draw(g, []int{0, 1}))
}

func TestDrawShape(t *testing.T) {
	g := generated(t, 7, 4, newRand())
	lines := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	assert.Len(t, lines, 2*4+1)
	for _, line := range lines {
		assert.Equal(t, 4*7+1, len([]rune(line)))
	}
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "┘"))
}

func TestDrawSingleColumn(t *testing.T) {
	g := generated(t, 1, 3, newRand())
	want := "" +
		"┌───┐\n" +
		"│   │\n" +
		"│   │\n" +
		"│   │\n" +
		"│   │\n" +
		"│   │\n" +
		"└───┘\n"
	assert.Equal(t, want, g.String())
}

func TestDrawASCII(t *testing.T) {
	g := generated(t, 2, 1, newRand())
	want := "" +
		"+---+---+\n" +
		"| *   * |\n" +
		"+---+---+\n"
	assert.Equal(t, want, DrawStyle(g, []int{0, 1}, ASCII))
}
