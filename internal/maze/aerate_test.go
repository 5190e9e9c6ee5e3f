package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAerateAddsEdges(t *testing.T) {
	r := newRand()
	g := generated(t, 5, 5, r)

	opened, err := Aerate(g, r, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, opened)
	assert.Equal(t, 24+3, g.Edges())
	require.NoError(t, g.Validate())

	for i := range 5 {
		opened, err := Aerate(g, r, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, opened)
		assert.Equal(t, 24+3+i+1, g.Edges())
		assert.True(t, connected(g))
	}
}

func TestAerateInvalidCount(t *testing.T) {
	r := newRand()
	g := generated(t, 3, 3, r)
	for _, n := range []int{0, -2} {
		opened, err := Aerate(g, r, n)
		assert.ErrorIs(t, err, ErrInvalidCount)
		assert.Zero(t, opened)
	}
	assert.Equal(t, 8, g.Edges())
}

func TestAerateExhausted(t *testing.T) {
	tests := []struct {
		name string
		opts []AerateOption
	}{
		{"per cell", nil},
		{"uniform", []AerateOption{UniformWalls()}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := newRand()
			g := generated(t, 3, 3, r)

			// a 3x3 grid has 12 adjacent pairs, the tree uses 8 of them
			opened, err := Aerate(g, r, 10, test.opts...)
			assert.ErrorIs(t, err, ErrWallsExhausted)
			assert.Equal(t, 4, opened)
			assert.Equal(t, 12, g.Edges())
			require.NoError(t, g.Validate())

			opened, err = Aerate(g, r, 1, test.opts...)
			assert.ErrorIs(t, err, ErrWallsExhausted)
			assert.Zero(t, opened)

			// the outer boundary stays closed
			for _, c := range g.Rows()[0] {
				assert.Equal(t, Wall, c.Slot(North).State)
			}
			for _, c := range g.Columns()[2] {
				assert.Equal(t, Wall, c.Slot(East).State)
			}
		})
	}
}

func TestAerateSingleCell(t *testing.T) {
	r := newRand()
	g := generated(t, 1, 1, r)
	opened, err := Aerate(g, r, 1)
	assert.ErrorIs(t, err, ErrWallsExhausted)
	assert.Zero(t, opened)
}

func TestAerateUniform(t *testing.T) {
	r := newRand()
	g := generated(t, 6, 4, r)
	opened, err := Aerate(g, r, 5, UniformWalls())
	require.NoError(t, err)
	assert.Equal(t, 5, opened)
	assert.Equal(t, 23+5, g.Edges())
	require.NoError(t, g.Validate())
}

func TestAerateDeterministic(t *testing.T) {
	build := func() *Grid {
		g, err := NewGrid(9, 9)
		require.NoError(t, err)
		require.NoError(t, Generate(g, rand.New(rand.NewPCG(3, 0))))
		_, err = Aerate(g, rand.New(rand.NewPCG(3, 1)), 7)
		require.NoError(t, err)
		return g
	}
	assert.Equal(t, build().Cells, build().Cells)
}

func TestAerateSingleColumnExhausted(t *testing.T) {
	for _, opts := range [][]AerateOption{nil, {UniformWalls()}} {
		g := generated(t, 1, 4, newRand())
		opened, err := Aerate(g, newRand(), 2, opts...)
		assert.ErrorIs(t, err, ErrWallsExhausted)
		assert.Zero(t, opened)
		assert.Equal(t, 3, g.Edges())
	}
}
