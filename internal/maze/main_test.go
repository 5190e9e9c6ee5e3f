package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func generated(t *testing.T, length, height int, r *rand.Rand) *Grid {
	t.Helper()
	g, err := NewGrid(length, height)
	if err != nil {
		t.Fatal(err)
	}
	if err := Generate(g, r); err != nil {
		t.Fatal(err)
	}
	return g
}

// open links every pair of adjacent cells and walls off the boundary.
func open(t *testing.T, length, height int) *Grid {
	t.Helper()
	g, err := NewGrid(length, height)
	if err != nil {
		t.Fatal(err)
	}
	for id := range g.Size() {
		for _, d := range Directions {
			if n, ok := g.Neighbor(id, d); ok {
				g.link(id, d, n)
			} else {
				g.wall(id, d)
			}
		}
	}
	return g
}

func connected(g *Grid) bool {
	for id := range g.Size() {
		if _, err := Solve(g, From(0), To(id)); err != nil {
			return false
		}
	}
	return true
}
