package maze

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type aerateParams struct {
	uniform bool
}

type AerateOption = func(*aerateParams)

// UniformWalls makes every interior wall of the grid equally likely to be
// removed. By default a random cell is picked first and then one of its
// walls, which favours walls of cells that have few of them.
func UniformWalls() AerateOption {
	return func(p *aerateParams) { p.uniform = true }
}

// interiorWalls lists the directions of c that are walls with a cell behind
// them. Boundary walls are never removed.
func (g *Grid) interiorWalls(c *Cell) (dirs []Direction) {
	for _, d := range Directions {
		if c.Slots[d].State != Wall {
			continue
		}
		if _, ok := g.Neighbor(c.ID, d); ok {
			dirs = append(dirs, d)
		}
	}
	return
}

// aerateOne removes one wall using the per-cell pick. It scans every cell at
// most once, so a grid without interior walls fails instead of spinning.
func (g *Grid) aerateOne(r *rand.Rand) (int, Direction, error) {
	for _, id := range r.Perm(g.Size()) {
		c := &g.Cells[id]
		if len(g.interiorWalls(c)) == 0 {
			continue
		}
		order := Directions
		r.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, d := range order {
			if c.Slots[d].State != Wall {
				continue
			}
			if neighbor, ok := g.Neighbor(id, d); ok {
				g.link(id, d, neighbor)
				return id, d, nil
			}
		}
	}
	return 0, 0, ErrWallsExhausted
}

type wallRef struct {
	id int
	d  Direction
}

// aerateUniform removes up to n walls, each picked uniformly among the
// interior walls still standing. Each wall is listed once, from the cell with
// the lower id.
func (g *Grid) aerateUniform(r *rand.Rand, n int) (opened int, err error) {
	candidates := make([]wallRef, 0)
	for i := range g.Cells {
		for _, d := range g.interiorWalls(&g.Cells[i]) {
			if neighbor, _ := g.Neighbor(i, d); neighbor > i {
				candidates = append(candidates, wallRef{i, d})
			}
		}
	}

	/*
	 * Pick n off the list at random; removed walls are replaced by the
	 * last candidate.
	 */
	k := len(candidates)
	for opened < n {
		if k == 0 {
			return opened, ErrWallsExhausted
		}
		i := r.IntN(k)
		w := candidates[i]
		neighbor, _ := g.Neighbor(w.id, w.d)
		g.link(w.id, w.d, neighbor)
		opened++
		k--
		candidates[i] = candidates[k]
	}
	return opened, nil
}

/*
Aerate removes n walls from a generated maze, turning each into a link and
so adding a cycle per wall. Every round picks its wall afresh. It returns
how many walls were removed; when the grid runs out of interior walls it
stops early with [ErrWallsExhausted].
*/
func Aerate(g *Grid, r *rand.Rand, n int, opts ...AerateOption) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: n = %d", ErrInvalidCount, n)
	}
	params := &aerateParams{}
	for _, op := range opts {
		op(params)
	}

	log := Log.WithFields(logrus.Fields{
		"op": "aerate", "n": n, "uniform": params.uniform,
	})

	if params.uniform {
		opened, err := g.aerateUniform(r, n)
		log.WithField("opened", opened).Debug("aerated")
		return opened, err
	}

	for opened := range n {
		id, d, err := g.aerateOne(r)
		if err != nil {
			log.WithField("opened", opened).Debug("walls exhausted")
			return opened, err
		}
		log.WithFields(logrus.Fields{"cell": id, "direction": d}).Debug("wall removed")
	}
	return n, nil
}
