package maze

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

type generateParams struct {
	root    int
	hasRoot bool
}

type GenerateOption = func(*generateParams)

// FromRoot starts the traversal at cell id instead of a random one.
func FromRoot(id int) GenerateOption {
	return func(p *generateParams) {
		p.root = id
		p.hasRoot = true
	}
}

// frame is one suspended level of the depth-first traversal.
type frame struct {
	id    int
	order [4]Direction
	next  int
}

func newFrame(id int, r *rand.Rand) frame {
	f := frame{id: id, order: Directions}
	r.Shuffle(len(f.order), func(i, j int) {
		f.order[i], f.order[j] = f.order[j], f.order[i]
	})
	return f
}

/*
Generate carves a perfect maze into g with a randomized depth-first
traversal (recursive backtracker). The recursion is kept on an explicit
stack; directions of a cell are shuffled when the cell is first visited,
which is the order a recursive version would draw them in.

For every direction of the current cell:

  - no neighbour there: the side becomes a wall;
  - the neighbour is unvisited: both sides are linked and the traversal
    descends into it;
  - the neighbour was already visited and no link joins them: both sides
    become walls.

Sides already resolved by a neighbour are left as they are, so every slot
ends as either Wall or Link and the links form a spanning tree.
*/
func Generate(g *Grid, r *rand.Rand, opts ...GenerateOption) error {
	params := &generateParams{}
	for _, op := range opts {
		op(params)
	}

	size := g.Size()
	for i := range g.Cells {
		if !g.Cells[i].Unset() {
			return ErrAlreadyGenerated
		}
	}

	root := params.root
	if !params.hasRoot {
		root = r.IntN(size)
	} else if !g.InBounds(root) {
		return fmt.Errorf("%w: root %d of %d", ErrIndexOutOfBounds, root, size)
	}

	log := Log.WithFields(logrus.Fields{
		"op": "generate", "length": g.Length, "height": g.Height, "root": root,
	})
	log.Debug("carving maze")

	visited := make([]bool, size)
	visited[root] = true
	stack := []frame{newFrame(root, r)}
	depth := 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.order) {
			stack = stack[:len(stack)-1]
			continue
		}
		id, d := top.id, top.order[top.next]
		top.next++

		if g.Cells[id].Slots[d].State != Unset {
			continue
		}
		neighbor, ok := g.Neighbor(id, d)
		switch {
		case !ok:
			g.wall(id, d)
		case !visited[neighbor]:
			g.link(id, d, neighbor)
			visited[neighbor] = true
			stack = append(stack, newFrame(neighbor, r))
			depth = max(depth, len(stack))
		default:
			g.wall(id, d)
		}
	}

	log.WithField("depth", depth).Debug("maze carved")
	return nil
}
