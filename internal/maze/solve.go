package maze

import (
	"fmt"
	"slices"
)

type solveParams struct {
	start, finish *int
}

type SolveOption = func(*solveParams)

func From(id int) SolveOption {
	return func(p *solveParams) { p.start = &id }
}

func To(id int) SolveOption {
	return func(p *solveParams) { p.finish = &id }
}

func (g *Grid) endpoints(opts []SolveOption) (start, finish int, err error) {
	params := &solveParams{}
	for _, op := range opts {
		op(params)
	}
	start, finish = 0, g.Size()-1
	if params.start != nil {
		start = *params.start
	}
	if params.finish != nil {
		finish = *params.finish
	}
	if !g.InBounds(start) {
		return 0, 0, fmt.Errorf("%w: start %d", ErrIndexOutOfBounds, start)
	}
	if !g.InBounds(finish) {
		return 0, 0, fmt.Errorf("%w: finish %d", ErrIndexOutOfBounds, finish)
	}
	return
}

// search runs a breadth-first traversal over links only and returns the
// visit order together with the predecessor of every reached cell.
func (g *Grid) search(start, finish int) (trace []int, prev []int, found bool) {
	prev = make([]int, g.Size())
	for i := range prev {
		prev[i] = -1
	}
	seen := make([]bool, g.Size())
	seen[start] = true
	queue := []int{start}

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		trace = append(trace, u)
		if u == finish {
			return trace, prev, true
		}
		for _, s := range g.Cells[u].Slots {
			if s.State != Link || !g.InBounds(s.To) || seen[s.To] {
				continue
			}
			seen[s.To] = true
			prev[s.To] = u
			queue = append(queue, s.To)
		}
	}
	return nil, nil, false
}

/*
Solve walks the maze breadth-first from start (default: cell 0) until it
reaches finish (default: the last cell). The result is every visited cell
in visit order, ending with finish. A breadth-first frontier is used, so
on an aerated maze the trace stops as soon as the nearest route is found.
*/
func Solve(g *Grid, opts ...SolveOption) ([]int, error) {
	start, finish, err := g.endpoints(opts)
	if err != nil {
		return nil, err
	}
	trace, _, found := g.search(start, finish)
	if !found {
		return nil, fmt.Errorf("%w: %d -> %d", ErrPathNotFound, start, finish)
	}
	return trace, nil
}

// ShortestPath returns the cells of a route with the fewest links from start
// to finish, both included.
func ShortestPath(g *Grid, opts ...SolveOption) ([]int, error) {
	start, finish, err := g.endpoints(opts)
	if err != nil {
		return nil, err
	}
	_, prev, found := g.search(start, finish)
	if !found {
		return nil, fmt.Errorf("%w: %d -> %d", ErrPathNotFound, start, finish)
	}
	var path []int
	for at := finish; at != -1; at = prev[at] {
		path = append(path, at)
	}
	slices.Reverse(path)
	return path, nil
}
