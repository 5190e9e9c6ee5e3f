package maze

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Grid owns length*height cells laid out row-major: id = row*Length + column.
type Grid struct {
	Length, Height int
	Cells          []Cell
}

func NewGrid(length, height int) (*Grid, error) {
	if length <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (length = %d, height = %d)",
			ErrInvalidDimension, length, height)
	}
	g := &Grid{
		Length: length,
		Height: height,
		Cells:  make([]Cell, length*height),
	}
	for i := range g.Cells {
		g.Cells[i].ID = i
	}
	return g, nil
}

func (g *Grid) Size() int {
	return g.Length * g.Height
}

func (g *Grid) Index(row, column int) int {
	return row*g.Length + column
}

func (g *Grid) Coordinate(id int) (row, column int) {
	return id / g.Length, id % g.Length
}

func (g *Grid) InBounds(id int) bool {
	return 0 <= id && id < g.Size()
}

func (g *Grid) Cell(id int) (*Cell, error) {
	if !g.InBounds(id) {
		return nil, fmt.Errorf("%w: cell %d of %d", ErrIndexOutOfBounds, id, g.Size())
	}
	return &g.Cells[id], nil
}

func (g *Grid) CellAt(row, column int) (*Cell, error) {
	if row < 0 || row >= g.Height || column < 0 || column >= g.Length {
		return nil, fmt.Errorf("%w: %d:%d in %dx%d",
			ErrIndexOutOfBounds, row, column, g.Length, g.Height)
	}
	return &g.Cells[g.Index(row, column)], nil
}

func (g *Grid) Row(n int) ([]*Cell, error) {
	if n < 0 || n >= g.Height {
		return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfBounds, n, g.Height)
	}
	row := make([]*Cell, 0, g.Length)
	for column := range g.Length {
		row = append(row, &g.Cells[g.Index(n, column)])
	}
	return row, nil
}

func (g *Grid) Column(n int) ([]*Cell, error) {
	if n < 0 || n >= g.Length {
		return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfBounds, n, g.Length)
	}
	column := make([]*Cell, 0, g.Height)
	for row := range g.Height {
		column = append(column, &g.Cells[g.Index(row, n)])
	}
	return column, nil
}

func (g *Grid) Rows() [][]*Cell {
	rows := make([][]*Cell, g.Height)
	for n := range g.Height {
		rows[n], _ = g.Row(n)
	}
	return rows
}

func (g *Grid) Columns() [][]*Cell {
	columns := make([][]*Cell, g.Length)
	for n := range g.Length {
		columns[n], _ = g.Column(n)
	}
	return columns
}

/*
Neighbor returns the id of the cell next to id in direction d. East and
West must stay on the row of id, otherwise east of the last column would
wrap onto the next row (and on a single column land on the cell below).
North and South only need to stay inside the grid.
*/
func (g *Grid) Neighbor(id int, d Direction) (int, bool) {
	if !g.InBounds(id) {
		return 0, false
	}
	var candidate int
	switch d {
	case North:
		candidate = id - g.Length
	case South:
		candidate = id + g.Length
	case East:
		candidate = id + 1
	case West:
		candidate = id - 1
	default:
		return 0, false
	}
	if !g.InBounds(candidate) {
		return 0, false
	}
	if d == East || d == West {
		row, _ := g.Coordinate(id)
		if crow, _ := g.Coordinate(candidate); crow != row {
			return 0, false
		}
	}
	return candidate, true
}

func (g *Grid) link(a int, d Direction, b int) {
	g.Cells[a].Slots[d] = Slot{State: Link, To: b}
	g.Cells[b].Slots[d.Reverse()] = Slot{State: Link, To: a}
}

func (g *Grid) wall(a int, d Direction) {
	g.Cells[a].Slots[d] = Slot{State: Wall}
	if b, ok := g.Neighbor(a, d); ok {
		g.Cells[b].Slots[d.Reverse()] = Slot{State: Wall}
	}
}

// Edges counts Link edges, each one once.
func (g *Grid) Edges() (count int) {
	for i := range g.Cells {
		for _, s := range g.Cells[i].Slots {
			if s.State == Link && s.To > i {
				count++
			}
		}
	}
	return
}

// Validate checks that every slot is resolved and every link is mirrored by
// the neighbour it points to.
func (g *Grid) Validate() error {
	for i := range g.Cells {
		c := &g.Cells[i]
		for _, d := range Directions {
			s := c.Slots[d]
			switch s.State {
			case Unset:
				return fmt.Errorf("%w: cell %d %s", ErrUnresolvedSlot, i, d)
			case Link:
				n, ok := g.Neighbor(i, d)
				if !ok || n != s.To {
					return fmt.Errorf("%w: cell %d %s points to %d", ErrBrokenLink, i, d, s.To)
				}
				back := g.Cells[n].Slots[d.Reverse()]
				if back.State != Link || back.To != i {
					return fmt.Errorf("%w: cell %d %s -> %d", ErrBrokenLink, i, d, n)
				}
			}
		}
	}
	return nil
}
