package maze

type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

var Directions = [4]Direction{North, South, East, West}

func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Direction implements [fmt.Stringer]
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "?"
	}
}

type SlotState int8

const (
	Unset SlotState = iota // not yet decided by the generator
	Wall
	Link
)

func (s SlotState) String() string {
	switch s {
	case Unset:
		return "unset"
	case Wall:
		return "wall"
	case Link:
		return "link"
	default:
		return "!"
	}
}

// Slot is one side of a cell. To holds the neighbour id and is only
// meaningful when State == Link.
type Slot struct {
	State SlotState
	To    int
}

type Cell struct {
	ID    int
	Slots [4]Slot
}

func (c *Cell) Slot(d Direction) Slot {
	return c.Slots[d]
}

// Unset reports whether no side of the cell has been decided yet.
func (c *Cell) Unset() bool {
	for _, s := range c.Slots {
		if s.State != Unset {
			return false
		}
	}
	return true
}

func (c *Cell) Walls() (dirs []Direction) {
	for _, d := range Directions {
		if c.Slots[d].State == Wall {
			dirs = append(dirs, d)
		}
	}
	return
}

func (c *Cell) Links() (dirs []Direction) {
	for _, d := range Directions {
		if c.Slots[d].State == Link {
			dirs = append(dirs, d)
		}
	}
	return
}
