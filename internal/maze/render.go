package maze

import "strings"

// Style selects the characters a maze is drawn with.
type Style struct {
	// corners is indexed by the wall segments meeting at a corner:
	// up = 1, down = 2, left = 4, right = 8.
	corners    [16]string
	horizontal string
	vertical   string
	mark       string
}

var (
	// Pipes draws walls with box-drawing characters.
	Pipes = Style{
		corners: [16]string{
			" ", "╵", "╷", "│", "╴", "┘", "┐", "┤",
			"╶", "└", "┌", "├", "─", "┴", "┬", "┼",
		},
		horizontal: "───",
		vertical:   "│",
		mark:       " • ",
	}
	// ASCII draws walls in plain ASCII with a post at every wall joint.
	ASCII = Style{
		corners: [16]string{
			" ", "+", "+", "+", "+", "+", "+", "+",
			"+", "+", "+", "+", "+", "+", "+", "+",
		},
		horizontal: "---",
		vertical:   "|",
		mark:       " * ",
	}
)

// horizontal reports a wall along the top edge of cell row:column; row may
// be Height for the bottom boundary.
func (g *Grid) horizontal(row, column int) bool {
	if row == 0 || row == g.Height {
		return true
	}
	return g.Cells[g.Index(row, column)].Slots[North].State != Link
}

// vertical reports a wall along the left edge of cell row:column; column may
// be Length for the right boundary.
func (g *Grid) vertical(row, column int) bool {
	if column == 0 || column == g.Length {
		return true
	}
	return g.Cells[g.Index(row, column)].Slots[West].State != Link
}

func (g *Grid) corner(style *Style, row, column int) string {
	i := 0
	if row > 0 && g.vertical(row-1, column) {
		i |= 1
	}
	if row < g.Height && g.vertical(row, column) {
		i |= 2
	}
	if column > 0 && g.horizontal(row, column-1) {
		i |= 4
	}
	if column < g.Length && g.horizontal(row, column) {
		i |= 8
	}
	return style.corners[i]
}

// Draw renders g with box-drawing characters. Cells listed in path are
// marked with a dot. Anything that is not a link is drawn as a wall.
func Draw(g *Grid, path []int) string {
	return DrawStyle(g, path, Pipes)
}

// DrawStyle is Draw with the characters of style.
func DrawStyle(g *Grid, path []int, style Style) string {
	marked := make(map[int]bool, len(path))
	for _, id := range path {
		marked[id] = true
	}

	var b strings.Builder
	for row := 0; row <= g.Height; row++ {
		for column := 0; column <= g.Length; column++ {
			b.WriteString(g.corner(&style, row, column))
			if column == g.Length {
				break
			}
			if g.horizontal(row, column) {
				b.WriteString(style.horizontal)
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
		if row == g.Height {
			break
		}
		for column := 0; column <= g.Length; column++ {
			if g.vertical(row, column) {
				b.WriteString(style.vertical)
			} else {
				b.WriteString(" ")
			}
			if column == g.Length {
				break
			}
			if marked[g.Index(row, column)] {
				b.WriteString(style.mark)
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	return Draw(g, nil)
}
