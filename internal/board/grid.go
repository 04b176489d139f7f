package board

import "github.com/dshills/profitsolve/internal/geom"

// Grid is a dense width*height array of optional cells.
type Grid struct {
	Width, Height int8
	cells         []*Cell
}

// NewGrid allocates an empty grid, each dimension clamped to [0, MaxBoardSize].
func NewGrid(width, height int8) *Grid {
	if width < 0 {
		width = 0
	}
	if width > geom.MaxBoardSize {
		width = geom.MaxBoardSize
	}
	if height < 0 {
		height = 0
	}
	if height > geom.MaxBoardSize {
		height = geom.MaxBoardSize
	}
	return &Grid{Width: width, Height: height, cells: make([]*Cell, int(width)*int(height))}
}

func (g *Grid) inBounds(p geom.Pos) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) index(p geom.Pos) int {
	return int(p.Y)*int(g.Width) + int(p.X)
}

// At returns the cell at p (nil if empty) and whether p is in bounds.
func (g *Grid) At(p geom.Pos) (*Cell, bool) {
	if !g.inBounds(p) {
		return nil, false
	}
	return g.cells[g.index(p)], true
}

// Set writes the cell at p. p must be in bounds.
func (g *Grid) Set(p geom.Pos, c *Cell) {
	g.cells[g.index(p)] = c
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{Width: g.Width, Height: g.Height, cells: make([]*Cell, len(g.cells))}
	for i, c := range g.cells {
		if c == nil {
			continue
		}
		cp := *c
		out.cells[i] = &cp
	}
	return out
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for i, c := range g.cells {
		oc := o.cells[i]
		switch {
		case c == nil && oc == nil:
			continue
		case c == nil || oc == nil:
			return false
		case *c != *oc:
			return false
		}
	}
	return true
}
