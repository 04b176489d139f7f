// Package region flood-fills the board into maximal empty-cell
// components separated by obstacles and deposit footprints.
package region

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// Regions is a flat table: every region's deposit ids and empty-cell
// positions are stored contiguously, with Bounds demarcating per-region
// slices. A deposit may appear in more than one region if its perimeter
// touches several.
type Regions struct {
	Deposits []board.ID
	Cells    []geom.Pos
	bounds   []bound
}

type bound struct {
	depositStart, cellStart int
}

// Len returns the number of regions found.
func (r *Regions) Len() int { return len(r.bounds) }

// Region is a read-only view into one region's slice of the flat table.
type Region struct {
	Deposits []board.ID
	Cells    []geom.Pos
}

// Get returns the i'th region's slice view.
func (r *Regions) Get(i int) Region {
	b := r.bounds[i]
	if i+1 < len(r.bounds) {
		n := r.bounds[i+1]
		return Region{Deposits: r.Deposits[b.depositStart:n.depositStart], Cells: r.Cells[b.cellStart:n.cellStart]}
	}
	return Region{Deposits: r.Deposits[b.depositStart:], Cells: r.Cells[b.cellStart:]}
}

func (r *Regions) newRegion() {
	r.bounds = append(r.bounds, bound{depositStart: len(r.Deposits), cellStart: len(r.Cells)})
}

// Find flood-fills scene.Grid's empty cells, stopping at obstacles and
// deposits, producing one region per maximal 4-connected empty-cell
// component. The implementation uses an explicit stack rather than
// recursion so it is safe on a full 100x100 board.
func Find(scene *board.Scene) *Regions {
	w, h := scene.Grid.Width, scene.Grid.Height
	visited := make([]bool, int(w)*int(h))
	idx := func(p geom.Pos) int { return int(p.Y)*int(w) + int(p.X) }

	regions := &Regions{}
	pos := geom.P(0, 0)

	for {
		cellMark, depositMark := len(regions.Cells), len(regions.Deposits)
		regions.newRegion()
		floodFrom(scene, visited, idx, regions, pos)
		if len(regions.Cells) == cellMark {
			// pos was occupied: no empty cell was reached, so drop the region.
			regions.Deposits = regions.Deposits[:depositMark]
			regions.bounds = regions.bounds[:len(regions.bounds)-1]
		}

		next, ok := firstUnvisited(visited, w, h)
		if !ok {
			break
		}
		pos = next
	}

	return regions
}

func firstUnvisited(visited []bool, w, h int8) (geom.Pos, bool) {
	for y := int8(0); y < h; y++ {
		for x := int8(0); x < w; x++ {
			if !visited[int(y)*int(w)+int(x)] {
				return geom.P(x, y), true
			}
		}
	}
	return geom.Pos{}, false
}

func floodFrom(scene *board.Scene, visited []bool, idx func(geom.Pos) int, regions *Regions, start geom.Pos) {
	seenDeposit := map[board.ID]bool{}
	stack := []geom.Pos{start}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= scene.Grid.Width || p.Y < 0 || p.Y >= scene.Grid.Height {
			continue
		}

		cell, _ := scene.Grid.At(p)
		if cell != nil {
			b := scene.Buildings.Get(cell.Owner)
			switch b.Kind {
			case board.KindDeposit:
				if !seenDeposit[cell.Owner] {
					seenDeposit[cell.Owner] = true
					regions.Deposits = append(regions.Deposits, cell.Owner)
				}
				markFootprint(visited, idx, scene, b)
			case board.KindObstacle:
				markFootprint(visited, idx, scene, b)
			default:
				// Region discovery runs before the solver places anything
				// else on the board, so a non-deposit/obstacle occupant
				// here would indicate the region finder was invoked too
				// late in the pipeline.
				panic("region: unexpected building kind during region discovery")
			}
			continue
		}

		if visited[idx(p)] {
			continue
		}
		regions.Cells = append(regions.Cells, p)
		visited[idx(p)] = true

		stack = append(stack,
			p.Off(1, 0), p.Off(0, 1), p.Off(-1, 0), p.Off(0, -1),
		)
	}
}

func markFootprint(visited []bool, idx func(geom.Pos) int, scene *board.Scene, b *board.Building) {
	for y := int8(0); y < int8(b.Height); y++ {
		for x := int8(0); x < int8(b.Width); x++ {
			p := b.Pos.Off(x, y)
			if p.X < 0 || p.X >= scene.Grid.Width || p.Y < 0 || p.Y >= scene.Grid.Height {
				continue
			}
			visited[idx(p)] = true
		}
	}
}
