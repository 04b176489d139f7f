// Package distmap computes multi-source distance fields from a
// rectangle's perimeter, used by the ranker to score candidate factory
// anchors and by connect to steer placement search.
package distmap

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// Map holds, for every in-bounds cell, the shortest 4-connected distance
// to the seeding rectangle's perimeter, blocked by occupied cells.
// Unreached cells hold nil.
type Map struct {
	Width, Height int8
	dist          []*uint16
}

func newMap(w, h int8) *Map {
	return &Map{Width: w, Height: h, dist: make([]*uint16, int(w)*int(h))}
}

func (m *Map) inBounds(p geom.Pos) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

func (m *Map) index(p geom.Pos) int { return int(p.Y)*int(m.Width) + int(p.X) }

// At returns the distance at p, or (0, false) if p is out of bounds or
// was never reached.
func (m *Map) At(p geom.Pos) (uint16, bool) {
	if !m.inBounds(p) {
		return 0, false
	}
	d := m.dist[m.index(p)]
	if d == nil {
		return 0, false
	}
	return *d, true
}

func (m *Map) set(p geom.Pos, d uint16) {
	m.dist[m.index(p)] = &d
}

// MapDistances seeds a BFS from every cell on the perimeter of the w x h rectangle
// anchored at anchor (distance 0), then relaxes outward over the 4
// neighbors, never stepping into an occupied cell. Perimeter cells that
// are themselves occupied are not seeded.
func MapDistances(scene *board.Scene, anchor geom.Pos, w, h uint8) *Map {
	m := newMap(scene.Grid.Width, scene.Grid.Height)
	var queue []geom.Pos

	seed := func(p geom.Pos) {
		if !m.inBounds(p) {
			return
		}
		if c, _ := scene.Grid.At(p); c != nil {
			return
		}
		if _, ok := m.At(p); ok {
			return
		}
		m.set(p, 0)
		queue = append(queue, p)
	}

	iw, ih := int8(w), int8(h)
	for x := int8(0); x < iw; x++ {
		seed(anchor.Off(x, -1))
		seed(anchor.Off(x, ih))
	}
	for y := int8(0); y < ih; y++ {
		seed(anchor.Off(-1, y))
		seed(anchor.Off(iw, y))
	}

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		d, _ := m.At(p)
		next := d + 1

		for _, q := range [4]geom.Pos{p.Off(1, 0), p.Off(-1, 0), p.Off(0, 1), p.Off(0, -1)} {
			if !m.inBounds(q) {
				continue
			}
			if _, seen := m.At(q); seen {
				continue
			}
			if c, _ := scene.Grid.At(q); c != nil {
				continue
			}
			m.set(q, next)
			queue = append(queue, q)
		}
	}

	return m
}

// MapDepositDistances computes a distance map rooted at every deposit's
// footprint perimeter, keyed by deposit id.
func MapDepositDistances(scene *board.Scene) map[board.ID]*Map {
	out := make(map[board.ID]*Map)
	scene.Buildings.All(func(id board.ID, b *board.Building) {
		if b.Kind != board.KindDeposit {
			return
		}
		out[id] = MapDistances(scene, b.Pos, b.Width, b.Height)
	})
	return out
}
