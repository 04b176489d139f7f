package board

import "github.com/dshills/profitsolve/internal/geom"

// Buildings is a slot store: id == index, nil slots are reused by Push.
type Buildings struct {
	slots []*Building
}

// Get returns the building at id, or nil if the slot is empty.
func (b *Buildings) Get(id ID) *Building {
	if int(id) >= len(b.slots) {
		return nil
	}
	return b.slots[id]
}

// Push installs a building into the first empty slot, or appends, and
// returns its id.
func (b *Buildings) Push(building Building) ID {
	for i, s := range b.slots {
		if s == nil {
			cp := building
			b.slots[i] = &cp
			return ID(i)
		}
	}
	cp := building
	b.slots = append(b.slots, &cp)
	return ID(len(b.slots) - 1)
}

// Remove clears the slot at id and returns the building that was there.
func (b *Buildings) Remove(id ID) *Building {
	if int(id) >= len(b.slots) {
		return nil
	}
	building := b.slots[id]
	b.slots[id] = nil
	return building
}

// Len returns the number of slots, including empty ones.
func (b *Buildings) Len() int { return len(b.slots) }

// All iterates over every occupied slot.
func (b *Buildings) All(fn func(ID, *Building)) {
	for i, s := range b.slots {
		if s != nil {
			fn(ID(i), s)
		}
	}
}

// Clone returns a deep copy of the store.
func (b *Buildings) Clone() Buildings {
	out := Buildings{slots: make([]*Building, len(b.slots))}
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		cp := *s
		out.slots[i] = &cp
	}
	return out
}

// Scene is the full mutable puzzle state: products, buildings, board,
// connections and the turn/time budget. It is cloned per search worker;
// the orchestrator's shared input scene is never mutated after load.
type Scene struct {
	Products    [geom.ProductTypes]geom.Product
	Buildings   Buildings
	Grid        *Grid
	Connections []Connection
	Turns       uint32
	Time        float64
}

// NewScene builds an empty scene over a grid of the given size.
func NewScene(products [geom.ProductTypes]geom.Product, width, height int8, turns uint32, time float64) *Scene {
	return &Scene{
		Products: products,
		Grid:     NewGrid(width, height),
		Turns:    turns,
		Time:     time,
	}
}

// Clone returns a deep copy suitable for an independent search worker.
func (s *Scene) Clone() *Scene {
	out := &Scene{
		Products:    s.Products,
		Buildings:   s.Buildings.Clone(),
		Grid:        s.Grid.Clone(),
		Connections: append([]Connection(nil), s.Connections...),
		Turns:       s.Turns,
		Time:        s.Time,
	}
	return out
}
