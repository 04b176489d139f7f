package connect

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// nodeID and childrenID both index into a tree's flat node arena. They
// are distinct types only to keep "the start of a reserved range" from
// being confused with "a single node" at call sites.
type nodeID int
type childrenID int

// connKind is the subset of building kinds a connector search can place.
type connKind uint8

const (
	connMine connKind = iota
	connConveyor
	connCombiner
)

// connBuilding is the connector-specific analog of board.Building: only
// the fields a Mine/Conveyor/Combiner ever uses.
type connBuilding struct {
	Kind     connKind
	Pos      geom.Pos
	Rotation geom.Rotation
	Big      bool
}

func (b connBuilding) toBuilding() board.Building {
	switch b.Kind {
	case connMine:
		return board.Building{Kind: board.KindMine, Pos: b.Pos, Rotation: b.Rotation}
	case connConveyor:
		return board.Building{Kind: board.KindConveyor, Pos: b.Pos, Rotation: b.Rotation, Big: b.Big}
	default:
		return board.Building{Kind: board.KindCombiner, Pos: b.Pos, Rotation: b.Rotation}
	}
}

// stateTag discriminates a tree node's exploration outcome.
type stateTag uint8

const (
	stateStopped stateTag = iota
	stateConnected
	stateMerged
	stateChildren
)

// state is Stopped/Connected/Merged (no payload) or Children, which
// names a contiguous child range in the same arena.
type state struct {
	Tag        stateTag
	ChildStart childrenID
	ChildLen   uint16
}

// node is one placed-or-considered connector in the search tree.
type node struct {
	Building connBuilding
	StartPos geom.Pos
	EndPos   geom.Pos
	State    state
}

// tree is the arena: children are pre-reserved in contiguous ranges so a
// node's children are always `nodes[start : start+len]`.
type tree struct {
	nodes []node
}

// alloc reserves size slots and returns the first one's id.
func (t *tree) alloc(size uint16) childrenID {
	start := len(t.nodes)
	t.nodes = append(t.nodes, make([]node, size)...)
	return childrenID(start)
}

func (t *tree) at(id nodeID) *node { return &t.nodes[id] }

// next returns the next unused slot in a reserved range and advances len.
func next(start childrenID, length *uint16) nodeID {
	id := nodeID(int(start) + int(*length))
	*length++
	return id
}

// pathStats orders candidate paths: a smaller distance to the factory is
// always better; among equal distances, a shallower remaining-depth
// budget (i.e. a larger Depth — it counts down as the search recurses)
// wins.
type pathStats struct {
	Dist  uint16
	Depth uint8
}

func (a pathStats) better(b pathStats) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Depth > b.Depth
}

// found is an optional (node, pathStats) pair threaded through every
// search step; OK is false when nothing was found.
type found struct {
	Node  nodeID
	Stats pathStats
	OK    bool
}

func cmpAndSet(best *found, other found) {
	if !other.OK {
		return
	}
	if !best.OK || other.Stats.better(best.Stats) {
		*best = other
	}
}
