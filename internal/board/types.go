// Package board implements the placement validator: a dense cell grid,
// the building store, footprint stamping, adjacency/connection legality,
// and removal with conveyor-crossing preservation.
package board

import (
	"fmt"

	"github.com/dshills/profitsolve/internal/geom"
)

// Kind discriminates the closed set of building variants.
type Kind uint8

const (
	KindDeposit Kind = iota
	KindObstacle
	KindMine
	KindConveyor
	KindCombiner
	KindFactory
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindObstacle:
		return "Obstacle"
	case KindMine:
		return "Mine"
	case KindConveyor:
		return "Conveyor"
	case KindCombiner:
		return "Combiner"
	case KindFactory:
		return "Factory"
	default:
		return "Unknown"
	}
}

// ID is a stable, slot-reused building identifier.
type ID uint16

// Building is a tagged union over the six building variants. Only the
// fields relevant to Kind are meaningful; this mirrors the closed,
// compile-time-known variant set of the original sum type without the
// overhead of one interface implementation per kind.
type Building struct {
	Kind Kind
	Pos  geom.Pos

	// Deposit, Obstacle
	Width, Height uint8

	// Deposit
	ResourceType uint8

	// Mine, Conveyor, Combiner
	Rotation geom.Rotation

	// Conveyor
	Big bool

	// Factory
	ProductType uint8
}

// DepositResources returns the total units a deposit of this size yields.
func (b Building) DepositResources() uint16 {
	return 5 * uint16(b.Width) * uint16(b.Height)
}

func (b Building) String() string {
	return fmt.Sprintf("%s@%s", b.Kind, b.Pos)
}

// Cell is a single occupied board cell.
type Cell struct {
	Kind  geom.CellKind
	Owner ID
}

// Connection is a directed resource pipe between an output cell and an
// adjacent input cell.
type Connection struct {
	OutputID  ID
	OutputPos geom.Pos
	InputID   ID
	InputPos  geom.Pos
	Buffer    geom.Resources
}
