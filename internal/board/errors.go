package board

import (
	"fmt"

	"github.com/dshills/profitsolve/internal/geom"
)

// Reason enumerates the placement-error taxonomy.
type Reason uint8

const (
	ReasonOutOfBounds Reason = iota
	ReasonIntersection
	ReasonMineEgress
	ReasonDepositEgress
	ReasonMultipleIngresses
)

func (r Reason) String() string {
	switch r {
	case ReasonOutOfBounds:
		return "OutOfBounds"
	case ReasonIntersection:
		return "Intersection"
	case ReasonMineEgress:
		return "MineEgress"
	case ReasonDepositEgress:
		return "DepositEgress"
	case ReasonMultipleIngresses:
		return "MultipleIngresses"
	default:
		return "Unknown"
	}
}

// PlacementError reports a recoverable placement-legality failure. Search
// code treats it as "skip this candidate"; it is never fatal.
type PlacementError struct {
	Reason Reason
	Pos    geom.Pos
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s at %s", e.Reason, e.Pos)
}

func placementErr(reason Reason, pos geom.Pos) error {
	return &PlacementError{Reason: reason, Pos: pos}
}
