package connect

import (
	"fmt"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// ErrNoPath reports that no connector path could be found from a deposit
// to the factory anchor within the search depth budget.
type ErrNoPath struct {
	DepositID  board.ID
	DepositPos geom.Pos
	FactoryPos geom.Pos
}

func (e *ErrNoPath) Error() string {
	return fmt.Sprintf("connect: no path from deposit %d@%s to factory@%s", e.DepositID, e.DepositPos, e.FactoryPos)
}

// ErrNoSolution reports that not even the factory-plus-one-deposit
// baseline could be produced for this candidate anchor.
type ErrNoSolution struct{}

func (e *ErrNoSolution) Error() string { return "connect: no viable connection for this factory anchor" }
