package solve

import (
	"testing"
	"time"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
	"github.com/dshills/profitsolve/internal/solveconfig"
)

func TestSolveNoViableProductReturnsNoSolution(t *testing.T) {
	var products [geom.ProductTypes]geom.Product // every slot Points == 0
	scene := board.NewScene(products, 10, 10, 50, 1)

	_, err := Solve(scene, solveconfig.Default(), nil)
	if err == nil {
		t.Fatal("expected an error when no product is viable")
	}
	if _, ok := err.(*ErrNoSolution); !ok {
		t.Fatalf("expected *ErrNoSolution, got %T: %v", err, err)
	}
}

func TestDeadlineFromClampsNegativeToZero(t *testing.T) {
	d := deadlineFrom(0, 0.2)
	if d != 0 {
		t.Fatalf("deadlineFrom(0, 0.2) = %v, want 0", d)
	}
}

func TestDeadlineFromSubtractsMargin(t *testing.T) {
	d := deadlineFrom(10, 0.2)
	want := 9800 * time.Millisecond
	if d != want {
		t.Fatalf("deadlineFrom(10, 0.2) = %v, want %v", d, want)
	}
}

func TestSleepUntilNearReturnsImmediatelyWhenPastDeadline(t *testing.T) {
	start := time.Now()
	sleepUntilNear(start.Add(-time.Second))
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("sleepUntilNear on an already-past deadline took %v, want near-instant", elapsed)
	}
}
