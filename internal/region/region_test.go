package region

import (
	"testing"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

func TestFindSplitsBoardAtAFullHeightObstacle(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	scene := board.NewScene(products, 6, 6, 100, 10)
	if _, err := board.Place(scene, board.Building{Kind: board.KindObstacle, Pos: geom.P(3, 0), Width: 1, Height: 6}); err != nil {
		t.Fatalf("obstacle: %v", err)
	}

	regions := Find(scene)
	if got := regions.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	left := regions.Get(0)
	right := regions.Get(1)
	if len(left.Cells) != 18 {
		t.Fatalf("left region has %d cells, want 18", len(left.Cells))
	}
	if len(right.Cells) != 12 {
		t.Fatalf("right region has %d cells, want 12", len(right.Cells))
	}
	if len(left.Deposits) != 0 || len(right.Deposits) != 0 {
		t.Fatalf("expected no deposits, got left=%d right=%d", len(left.Deposits), len(right.Deposits))
	}

	for _, p := range left.Cells {
		if p.X >= 3 {
			t.Fatalf("left region cell %s crosses the obstacle column", p)
		}
	}
	for _, p := range right.Cells {
		if p.X <= 3 {
			t.Fatalf("right region cell %s crosses the obstacle column", p)
		}
	}
}

func TestFindAttributesADepositToItsAdjacentRegion(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	scene := board.NewScene(products, 6, 6, 100, 10)
	if _, err := board.Place(scene, board.Building{Kind: board.KindObstacle, Pos: geom.P(3, 0), Width: 1, Height: 6}); err != nil {
		t.Fatalf("obstacle: %v", err)
	}
	depositID, err := board.Place(scene, board.Building{Kind: board.KindDeposit, Pos: geom.P(0, 0), Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	regions := Find(scene)
	left := regions.Get(0)
	found := false
	for _, id := range left.Deposits {
		if id == depositID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the left region's Deposits to include %d, got %v", depositID, left.Deposits)
	}
	// The deposit's footprint cell must not also be listed among the
	// region's walkable empty cells.
	for _, p := range left.Cells {
		if p == geom.P(0, 0) {
			t.Fatal("deposit footprint cell should not appear in Cells")
		}
	}
}

func TestFindSingleOpenBoardIsOneRegion(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	scene := board.NewScene(products, 4, 3, 100, 10)
	regions := Find(scene)
	if got := regions.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if got := len(regions.Get(0).Cells); got != 12 {
		t.Fatalf("cells = %d, want 12", got)
	}
}
