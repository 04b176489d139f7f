package rank

import (
	"testing"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/distmap"
	"github.com/dshills/profitsolve/internal/geom"
	"github.com/dshills/profitsolve/internal/region"
)

func sceneWithOneDeposit(t *testing.T, products [geom.ProductTypes]geom.Product) *board.Scene {
	t.Helper()
	scene := board.NewScene(products, 10, 10, 1000, 100)
	if _, err := board.Place(scene, board.Building{Kind: board.KindDeposit, Pos: geom.P(0, 0), Width: 2, Height: 2}); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	return scene
}

func rankScene(scene *board.Scene) []RegionStats {
	regions := region.Find(scene)
	deposits := distmap.MapDepositDistances(scene)
	return Rank(scene, regions, deposits)
}

func TestRankComputesMaxPointsForViableProduct(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	// Deposit yields 5*2*2 = 20 units of resource 0; this recipe needs 5
	// per unit, so 4 runs are affordable.
	products[0] = geom.Product{Resources: geom.NewResources([8]uint16{5, 0, 0, 0, 0, 0, 0, 0}), Points: 10}
	scene := sceneWithOneDeposit(t, products)

	out := rankScene(scene)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	ps := out[0].ProductStats
	if len(ps) != 1 {
		t.Fatalf("len(ProductStats) = %d, want 1", len(ps))
	}
	if ps[0].ProductType != 0 {
		t.Fatalf("ProductType = %d, want 0", ps[0].ProductType)
	}
	if ps[0].MaxPoints != 40 {
		t.Fatalf("MaxPoints = %d, want 40 (10 pts * 4 runs)", ps[0].MaxPoints)
	}
	if len(ps[0].FactoryStats) == 0 {
		t.Fatal("expected at least one viable factory anchor")
	}
}

func TestRankOmitsProductsThatExceedAvailableResources(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	products[0] = geom.Product{Resources: geom.NewResources([8]uint16{5, 0, 0, 0, 0, 0, 0, 0}), Points: 10}
	products[1] = geom.Product{Resources: geom.NewResources([8]uint16{100, 0, 0, 0, 0, 0, 0, 0}), Points: 5}
	scene := sceneWithOneDeposit(t, products)

	out := rankScene(scene)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	ps := out[0].ProductStats
	if len(ps) != 1 {
		t.Fatalf("len(ProductStats) = %d, want 1 (the unaffordable product must be omitted)", len(ps))
	}
	if ps[0].ProductType != 0 {
		t.Fatalf("surviving ProductType = %d, want 0", ps[0].ProductType)
	}
}

func TestRankOmitsRegionsWithNoViableProduct(t *testing.T) {
	var products [geom.ProductTypes]geom.Product // every product's Points == 0: none viable
	scene := sceneWithOneDeposit(t, products)

	out := rankScene(scene)
	if len(out) != 0 {
		t.Fatalf("len(out) = %d, want 0 when no product has any Points", len(out))
	}
}

func TestRankSortsFactoryStatsByDescendingScoreSum(t *testing.T) {
	var products [geom.ProductTypes]geom.Product
	products[0] = geom.Product{Resources: geom.NewResources([8]uint16{5, 0, 0, 0, 0, 0, 0, 0}), Points: 10}
	scene := sceneWithOneDeposit(t, products)

	out := rankScene(scene)
	stats := out[0].ProductStats[0].FactoryStats
	for i := 1; i < len(stats); i++ {
		if stats[i].Score.Sum() > stats[i-1].Score.Sum() {
			t.Fatalf("FactoryStats not sorted descending by Score.Sum() at index %d: %v > %v", i, stats[i].Score.Sum(), stats[i-1].Score.Sum())
		}
	}
}
