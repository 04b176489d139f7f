package combine

import (
	"encoding/json"
	"testing"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
	"github.com/dshills/profitsolve/internal/simulate"
	"github.com/dshills/profitsolve/internal/task"
)

func TestBestSolutionGetReportsAbsenceUntilSet(t *testing.T) {
	var best BestSolution
	if _, ok := best.Get(); ok {
		t.Fatal("expected no solution published yet")
	}

	var products [geom.ProductTypes]geom.Product
	scene := board.NewScene(products, 5, 5, 10, 10)
	run := simulate.SimRun{Points: 7}
	best.Set(ScoredSolution{Scene: scene, Run: run})

	got, ok := best.Get()
	if !ok {
		t.Fatal("expected a solution after Set")
	}
	if got.Run != run {
		t.Fatalf("Get().Run = %+v, want %+v", got.Run, run)
	}
}

// producingScene returns a real, fully validated deposit/mine/factory
// chain (spec scenario 1) that simulates to Points: 99.
func producingScene(t *testing.T) *board.Scene {
	t.Helper()
	doc := task.Task{
		Width:  20,
		Height: 10,
		Objects: []task.Object{
			{Type: "deposit", Subtype: 0, X: 0, Y: 0, Width: 4, Height: 4},
			{Type: "mine", Subtype: 3, X: 5, Y: 1},
			{Type: "factory", Subtype: 0, X: 8, Y: 0},
		},
		Products: []task.ProductSpec{
			{Subtype: 0, Resources: [8]uint16{7, 0, 0, 0, 0, 0, 0, 0}, Points: 9},
		},
		Turns: 100,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	scene, err := task.ParseTask(data)
	if err != nil {
		t.Fatalf("ParseTask: %v", err)
	}
	return scene
}

func emptyScene(t *testing.T) *board.Scene {
	t.Helper()
	var products [geom.ProductTypes]geom.Product
	return board.NewScene(products, 20, 10, 100, 10)
}

// Single-region Solutions bypasses recursivePermutations entirely: every
// message is simulated and compared directly against the running best.
func TestSolutionsSingleRegionPublishesTheBetterOfTwoScenes(t *testing.T) {
	ch := make(chan Message, 2)
	best := &BestSolution{}

	ch <- Message{RegionIdx: 0, Solution: ScoredSolution{Scene: emptyScene(t)}}
	ch <- Message{RegionIdx: 0, Solution: ScoredSolution{Scene: producingScene(t)}}
	close(ch)

	Solutions(ch, best, 1, 1000)

	got, ok := best.Get()
	if !ok {
		t.Fatal("expected a published solution")
	}
	if got.Run.Points != 99 {
		t.Fatalf("best.Run.Points = %d, want 99", got.Run.Points)
	}
}

func TestSolutionsSingleRegionKeepsEarlierBestWhenLaterIsWorse(t *testing.T) {
	ch := make(chan Message, 2)
	best := &BestSolution{}

	ch <- Message{RegionIdx: 0, Solution: ScoredSolution{Scene: producingScene(t)}}
	ch <- Message{RegionIdx: 0, Solution: ScoredSolution{Scene: emptyScene(t)}}
	close(ch)

	Solutions(ch, best, 1, 1000)

	got, ok := best.Get()
	if !ok {
		t.Fatal("expected a published solution")
	}
	if got.Run.Points != 99 {
		t.Fatalf("best.Run.Points = %d, want 99 (the empty scene must not overwrite the better one)", got.Run.Points)
	}
}

func TestInsertSortedKeepsAscendingWorstFirstOrder(t *testing.T) {
	var solutions []ScoredSolution
	solutions = insertSorted(solutions, ScoredSolution{Run: simulate.SimRun{Points: 10}})
	solutions = insertSorted(solutions, ScoredSolution{Run: simulate.SimRun{Points: 30}})
	solutions = insertSorted(solutions, ScoredSolution{Run: simulate.SimRun{Points: 20}})

	want := []uint32{10, 20, 30}
	if len(solutions) != len(want) {
		t.Fatalf("len = %d, want %d", len(solutions), len(want))
	}
	for i, w := range want {
		if solutions[i].Run.Points != w {
			t.Fatalf("solutions[%d].Run.Points = %d, want %d", i, solutions[i].Run.Points, w)
		}
	}
}
