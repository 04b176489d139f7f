// Package combine merges each region's best connector solutions into
// whole-board candidates, publishing the best composite found so far to
// a mutex-guarded slot the orchestrator polls against its deadline.
package combine

import (
	"math"
	"sync"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/simulate"
)

// ScoredSolution pairs one region's candidate scene with its simulated
// run, ordered by Run so region solution lists can be kept sorted
// worst-to-best.
type ScoredSolution struct {
	Scene *board.Scene
	Run   simulate.SimRun
}

// Message is either a new per-region solution to fold in, or Done,
// signaling the sender has no more solutions to contribute.
type Message struct {
	RegionIdx int
	Solution  ScoredSolution
	Done      bool
}

// BestSolution is a mutex-guarded slot the orchestrator's main goroutine
// polls for the best composite found so far.
type BestSolution struct {
	mu    sync.Mutex
	value *ScoredSolution
}

// Set publishes s as the current best, replacing whatever was there.
func (b *BestSolution) Set(s ScoredSolution) {
	cp := s
	b.mu.Lock()
	b.value = &cp
	b.mu.Unlock()
}

// Get returns the current best, if any has been published yet.
func (b *BestSolution) Get() (ScoredSolution, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.value == nil {
		return ScoredSolution{}, false
	}
	return *b.value, true
}

// Solutions consumes messages from receiver until a Done is seen (or the
// channel is closed), folding each region's newest solution into every
// viable cross-region permutation and republishing the best composite
// scene found so far into best after each message. candidateCap bounds
// how many cross-region candidate combinations get tried in the worst
// case; the per-region component count is derived from it so the
// combinatorial blowup stays roughly constant regardless of how many
// regions the board split into.
func Solutions(receiver <-chan Message, best *BestSolution, numRegions int, candidateCap int) {
	numComponents := 1
	if numRegions > 1 {
		n := int(math.Log(float64(candidateCap)) / math.Log(float64(numRegions)))
		if n > numComponents {
			numComponents = n
		}
	}

	regionalSolutions := make([][]ScoredSolution, numRegions)
	var bestLocal ScoredSolution
	haveBest := false

	for msg := range receiver {
		if msg.Done {
			break
		}

		if numRegions > 1 {
			current := msg.Solution.Scene.Clone()
			recursivePermutations(current, &bestLocal, &haveBest, regionalSolutions, msg.RegionIdx, 0, numComponents)
		} else {
			run := simulate.Run(msg.Solution.Scene)
			cmpAndSet(&bestLocal, &haveBest, msg.Solution.Scene, run)
		}

		if haveBest {
			best.Set(bestLocal)
		}

		regionalSolutions[msg.RegionIdx] = insertSorted(regionalSolutions[msg.RegionIdx], msg.Solution)
	}
}

// recursivePermutations walks every region other than skipIdx, grafting
// in up to numComponents of that region's best-known solutions (tried
// best-first) before recursing into the next region.
func recursivePermutations(scene *board.Scene, best *ScoredSolution, haveBest *bool, regionalSolutions [][]ScoredSolution, skipIdx, regionIdx, numComponents int) {
	if regionIdx == skipIdx {
		regionIdx++
	}
	if regionIdx >= len(regionalSolutions) {
		run := simulate.Run(scene)
		cmpAndSet(best, haveBest, scene, run)
		return
	}

	solutions := regionalSolutions[regionIdx]
	tried := 0
	for i := len(solutions) - 1; i >= 0 && tried < numComponents; i-- {
		tried++
		candidate := scene.Clone()
		if err := addSolutionBuildings(candidate, solutions[i].Scene); err != nil {
			continue
		}
		recursivePermutations(candidate, best, haveBest, regionalSolutions, skipIdx, regionIdx+1, numComponents)
	}
}

// addSolutionBuildings copies every non-deposit, non-obstacle building
// from src into dst, re-running full placement validation (deposits and
// obstacles are already present in dst from the base scene).
func addSolutionBuildings(dst *board.Scene, src *board.Scene) error {
	var placeErr error
	src.Buildings.All(func(_ board.ID, b *board.Building) {
		if placeErr != nil {
			return
		}
		switch b.Kind {
		case board.KindDeposit, board.KindObstacle:
			return
		default:
			_, placeErr = board.Place(dst, *b)
		}
	})
	return placeErr
}

func cmpAndSet(best *ScoredSolution, haveBest *bool, scene *board.Scene, run simulate.SimRun) {
	if !*haveBest || run.Better(best.Run) {
		*best = ScoredSolution{Scene: scene.Clone(), Run: run}
		*haveBest = true
	}
}

// insertSorted inserts s into solutions (kept ascending, worst-first, by
// Run) at its sorted position.
func insertSorted(solutions []ScoredSolution, s ScoredSolution) []ScoredSolution {
	pos := len(solutions)
	for i, existing := range solutions {
		if existing.Run.Better(s.Run) {
			pos = i
			break
		}
	}
	solutions = append(solutions, ScoredSolution{})
	copy(solutions[pos+1:], solutions[pos:])
	solutions[pos] = s
	return solutions
}
