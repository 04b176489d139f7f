// Package solve implements the orchestrator (§4.8): it spawns the
// connection-tree search and the cross-region combiner as two
// cooperating goroutines, enforces the wall-clock deadline, and hands
// the best scene/run pair it ever published back to the caller.
package solve

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/combine"
	"github.com/dshills/profitsolve/internal/connect"
	"github.com/dshills/profitsolve/internal/distmap"
	"github.com/dshills/profitsolve/internal/rank"
	"github.com/dshills/profitsolve/internal/region"
	"github.com/dshills/profitsolve/internal/simulate"
	"github.com/dshills/profitsolve/internal/solveconfig"
)

// Result is the orchestrator's outcome: the best composite scene found
// and the simulated run that scored it.
type Result struct {
	Scene *board.Scene
	Run   simulate.SimRun
}

// Solve runs the full pipeline against an immutable input scene: region
// discovery and factory ranking happen once up front (both
// deterministic and comparatively cheap), then the search and combine
// goroutines run until the deadline derived from scene.Time and
// cfg.DeadlineMarginSeconds. The caller's scene is never mutated.
func Solve(scene *board.Scene, cfg solveconfig.Config, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}

	regions := region.Find(scene)
	deposits := distmap.MapDepositDistances(scene)
	regionStats := rank.Rank(scene, regions, deposits)

	if len(regionStats) == 0 {
		return Result{}, &ErrNoSolution{}
	}

	deadline := time.Now().Add(deadlineFrom(scene.Time, cfg.DeadlineMarginSeconds))
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	ch := make(chan combine.Message, cfg.ChannelBufferSize)
	best := &combine.BestSolution{}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		combine.Solutions(ch, best, len(regionStats), cfg.CombinerCandidateCap)
	}()

	go func() {
		defer wg.Done()
		defer close(ch)
		runSearch(ctx, scene, regionStats, cfg, ch, logger)
	}()

	sleepUntilNear(deadline)

	solution, ok := best.Get()
	wg.Wait()
	if !ok {
		return Result{}, &ErrNoSolution{}
	}
	return Result{Scene: solution.Scene, Run: solution.Run}, nil
}

// deadlineFrom converts the task's time budget into a duration,
// reserving marginSeconds as the orchestrator's own safety margin
// (§4.8). A budget too small for the margin yields zero — the search
// task will observe an already-expired context and exit at its first
// boundary check.
func deadlineFrom(taskTimeSeconds float64, marginSeconds float64) time.Duration {
	d := time.Duration(taskTimeSeconds*float64(time.Second)) - time.Duration(marginSeconds*float64(time.Second))
	if d < 0 {
		return 0
	}
	return d
}

// sleepUntilNear polls every second until within two seconds of
// deadline, then sleeps the remainder — the main thread never busy-waits
// and never holds the best-solution mutex while sleeping (§4.8, §5).
func sleepUntilNear(deadline time.Time) {
	const pollInterval = time.Second
	const finalWindow = 2 * time.Second
	for {
		remaining := time.Until(deadline)
		if remaining <= finalWindow {
			if remaining > 0 {
				time.Sleep(remaining)
			}
			return
		}
		time.Sleep(pollInterval)
	}
}

// runSearch is the search task (§4.8): for each region, ranked product,
// and ranked factory candidate, try to route every in-reach deposit and
// send every successful regional solution into ch. It polls ctx at every
// outer-loop boundary and escalates the search depth once a full pass
// over every seed completes within the deadline, bounded by
// cfg.MaxSearchDepth.
func runSearch(ctx context.Context, scene *board.Scene, regionStats []rank.RegionStats, cfg solveconfig.Config, ch chan<- combine.Message, logger *log.Logger) {
	depth := cfg.StartingSearchDepth
	if depth == 0 {
		depth = 1
	}

	for depth <= cfg.MaxSearchDepth {
		select {
		case <-ctx.Done():
			return
		default:
		}

		for regionIdx, rs := range regionStats {
			for _, ps := range rs.ProductStats {
				for _, fs := range ps.FactoryStats {
					select {
					case <-ctx.Done():
						return
					default:
					}

					attempt := scene.Clone()
					resultScene, run, err := connect.ConnectDepositsAndFactory(attempt, ps, fs, depth, cfg.NonImprovementLimit)
					if err != nil {
						continue
					}

					select {
					case ch <- combine.Message{RegionIdx: regionIdx, Solution: combine.ScoredSolution{Scene: resultScene, Run: run}}:
					case <-ctx.Done():
						return
					}
				}
			}
		}

		if depth == cfg.MaxSearchDepth {
			return
		}
		depth++
		logger.Printf("solve: escalating search depth to %d", depth)
	}
}
