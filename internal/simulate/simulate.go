// Package simulate implements the deterministic two-phase round loop: the
// ground-truth objective function the solver optimizes against.
package simulate

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// SimRun is the outcome of simulating a scene: completed rounds, cumulative
// score, and the turn of the last factory production (0 if none).
type SimRun struct {
	Rounds uint32
	Points uint32
	AtTurn uint32
}

// Better reports whether r should be preferred over o: higher points
// wins; ties broken by an earlier AtTurn, then by fewer Rounds.
func (r SimRun) Better(o SimRun) bool {
	if r.Points != o.Points {
		return r.Points > o.Points
	}
	if r.AtTurn != o.AtTurn {
		return r.AtTurn < o.AtTurn
	}
	return r.Rounds < o.Rounds
}

// Run executes the round loop on scene without mutating its placement
// (board, buildings, and connection topology are left untouched — only
// local ephemeral resource state is simulated). It halts at scene.Turns
// or on the first quiescent round, whichever comes first.
func Run(scene *board.Scene) SimRun {
	n := scene.Buildings.Len()
	held := make([]geom.Resources, n)
	remaining := make([]uint16, n)
	scene.Buildings.All(func(id board.ID, b *board.Building) {
		if b.Kind == board.KindDeposit {
			remaining[id] = b.DepositResources()
		}
	})
	buffers := make([]geom.Resources, len(scene.Connections))

	var rounds, points, atTurn uint32

	for rounds < scene.Turns {
		unchanged := true

		for i := range scene.Connections {
			c := &scene.Connections[i]
			res := buffers[i]
			buffers[i] = geom.Resources{}
			if !res.IsEmpty() {
				unchanged = false
			}
			held[c.InputID] = held[c.InputID].Add(res)
		}

		for i := range scene.Connections {
			c := &scene.Connections[i]
			out := outputResources(scene, c.OutputID, held, remaining)
			buffers[i] = out
			if !out.IsEmpty() {
				unchanged = false
			}
		}

		scene.Buildings.All(func(id board.ID, b *board.Building) {
			if b.Kind != board.KindFactory {
				return
			}
			product := scene.Products[b.ProductType]
			h := held[id]
			if !h.HasAtLeast(product.Resources) {
				return
			}
			times := h.Div(product.Resources).Min()
			if times == 0 {
				return
			}
			held[id] = h.Sub(product.Resources.MulScalar(times))
			points += product.Points * uint32(times)
			atTurn = rounds + 1
			unchanged = false
		})

		if unchanged {
			break
		}
		rounds++
	}

	return SimRun{Rounds: rounds, Points: points, AtTurn: atTurn}
}

// outputResources implements the per-kind egress rule: a deposit emits up
// to 3 units of its resource type per round; mines/conveyors/combiners
// move out their entire held vector. Factories and obstacles are never a
// connection's source — the validator never stamps them with an Output
// cell — so reaching either here would indicate a placement-invariant bug.
func outputResources(scene *board.Scene, id board.ID, held []geom.Resources, remaining []uint16) geom.Resources {
	b := scene.Buildings.Get(id)
	switch b.Kind {
	case board.KindDeposit:
		num := remaining[id]
		if num > 3 {
			num = 3
		}
		remaining[id] -= num
		var res geom.Resources
		res.Values[b.ResourceType] = num
		return res
	case board.KindMine, board.KindConveyor, board.KindCombiner:
		out := held[id]
		held[id] = geom.Resources{}
		return out
	default:
		panic("simulate: factory/obstacle cannot be a connection source")
	}
}
