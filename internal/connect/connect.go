// Package connect searches for conveyor/mine/combiner paths that wire a
// region's deposits into a candidate factory, one deposit at a time,
// stopping once adding more stops improving the resulting simulation.
package connect

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/distmap"
	"github.com/dshills/profitsolve/internal/geom"
	"github.com/dshills/profitsolve/internal/rank"
	"github.com/dshills/profitsolve/internal/simulate"
)

// childBudget bounds a Children state's reserved range: each of the 4
// directions from a connector's end cell tries 4 small-conveyor + 4
// big-conveyor + 12 combiner placements, for 4*(4+4+12) = 80 attempts.
const childBudget = 80

type searchContext struct {
	scene       *board.Scene
	tree        tree
	distanceMap *distmap.Map
	factoryID   board.ID
}

// ConnectDepositsAndFactory places a factory at factoryStats.Pos, then
// greedily wires in deposits from product_stats' in-reach list (cycling
// through them) for as long as each addition keeps improving the scene's
// simulated run, stopping once nonImprovementLimit consecutive additions
// in a row fail to do so. It returns the last scene/run pair it recorded,
// or an error if not even the factory-plus-one-deposit baseline could be
// produced.
func ConnectDepositsAndFactory(scene *board.Scene, productStats rank.ProductStats, factoryStats rank.FactoryStats, searchDepth uint8, nonImprovementLimit int) (*board.Scene, simulate.SimRun, error) {
	factory := board.Building{Kind: board.KindFactory, Pos: factoryStats.Pos, ProductType: productStats.ProductType}
	factoryID, err := board.Place(scene, factory)
	if err != nil {
		return nil, simulate.SimRun{}, err
	}

	if len(factoryStats.DepositsInReach) == 0 {
		return nil, simulate.SimRun{}, &ErrNoSolution{}
	}

	ctx := &searchContext{
		scene:       scene,
		distanceMap: distmap.MapDistances(scene, factoryStats.Pos, geom.FactorySize, geom.FactorySize),
		factoryID:   factoryID,
	}
	base := scene.Clone()

	nonImprovements := 0
	errCount := 0
	type snapshot struct {
		scene *board.Scene
		run   simulate.SimRun
	}
	var runs []snapshot

	reach := factoryStats.DepositsInReach
	for i := 0; ; i++ {
		ctx.tree = tree{}
		if i%len(reach) == 0 {
			errCount = 0
		}

		d := reach[i%len(reach)]
		depositStats := productStats.DepositStats[d.Idx]
		deposit := ctx.scene.Buildings.Get(depositStats.ID)

		res, connectErr := connectOneDeposit(ctx, depositStats, deposit, searchDepth)
		if connectErr != nil {
			errCount++
			if len(runs) > 0 {
				ctx.scene = runs[len(runs)-1].scene.Clone()
			} else {
				ctx.scene = base.Clone()
			}
			if errCount == len(reach) {
				break
			}
			continue
		}

		run := simulate.Run(res)
		if len(runs) > 0 {
			last := runs[len(runs)-1].run
			if run.Better(last) {
				nonImprovements = 0
			} else {
				nonImprovements++
			}
			if nonImprovements == nonImprovementLimit {
				break
			}
		}
		runs = append(runs, snapshot{scene: res.Clone(), run: run})
		ctx.scene = res
	}

	if len(runs) == 0 {
		return nil, simulate.SimRun{}, &ErrNoSolution{}
	}
	best := runs[len(runs)-1]
	return best.scene, best.run, nil
}

// connectOneDeposit searches for, and permanently places, the best
// connector path from one deposit to ctx's factory. On success it
// returns the mutated scene (ctx.scene, now carrying the new path); on
// failure ctx.scene is left in an undefined intermediate state and the
// caller must discard it.
func connectOneDeposit(ctx *searchContext, ds rank.DepositStats, deposit *board.Building, searchDepth uint8) (*board.Scene, error) {
	depositPos := deposit.Pos
	w, h := int8(deposit.Width), int8(deposit.Height)

	perimeter := 2*max8(w-1, 0) + 2*max8(h-1, 0) + 4
	childrenID := ctx.tree.alloc(uint16(perimeter) * 4)
	var length uint16

	var best found
	tryRing := func(pos geom.Pos) {
		if _, ok := ctx.distanceMap.At(pos); !ok {
			return
		}
		cmpAndSet(&best, placeMines(ctx, pos, childrenID, &length, searchDepth))
	}
	for x := int8(0); x < w; x++ {
		tryRing(depositPos.Off(x, -1))
	}
	for y := int8(0); y < h; y++ {
		tryRing(depositPos.Off(-1, y))
		tryRing(depositPos.Off(w, y))
	}
	for x := int8(0); x < w; x++ {
		tryRing(depositPos.Off(x, h))
	}

	var path []nodeID
	for {
		if !best.OK {
			return nil, &ErrNoPath{DepositID: ds.ID, DepositPos: depositPos, FactoryPos: ctx.scene.Buildings.Get(ctx.factoryID).Pos}
		}
		path = append(path, best.Node)

		n := ctx.tree.at(best.Node)
		connectorID, placeErr := board.Place(ctx.scene, n.Building.toBuilding())
		if placeErr != nil {
			return nil, placeErr
		}

		switch n.State.Tag {
		case stateConnected, stateMerged:
			return ctx.scene, nil
		case stateStopped:
			endDist, _ := ctx.distanceMap.At(n.EndPos)
			st, stats := placeChildrenConnectors(ctx, connectorID, best.Node, n.EndPos, endDist, searchDepth)
			ctx.tree.at(best.Node).State = st
			best = stats
		case stateChildren:
			best = continueSubtree(ctx, n.State.ChildStart, n.State.ChildLen, searchDepth)
		}
	}
}

func continueSubtree(ctx *searchContext, start childrenID, length uint16, searchDepth uint8) found {
	var best found
	for i := uint16(0); i < length; i++ {
		id := nodeID(int(start) + int(i))
		n := ctx.tree.at(id)

		switch n.State.Tag {
		case stateConnected:
			return found{Node: id, Stats: pathStats{Dist: 0, Depth: searchDepth}, OK: true}
		case stateMerged:
			buildingID, err := board.Place(ctx.scene, n.Building.toBuilding())
			if err != nil {
				continue
			}
			_, stats, _ := findConnectionAround(ctx, id, buildingID, n.EndPos, searchDepth)
			cmpAndSet(&best, stats)
			board.Remove(ctx.scene, buildingID)
		case stateStopped:
			buildingID, err := board.Place(ctx.scene, n.Building.toBuilding())
			if err != nil {
				continue
			}
			endDist, _ := ctx.distanceMap.At(n.EndPos)
			st, stats := placeChildrenConnectors(ctx, buildingID, id, n.EndPos, endDist, decr(searchDepth))
			if stats.OK {
				stats.Node = id
			}
			cmpAndSet(&best, stats)
			board.Remove(ctx.scene, buildingID)
			ctx.tree.at(id).State = st
		case stateChildren:
			buildingID, err := board.Place(ctx.scene, n.Building.toBuilding())
			if err != nil {
				continue
			}
			stats := continueSubtree(ctx, n.State.ChildStart, n.State.ChildLen, decr(searchDepth))
			if stats.OK {
				stats.Node = id
			}
			cmpAndSet(&best, stats)
			board.Remove(ctx.scene, buildingID)
		}
	}
	return best
}

func decr(d uint8) uint8 {
	if d == 0 {
		return 0
	}
	return d - 1
}

func max8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}
