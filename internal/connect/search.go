package connect

import (
	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// placeChildrenConnectors is the core recursive step: given a connector
// already placed at (connectorID, start_pos) with its end cell at
// (startPos, startDist) from the factory, this decides whether the
// search is done (startDist==0), already merges into an existing path to
// the factory, has run out of depth budget, or should branch into every
// conveyor/combiner placement reachable from the four neighbors of
// startPos.
func placeChildrenConnectors(ctx *searchContext, connectorID board.ID, parentID nodeID, startPos geom.Pos, startDist uint16, searchDepth uint8) (state, found) {
	if startDist == 0 {
		return state{Tag: stateConnected}, found{Node: parentID, Stats: pathStats{Dist: 0, Depth: searchDepth}, OK: true}
	}

	if st, f, ok := findConnectionAround(ctx, parentID, connectorID, startPos, searchDepth); ok {
		return st, f
	}

	if searchDepth == 0 {
		return state{Tag: stateStopped}, found{Node: parentID, Stats: pathStats{Dist: startDist, Depth: searchDepth}, OK: true}
	}

	childrenID := ctx.tree.alloc(childBudget)
	var length uint16
	var best found

	for _, dir := range [4]geom.Pos{geom.P(-1, 0), geom.P(1, 0), geom.P(0, 1), geom.P(0, -1)} {
		placeConnectors(ctx, startPos.Add(dir), childrenID, &length, &best, searchDepth)
	}

	return state{Tag: stateChildren, ChildStart: childrenID, ChildLen: length}, best
}

// findConnectionAround checks whether any of the four cells adjacent to
// startPos is another building's input cell already wired, directly or
// transitively, to the factory — in which case this connector merges
// into that existing path instead of continuing its own search.
func findConnectionAround(ctx *searchContext, parentID nodeID, connectorID board.ID, startPos geom.Pos, searchDepth uint8) (state, found, bool) {
	for _, dir := range [4]geom.Pos{geom.P(-1, 0), geom.P(1, 0), geom.P(0, -1), geom.P(0, 1)} {
		if st, f, ok := findConnectionAt(ctx, parentID, connectorID, startPos.Add(dir), searchDepth); ok {
			return st, f, true
		}
	}
	return state{}, found{}, false
}

func findConnectionAt(ctx *searchContext, parentID nodeID, connectorID board.ID, pos geom.Pos, searchDepth uint8) (state, found, bool) {
	cell, inBounds := ctx.scene.Grid.At(pos)
	if !inBounds || cell == nil {
		return state{}, found{}, false
	}
	if cell.Owner == connectorID || cell.Kind != geom.Input {
		return state{}, found{}, false
	}
	return findConnection(ctx, parentID, cell.Owner, searchDepth)
}

// findConnection walks the connection graph forward from currentID,
// looking for the factory. If it arrives there it reports a Merged
// state with the distance-to-factory of the last node it still had
// search-depth budget to examine; if the walk loops back on itself or
// dead-ends, it reports no match.
func findConnection(ctx *searchContext, parentID nodeID, currentID board.ID, searchDepth uint8) (state, found, bool) {
	path := []board.ID{currentID}
	lastSearchNode := currentID

	for {
		if searchDepth > 0 {
			lastSearchNode = currentID
			searchDepth--
		}

		advanced := false
		for _, c := range ctx.scene.Connections {
			if c.OutputID != currentID {
				continue
			}
			for _, p := range path {
				if p == c.InputID {
					return state{}, found{}, false
				}
			}
			currentID = c.InputID
			if currentID == ctx.factoryID {
				dist := distanceFromConnector(ctx, lastSearchNode)
				return state{Tag: stateMerged}, found{Node: parentID, Stats: pathStats{Dist: dist, Depth: searchDepth}, OK: true}, true
			}
			path = append(path, currentID)
			advanced = true
			break
		}
		if !advanced {
			return state{}, found{}, false
		}
	}
}

// distanceFromConnector returns the distance map value for the output
// end of the building at id, letting the factory-adjacent connector's
// own distance-to-factory stand in for the merge point's distance.
func distanceFromConnector(ctx *searchContext, id board.ID) uint16 {
	b := ctx.scene.Buildings.Get(id)
	switch b.Kind {
	case board.KindFactory:
		return 0
	case board.KindMine:
		pos := b.Pos.Add(geom.MineOutputEndOffset[b.Rotation])
		d, _ := ctx.distanceMap.At(pos)
		return d
	case board.KindConveyor:
		var cells []geom.FootprintCell
		if b.Big {
			cells = geom.BigConveyorCells[b.Rotation]
		} else {
			cells = geom.SmallConveyorCells[b.Rotation]
		}
		d, _ := ctx.distanceMap.At(b.Pos.Add(outputOffset(cells)))
		return d
	case board.KindCombiner:
		d, _ := ctx.distanceMap.At(b.Pos.Add(outputOffset(geom.CombinerCells[b.Rotation])))
		return d
	default:
		panic("connect: deposit/obstacle cannot be a connector merge point")
	}
}

func outputOffset(cells []geom.FootprintCell) geom.Pos {
	for _, c := range cells {
		if c.Kind == geom.Output {
			return c.Offset
		}
	}
	panic("connect: footprint has no output cell")
}

// placeConnectors tries every conveyor/combiner placement anchored one
// step from startPos in one of the four directions already chosen by the
// caller, recording each into the shared children range.
func placeConnectors(ctx *searchContext, startPos geom.Pos, childrenID childrenID, length *uint16, best *found, searchDepth uint8) {
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, 0), geom.P(2, 0), false))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(0, 1), geom.P(0, 2), false))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-1, 0), geom.P(-2, 0), false))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(0, -1), geom.P(0, -2), false))

	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, 0), geom.P(3, 0), true))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(0, 1), geom.P(0, 3), true))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-2, 0), geom.P(-3, 0), true))
	cmpAndSet(best, placeConveyor(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(0, -2), geom.P(0, -3), true))

	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, 1), geom.P(2, 1)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, 0), geom.P(2, 0)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, -1), geom.P(2, -1)))

	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(1, 1), geom.P(1, 2)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(0, 1), geom.P(0, 2)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(-1, 1), geom.P(-1, 2)))

	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-1, 1), geom.P(-2, 1)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-1, 0), geom.P(-2, 0)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-1, -1), geom.P(-2, -1)))

	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(1, -1), geom.P(1, -2)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(0, -1), geom.P(0, -2)))
	cmpAndSet(best, placeCombiner(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(-1, -1), geom.P(-1, -2)))
}

func placeConveyor(ctx *searchContext, startPos geom.Pos, childrenID childrenID, length *uint16, searchDepth uint8, rotation geom.Rotation, posOffset, endOffset geom.Pos, big bool) found {
	endPos := startPos.Add(endOffset)
	endDist, ok := ctx.distanceMap.At(endPos)
	if !ok {
		return found{}
	}
	pos := startPos.Add(posOffset)
	b := connBuilding{Kind: connConveyor, Pos: pos, Rotation: rotation, Big: big}
	buildingID, err := board.Place(ctx.scene, b.toBuilding())
	if err != nil {
		return found{}
	}

	id := next(childrenID, length)
	st, stats := placeChildrenConnectors(ctx, buildingID, id, endPos, endDist, decr(searchDepth))
	board.Remove(ctx.scene, buildingID)

	ctx.tree.at(id).Building = b
	ctx.tree.at(id).StartPos = startPos
	ctx.tree.at(id).EndPos = endPos
	ctx.tree.at(id).State = st

	if !stats.OK {
		return found{}
	}
	return found{Node: id, Stats: stats.Stats, OK: true}
}

func placeCombiner(ctx *searchContext, startPos geom.Pos, childrenID childrenID, length *uint16, searchDepth uint8, rotation geom.Rotation, posOffset, endOffset geom.Pos) found {
	endPos := startPos.Add(endOffset)
	endDist, ok := ctx.distanceMap.At(endPos)
	if !ok {
		return found{}
	}
	pos := startPos.Add(posOffset)
	b := connBuilding{Kind: connCombiner, Pos: pos, Rotation: rotation}
	buildingID, err := board.Place(ctx.scene, b.toBuilding())
	if err != nil {
		return found{}
	}

	id := next(childrenID, length)
	st, stats := placeChildrenConnectors(ctx, buildingID, id, endPos, endDist, decr(searchDepth))
	board.Remove(ctx.scene, buildingID)

	ctx.tree.at(id).Building = b
	ctx.tree.at(id).StartPos = startPos
	ctx.tree.at(id).EndPos = endPos
	ctx.tree.at(id).State = st

	if !stats.OK {
		return found{}
	}
	return found{Node: id, Stats: stats.Stats, OK: true}
}

// placeMines tries docking a mine against the deposit edge cell at
// startPos from each of the four rotations.
func placeMines(ctx *searchContext, startPos geom.Pos, childrenID childrenID, length *uint16, searchDepth uint8) found {
	var best found
	cmpAndSet(&best, placeMine(ctx, startPos, childrenID, length, searchDepth, geom.RotRight, geom.P(1, -1), geom.P(3, 0)))
	cmpAndSet(&best, placeMine(ctx, startPos, childrenID, length, searchDepth, geom.RotDown, geom.P(0, 1), geom.P(0, 3)))
	cmpAndSet(&best, placeMine(ctx, startPos, childrenID, length, searchDepth, geom.RotLeft, geom.P(-2, 0), geom.P(-3, 0)))
	cmpAndSet(&best, placeMine(ctx, startPos, childrenID, length, searchDepth, geom.RotUp, geom.P(-1, -2), geom.P(0, -3)))
	return best
}

func placeMine(ctx *searchContext, startPos geom.Pos, childrenID childrenID, length *uint16, searchDepth uint8, rotation geom.Rotation, posOffset, endOffset geom.Pos) found {
	endPos := startPos.Add(endOffset)
	endDist, ok := ctx.distanceMap.At(endPos)
	if !ok {
		return found{}
	}
	pos := startPos.Add(posOffset)
	b := connBuilding{Kind: connMine, Pos: pos, Rotation: rotation}
	buildingID, err := board.Place(ctx.scene, b.toBuilding())
	if err != nil {
		return found{}
	}

	id := next(childrenID, length)
	st, stats := placeChildrenConnectors(ctx, buildingID, id, endPos, endDist, decr(searchDepth))
	board.Remove(ctx.scene, buildingID)

	ctx.tree.at(id).Building = b
	ctx.tree.at(id).StartPos = startPos
	ctx.tree.at(id).EndPos = endPos
	ctx.tree.at(id).State = st

	if !stats.OK {
		return found{}
	}
	return found{Node: id, Stats: stats.Stats, OK: true}
}
