package board

import "github.com/dshills/profitsolve/internal/geom"

// Place installs building into the scene: allocates a slot, stamps every
// footprint cell, and runs every adjacency check. On any error the whole
// placement is undone (cells cleared, connections dropped, slot freed)
// and the error is returned.
func Place(scene *Scene, building Building) (ID, error) {
	id := scene.Buildings.Push(building)

	err := stampAndCheck(scene, id, building)
	if err != nil {
		undoPlacement(scene, id)
	}
	return id, err
}

func stampAndCheck(scene *Scene, id ID, b Building) error {
	switch b.Kind {
	case KindDeposit:
		return placeRect(scene, id, b.Pos, int8(b.Width), int8(b.Height), geom.Output)
	case KindObstacle:
		return placeRectInert(scene, id, b.Pos, int8(b.Width), int8(b.Height))
	case KindMine:
		return placeTemplate(scene, id, b.Pos, geom.MineCells[b.Rotation], geom.AdjacentMineCells[b.Rotation])
	case KindConveyor:
		if b.Big {
			return placeTemplate(scene, id, b.Pos, geom.BigConveyorCells[b.Rotation], geom.AdjacentBigConveyorCells[b.Rotation])
		}
		return placeTemplate(scene, id, b.Pos, geom.SmallConveyorCells[b.Rotation], geom.AdjacentSmallConveyorCells[b.Rotation])
	case KindCombiner:
		return placeTemplate(scene, id, b.Pos, geom.CombinerCells[b.Rotation], geom.AdjacentCombinerCells[b.Rotation])
	case KindFactory:
		return placeRect(scene, id, b.Pos, geom.FactorySize, geom.FactorySize, geom.Input)
	default:
		panic("board: unknown building kind")
	}
}

func placeTemplate(scene *Scene, id ID, anchor geom.Pos, cells []geom.FootprintCell, adjacency []geom.AdjacencyPair) error {
	for _, c := range cells {
		if err := placeCell(scene, anchor.Add(c.Offset), Cell{Kind: c.Kind, Owner: id}); err != nil {
			return err
		}
	}
	for _, a := range adjacency {
		if err := checkAdjacentCells(scene, anchor.Add(a.Probe), anchor.Add(a.Own)); err != nil {
			return err
		}
	}
	return nil
}

// placeRect stamps a w x h rectangle of uniform kind (deposit outputs,
// factory inputs) and sweeps its perimeter for adjacency checks.
func placeRect(scene *Scene, id ID, anchor geom.Pos, w, h int8, kind geom.CellKind) error {
	for y := int8(0); y < h; y++ {
		for x := int8(0); x < w; x++ {
			p := anchor.Add(geom.P(x, y))
			if err := placeCell(scene, p, Cell{Kind: kind, Owner: id}); err != nil {
				return err
			}
		}
	}
	for x := int8(0); x < w; x++ {
		if err := checkAdjacentCells(scene, anchor.Add(geom.P(x, 0)), anchor.Add(geom.P(x, -1))); err != nil {
			return err
		}
	}
	for y := int8(0); y < h; y++ {
		if err := checkAdjacentCells(scene, anchor.Add(geom.P(0, y)), anchor.Add(geom.P(-1, y))); err != nil {
			return err
		}
		if err := checkAdjacentCells(scene, anchor.Add(geom.P(w-1, y)), anchor.Add(geom.P(w, y))); err != nil {
			return err
		}
	}
	for x := int8(0); x < w; x++ {
		if err := checkAdjacentCells(scene, anchor.Add(geom.P(x, h-1)), anchor.Add(geom.P(x, h))); err != nil {
			return err
		}
	}
	return nil
}

// placeRectInert stamps an obstacle: every cell inert, no adjacency sweep
// (obstacles never participate in flow).
func placeRectInert(scene *Scene, id ID, anchor geom.Pos, w, h int8) error {
	for y := int8(0); y < h; y++ {
		for x := int8(0); x < w; x++ {
			p := anchor.Add(geom.P(x, y))
			if err := placeCell(scene, p, Cell{Kind: geom.Inert, Owner: id}); err != nil {
				return err
			}
		}
	}
	return nil
}

// placeCell stamps a single cell, enforcing bounds and the intersection
// rule. Two cells may share a position only when both belong to Conveyor
// buildings and both are Inert at that position (a conveyor crossing) —
// any other overlap is an Intersection.
func placeCell(scene *Scene, pos geom.Pos, cell Cell) error {
	existing, inBounds := scene.Grid.At(pos)
	if !inBounds {
		return placementErr(ReasonOutOfBounds, pos)
	}
	if existing != nil {
		otherBuilding := scene.Buildings.Get(existing.Owner)
		newBuilding := scene.Buildings.Get(cell.Owner)
		crossing := otherBuilding != nil && newBuilding != nil &&
			otherBuilding.Kind == KindConveyor && newBuilding.Kind == KindConveyor &&
			existing.Kind == geom.Inert && cell.Kind == geom.Inert
		if !crossing {
			return placementErr(ReasonIntersection, pos)
		}
	}
	cp := cell
	scene.Grid.Set(pos, &cp)
	return nil
}

// checkAdjacentCells tests whether exactly one of the two cells is an
// Output and the other an Input, and if so runs checkConnection with the
// output first.
func checkAdjacentCells(scene *Scene, posA, posB geom.Pos) error {
	a, aok := scene.Grid.At(posA)
	b, bok := scene.Grid.At(posB)
	if !aok || !bok || a == nil || b == nil {
		return nil
	}
	switch {
	case a.Kind == geom.Output && b.Kind == geom.Input:
		return checkConnection(scene, posA, *a, posB, *b)
	case a.Kind == geom.Input && b.Kind == geom.Output:
		return checkConnection(scene, posB, *b, posA, *a)
	default:
		return nil
	}
}

// checkConnection enforces per-kind egress legality and the
// single-outgoing-connection rule, appending a Connection on success.
func checkConnection(scene *Scene, outputPos geom.Pos, output Cell, inputPos geom.Pos, input Cell) error {
	source := scene.Buildings.Get(output.Owner)
	dest := scene.Buildings.Get(input.Owner)
	if source == nil || dest == nil {
		return nil
	}

	switch source.Kind {
	case KindDeposit:
		if dest.Kind != KindMine {
			return placementErr(ReasonDepositEgress, inputPos)
		}
	case KindMine:
		if dest.Kind == KindMine {
			return placementErr(ReasonMineEgress, outputPos)
		}
	case KindConveyor, KindCombiner:
		// any input is a legal sink
	default:
		// Factory/Obstacle are never legal sources; the footprint never
		// stamps an Output cell for them, so this is unreachable.
		return nil
	}

	for _, c := range scene.Connections {
		if c.OutputPos == outputPos {
			return placementErr(ReasonMultipleIngresses, outputPos)
		}
	}

	scene.Connections = append(scene.Connections, Connection{
		OutputID:  output.Owner,
		OutputPos: outputPos,
		InputID:   input.Owner,
		InputPos:  inputPos,
	})
	return nil
}

// undoPlacement reverses a failed Place: clears every cell owned by id,
// drops connections touching id, and frees the slot.
func undoPlacement(scene *Scene, id ID) {
	scene.Buildings.Remove(id)
	for y := int8(0); y < scene.Grid.Height; y++ {
		for x := int8(0); x < scene.Grid.Width; x++ {
			p := geom.P(x, y)
			if c, _ := scene.Grid.At(p); c != nil && c.Owner == id {
				scene.Grid.Set(p, nil)
			}
		}
	}
	scene.Connections = filterConnections(scene.Connections, id)
}

func filterConnections(conns []Connection, id ID) []Connection {
	out := conns[:0]
	for _, c := range conns {
		if c.InputID == id || c.OutputID == id {
			continue
		}
		out = append(out, c)
	}
	return out
}
