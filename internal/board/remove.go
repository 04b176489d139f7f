package board

import "github.com/dshills/profitsolve/internal/geom"

// isVertical reports whether a conveyor of this rotation runs along the
// y-axis (its footprint offsets are (0,-1)/(0,1) rather than (-1,0)/(1,0)).
func isVertical(r geom.Rotation) bool { return uint8(r)%2 == 1 }

// Remove deletes the building at id: clears its cells, drops every
// connection touching it, and — if it was a conveyor — re-examines the
// perpendicular neighbors of each cleared inert cell so a pre-existing
// crossing with another conveyor is reinstated rather than left erased.
func Remove(scene *Scene, id ID) *Building {
	building := scene.Buildings.Remove(id)
	if building == nil {
		return nil
	}

	isConveyor := building.Kind == KindConveyor
	vertical := isConveyor && isVertical(building.Rotation)

	for y := int8(0); y < scene.Grid.Height; y++ {
		for x := int8(0); x < scene.Grid.Width; x++ {
			p := geom.P(x, y)
			c, _ := scene.Grid.At(p)
			if c == nil || c.Owner != id {
				continue
			}
			scene.Grid.Set(p, nil)

			if isConveyor && c.Kind == geom.Inert {
				reinstateCrossing(scene, p, vertical)
			}
		}
	}

	scene.Connections = filterConnections(scene.Connections, id)
	return building
}

// reinstateCrossing restores the inert cell at p if it was a legitimate
// crossing between two other conveyors that did not involve the building
// just removed.
func reinstateCrossing(scene *Scene, p geom.Pos, vertical bool) {
	var near, far geom.Pos
	var nearOff, farOff geom.Pos
	if vertical {
		nearOff, farOff = geom.P(-1, 0), geom.P(1, 0)
	} else {
		nearOff, farOff = geom.P(0, -1), geom.P(0, 1)
	}
	near = p.Add(nearOff)
	far = p.Add(farOff)

	left, leftOK := scene.Grid.At(near)
	right, rightOK := scene.Grid.At(far)
	if !leftOK || !rightOK || left == nil || right == nil {
		return
	}

	intersectingID := left.Owner
	if left.Owner != right.Owner {
		matches := false
		if twoNear, ok := scene.Grid.At(p.Add(geom.P(nearOff.X*2, nearOff.Y*2))); ok && twoNear != nil {
			if twoNear.Owner == right.Owner {
				intersectingID = right.Owner
				matches = true
			}
		}
		if twoFar, ok := scene.Grid.At(p.Add(geom.P(farOff.X*2, farOff.Y*2))); ok && twoFar != nil {
			if twoFar.Owner == left.Owner {
				intersectingID = left.Owner
				matches = true
			}
		}
		if !matches {
			return
		}
	}

	scene.Grid.Set(p, &Cell{Kind: geom.Inert, Owner: intersectingID})
}
