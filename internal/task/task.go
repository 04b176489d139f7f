// Package task implements the external JSON task/solution codec (§6):
// parsing a task description into a *board.Scene, and serializing the
// solver's chosen buildings back into a solution document. This is the
// only package that knows the wire schema; everything else operates on
// board.Scene and board.Building.
package task

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/geom"
)

// Task is the root input document: board dimensions, the fixed objects
// (deposits, obstacles, and optionally a partial pre-built scene),
// product recipes, and the turn/time budget.
type Task struct {
	Width   int8          `json:"width"`
	Height  int8          `json:"height"`
	Objects []Object      `json:"objects"`
	Products []ProductSpec `json:"products"`
	Turns   uint32        `json:"turns"`
	Time    uint32        `json:"time"`
}

// Object is one placed building in the task's object list or the
// solution's output list. Width/Height are only meaningful for kinds
// with a rectangular footprint (deposit, obstacle) and are omitted from
// solutions, which only ever carry solver-emitted kinds.
type Object struct {
	Type    string `json:"type"`
	Subtype uint8  `json:"subtype,omitempty"`
	X       int8   `json:"x"`
	Y       int8   `json:"y"`
	Width   uint8  `json:"width,omitempty"`
	Height  uint8  `json:"height,omitempty"`
}

// ProductSpec is one product recipe entry in the task document.
type ProductSpec struct {
	Subtype   uint8                      `json:"subtype"`
	Resources [geom.ResourceTypes]uint16 `json:"resources"`
	Points    uint32                     `json:"points"`
}

// Solution is the output document: every building the solver placed,
// restricted to the kinds it is allowed to emit.
type Solution struct {
	Objects []Object `json:"objects"`
}

const (
	kindDeposit  = "deposit"
	kindObstacle = "obstacle"
	kindMine     = "mine"
	kindConveyor = "conveyor"
	kindCombiner = "combiner"
	kindFactory  = "factory"
)

// ParseTask decodes a JSON task document into a fresh *board.Scene with
// every fixed object (deposits, obstacles, and any pre-placed
// connectors) already validated and placed. Parse failures — malformed
// JSON, an unknown subtype byte, or a placement the validator rejects —
// are all fatal per §7.
func ParseTask(data []byte) (*board.Scene, error) {
	var t Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("task: decoding JSON: %w", err)
	}
	return t.toScene()
}

func (t Task) toScene() (*board.Scene, error) {
	var products [geom.ProductTypes]geom.Product
	for _, p := range t.Products {
		if p.Subtype >= geom.ProductTypes {
			return nil, unknownSubtype("Product", p.Subtype)
		}
		products[p.Subtype] = geom.Product{Resources: geom.NewResources(p.Resources), Points: p.Points}
	}

	scene := board.NewScene(products, t.Width, t.Height, t.Turns, float64(t.Time))

	for _, o := range t.Objects {
		building, err := o.toBuilding()
		if err != nil {
			return nil, err
		}
		if _, err := board.Place(scene, building); err != nil {
			return nil, fmt.Errorf("task: placing %s at (%d, %d): %w", o.Type, o.X, o.Y, err)
		}
	}

	return scene, nil
}

func (o Object) toBuilding() (board.Building, error) {
	pos := geom.P(o.X, o.Y)
	switch o.Type {
	case kindDeposit:
		if o.Subtype >= geom.ResourceTypes {
			return board.Building{}, unknownSubtype("Deposit", o.Subtype)
		}
		return board.Building{Kind: board.KindDeposit, Pos: pos, Width: o.Width, Height: o.Height, ResourceType: o.Subtype}, nil
	case kindObstacle:
		return board.Building{Kind: board.KindObstacle, Pos: pos, Width: o.Width, Height: o.Height}, nil
	case kindMine:
		rot, err := toRotation("Mine", o.Subtype)
		if err != nil {
			return board.Building{}, err
		}
		return board.Building{Kind: board.KindMine, Pos: pos, Rotation: rot}, nil
	case kindConveyor:
		if o.Subtype >= 8 {
			return board.Building{}, unknownSubtype("Conveyor", o.Subtype)
		}
		rot, err := toRotation("Conveyor", o.Subtype%4)
		if err != nil {
			return board.Building{}, err
		}
		return board.Building{Kind: board.KindConveyor, Pos: pos, Rotation: rot, Big: o.Subtype/4 == 1}, nil
	case kindCombiner:
		rot, err := toRotation("Combiner", o.Subtype)
		if err != nil {
			return board.Building{}, err
		}
		return board.Building{Kind: board.KindCombiner, Pos: pos, Rotation: rot}, nil
	case kindFactory:
		if o.Subtype >= geom.ProductTypes {
			return board.Building{}, unknownSubtype("Factory", o.Subtype)
		}
		return board.Building{Kind: board.KindFactory, Pos: pos, ProductType: o.Subtype}, nil
	default:
		return board.Building{}, &UnknownKindError{Kind: o.Type}
	}
}

func toRotation(kind string, subtype uint8) (geom.Rotation, error) {
	if subtype > uint8(geom.RotUp) {
		return 0, unknownSubtype(kind, subtype)
	}
	return geom.Rotation(subtype), nil
}

// EncodeSolution serializes every solver-emittable building (mine,
// conveyor, combiner, factory) in scene into a solution document. The
// task's own deposits and obstacles are never emitted — the codec
// contract restricts output to kinds the solver can place (§6).
func EncodeSolution(scene *board.Scene) ([]byte, error) {
	sol := Solution{Objects: []Object{}}
	scene.Buildings.All(func(_ board.ID, b *board.Building) {
		obj, ok := objectFromBuilding(*b)
		if ok {
			sol.Objects = append(sol.Objects, obj)
		}
	})
	return json.Marshal(sol.Objects)
}

func objectFromBuilding(b board.Building) (Object, bool) {
	switch b.Kind {
	case board.KindMine:
		return Object{Type: kindMine, Subtype: uint8(b.Rotation), X: b.Pos.X, Y: b.Pos.Y}, true
	case board.KindConveyor:
		subtype := uint8(b.Rotation)
		if b.Big {
			subtype += 4
		}
		return Object{Type: kindConveyor, Subtype: subtype, X: b.Pos.X, Y: b.Pos.Y}, true
	case board.KindCombiner:
		return Object{Type: kindCombiner, Subtype: uint8(b.Rotation), X: b.Pos.X, Y: b.Pos.Y}, true
	case board.KindFactory:
		return Object{Type: kindFactory, Subtype: b.ProductType, X: b.Pos.X, Y: b.Pos.Y}, true
	default:
		return Object{}, false
	}
}
