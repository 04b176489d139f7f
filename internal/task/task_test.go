package task

import (
	"encoding/json"
	"testing"

	"github.com/dshills/profitsolve/internal/board"
	"github.com/dshills/profitsolve/internal/simulate"
)

func smallestProducingTaskJSON() []byte {
	doc := Task{
		Width:  20,
		Height: 10,
		Objects: []Object{
			{Type: kindDeposit, Subtype: 0, X: 0, Y: 0, Width: 4, Height: 4},
			{Type: kindMine, Subtype: uint8(3), X: 5, Y: 1}, // rot=Up
			{Type: kindFactory, Subtype: 0, X: 8, Y: 0},
		},
		Products: []ProductSpec{
			{Subtype: 0, Resources: [8]uint16{7, 0, 0, 0, 0, 0, 0, 0}, Points: 9},
		},
		Turns: 100,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

func TestParseTaskSmallestProducingScene(t *testing.T) {
	scene, err := ParseTask(smallestProducingTaskJSON())
	if err != nil {
		t.Fatalf("ParseTask: %v", err)
	}

	run := simulate.Run(scene)
	want := simulate.SimRun{Rounds: 29, Points: 99, AtTurn: 28}
	if run != want {
		t.Fatalf("Run = %+v, want %+v", run, want)
	}
}

func TestParseTaskUnknownSubtype(t *testing.T) {
	doc := Task{
		Width:  5,
		Height: 5,
		Objects: []Object{
			{Type: kindMine, Subtype: 7, X: 1, Y: 1},
		},
		Turns: 10,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseTask(data); err == nil {
		t.Fatal("expected an unknown-subtype error, got nil")
	}
}

func TestParseTaskUnknownKind(t *testing.T) {
	raw := []byte(`{"width":5,"height":5,"objects":[{"type":"teleporter","x":0,"y":0}],"turns":1,"time":1}`)
	if _, err := ParseTask(raw); err == nil {
		t.Fatal("expected an unknown-kind error, got nil")
	}
}

func TestEncodeSolutionOmitsDepositsAndObstacles(t *testing.T) {
	scene, err := ParseTask(smallestProducingTaskJSON())
	if err != nil {
		t.Fatalf("ParseTask: %v", err)
	}

	data, err := EncodeSolution(scene)
	if err != nil {
		t.Fatalf("EncodeSolution: %v", err)
	}

	var objs []Object
	if err := json.Unmarshal(data, &objs); err != nil {
		t.Fatalf("decoding solution: %v", err)
	}
	for _, o := range objs {
		if o.Type == kindDeposit || o.Type == kindObstacle {
			t.Fatalf("solution must not contain %s objects, got %+v", o.Type, o)
		}
		if o.Width != 0 || o.Height != 0 {
			t.Fatalf("solution objects must omit width/height, got %+v", o)
		}
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 solver-placed objects (mine, factory), got %d", len(objs))
	}
}

func TestEncodeSolutionRoundTripsThroughParseTask(t *testing.T) {
	// A solution is itself a valid task object list (minus deposits and
	// obstacles), so re-parsing it against a scene that already carries
	// the deposits/obstacles must reproduce the same connector layout.
	scene, err := ParseTask(smallestProducingTaskJSON())
	if err != nil {
		t.Fatalf("ParseTask: %v", err)
	}
	data, err := EncodeSolution(scene)
	if err != nil {
		t.Fatalf("EncodeSolution: %v", err)
	}

	var objs []Object
	if err := json.Unmarshal(data, &objs); err != nil {
		t.Fatalf("decoding solution: %v", err)
	}

	base, err := ParseTask(baseTaskWithoutConnectorsJSON())
	if err != nil {
		t.Fatalf("ParseTask(base): %v", err)
	}
	for _, o := range objs {
		b, err := o.toBuilding()
		if err != nil {
			t.Fatalf("toBuilding(%+v): %v", o, err)
		}
		if _, err := board.Place(base, b); err != nil {
			t.Fatalf("Place(%+v): %v", o, err)
		}
	}

	run := simulate.Run(base)
	want := simulate.SimRun{Rounds: 29, Points: 99, AtTurn: 28}
	if run != want {
		t.Fatalf("Run = %+v, want %+v", run, want)
	}
}

func baseTaskWithoutConnectorsJSON() []byte {
	doc := Task{
		Width:  20,
		Height: 10,
		Objects: []Object{
			{Type: kindDeposit, Subtype: 0, X: 0, Y: 0, Width: 4, Height: 4},
		},
		Products: []ProductSpec{
			{Subtype: 0, Resources: [8]uint16{7, 0, 0, 0, 0, 0, 0, 0}, Points: 9},
		},
		Turns: 100,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}
