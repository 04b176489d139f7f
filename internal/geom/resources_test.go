package geom

import "testing"

func TestResourcesDivByZeroIsMax(t *testing.T) {
	held := NewResources([8]uint16{10, 0, 5, 0, 0, 0, 0, 0})
	recipe := NewResources([8]uint16{2, 0, 0, 0, 0, 0, 0, 0})

	got := held.Div(recipe)
	if got.Values[0] != 5 {
		t.Errorf("Div[0] = %d, want 5", got.Values[0])
	}
	for i := 1; i < ResourceTypes; i++ {
		if got.Values[i] != 65535 {
			t.Errorf("Div[%d] = %d, want 65535 (div by zero)", i, got.Values[i])
		}
	}
}

func TestResourcesMinIgnoresUnusedSlotsViaDivByZeroMax(t *testing.T) {
	// A recipe with a zero slot must not block production: held[t]=0 for
	// an unused recipe slot divides to MaxUint16, so Min() is governed
	// only by the slots the recipe actually needs.
	held := NewResources([8]uint16{14, 0, 0, 0, 0, 0, 0, 0})
	recipe := NewResources([8]uint16{7, 0, 0, 0, 0, 0, 0, 0})
	count := held.Div(recipe).Min()
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestResourcesSubSaturatesAtZero(t *testing.T) {
	a := NewResources([8]uint16{1, 0, 0, 0, 0, 0, 0, 0})
	b := NewResources([8]uint16{5, 0, 0, 0, 0, 0, 0, 0})
	got := a.Sub(b)
	if got.Values[0] != 0 {
		t.Fatalf("Sub underflow: got %d, want 0", got.Values[0])
	}
}

func TestResourcesHasAtLeast(t *testing.T) {
	have := NewResources([8]uint16{7, 2, 0, 0, 0, 0, 0, 0})
	need := NewResources([8]uint16{7, 0, 0, 0, 0, 0, 0, 0})
	if !have.HasAtLeast(need) {
		t.Fatal("expected have to satisfy need")
	}
	need.Values[1] = 3
	if have.HasAtLeast(need) {
		t.Fatal("expected have to no longer satisfy need")
	}
}

func TestResourcesIsEmpty(t *testing.T) {
	var r Resources
	if !r.IsEmpty() {
		t.Fatal("zero-value Resources should be empty")
	}
	r.Values[3] = 1
	if r.IsEmpty() {
		t.Fatal("Resources with a non-zero slot should not be empty")
	}
}

func TestPosManhattanLenAndRotation(t *testing.T) {
	p := P(3, -4)
	if got := p.ManhattanLen(); got != 7 {
		t.Fatalf("ManhattanLen = %d, want 7", got)
	}
	rotated := P(1, 0).Rot90()
	if rotated != (Pos{X: 0, Y: -1}) {
		t.Fatalf("Rot90 = %+v, want (0,-1)", rotated)
	}
}

func TestRotationValid(t *testing.T) {
	if !RotUp.Valid() {
		t.Fatal("RotUp should be valid")
	}
	if Rotation(4).Valid() {
		t.Fatal("Rotation(4) should not be valid")
	}
}
