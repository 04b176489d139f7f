package solveconfig

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadConfigFromBytes_PartialOverride(t *testing.T) {
	yaml := `
startingSearchDepth: 4
combinerCandidateCap: 200
`
	cfg, err := LoadConfigFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() failed: %v", err)
	}
	if cfg.StartingSearchDepth != 4 {
		t.Errorf("StartingSearchDepth = %d, want 4", cfg.StartingSearchDepth)
	}
	if cfg.CombinerCandidateCap != 200 {
		t.Errorf("CombinerCandidateCap = %d, want 200", cfg.CombinerCandidateCap)
	}
	// Fields not present in the YAML keep their Default value.
	if cfg.NonImprovementLimit != Default().NonImprovementLimit {
		t.Errorf("NonImprovementLimit = %d, want default %d", cfg.NonImprovementLimit, Default().NonImprovementLimit)
	}
}

func TestValidateRejectsInvertedDepthBounds(t *testing.T) {
	cfg := Default()
	cfg.StartingSearchDepth = 10
	cfg.MaxSearchDepth = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when maxSearchDepth < startingSearchDepth")
	}
}

func TestValidateRejectsZeroNonImprovementLimit(t *testing.T) {
	cfg := Default()
	cfg.NonImprovementLimit = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for nonImprovementLimit = 0")
	}
}

func TestHashIsDeterministic(t *testing.T) {
	a := Default().Hash()
	b := Default().Hash()
	if len(a) != len(b) {
		t.Fatalf("hash length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Hash() is not deterministic for an identical config")
		}
	}
}
