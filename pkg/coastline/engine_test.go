package coastline

import (
	"testing"
)

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	if engine == nil {
		t.Fatal("NewEngine returned nil")
	}
	if engine.priorities == nil {
		t.Error("Expected default priority table")
	}
	if engine.classifier == nil {
		t.Error("Expected default classifier")
	}
	if engine.log == nil {
		t.Error("Expected no-op logger")
	}
}

func TestDefaultPrioritiesOrdering(t *testing.T) {
	p := DefaultPriorities()

	// Engineered boundaries outrank natural lines outrank polygon edges.
	ordered := []string{"BERTHS", "SLCONS", "COALNE", "DEPCNT", "LNDARE", "DEPARE"}
	for i := 1; i < len(ordered); i++ {
		if p.Rank(ordered[i-1]) >= p.Rank(ordered[i]) {
			t.Errorf("Expected %s to outrank %s", ordered[i-1], ordered[i])
		}
	}

	if p.Rank("NOSUCH") != unrankedPriority {
		t.Errorf("Expected sentinel rank for unranked class, got %d", p.Rank("NOSUCH"))
	}

	// DefaultPriorities returns a copy; mutation must not leak.
	p["COALNE"] = 1
	if DefaultPriorities().Rank("COALNE") == 1 {
		t.Error("DefaultPriorities must return an independent copy")
	}
}

func TestBuildCoastlinesPipeline(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	features := []Feature{
		// An island ring and a mainland stretch.
		polygonFeature(1, "LNDARE", [][][]float64{openSquare(0.5, 0.5)}, nil),
		lineFeature(2, "COALNE", [][]float64{{0, 0}, {0, 0.001}}, nil),
		lineFeature(3, "COALNE", [][]float64{{0, 0.001}, {0, 0.002}}, nil),
		// Deep water contributes nothing.
		polygonFeature(4, "DEPARE", [][][]float64{openSquare(0.2, 0.2)},
			map[string]interface{}{"DRVAL1": 20.0}),
	}

	result, err := engine.BuildCoastlines(features, DefaultBuildOptions())
	if err != nil {
		t.Fatalf("BuildCoastlines failed: %v", err)
	}

	if result.Stats.FeatureCount != 4 {
		t.Errorf("Expected 4 input features, got %d", result.Stats.FeatureCount)
	}
	if result.Stats.SegmentCount != 3 {
		t.Errorf("Expected 3 raw segments, got %d", result.Stats.SegmentCount)
	}
	if result.Stats.ChainCount != 2 {
		t.Errorf("Expected 2 chains, got %d", result.Stats.ChainCount)
	}
	if result.Stats.ClosedRingCount != 1 {
		t.Errorf("Expected 1 closed ring, got %d", result.Stats.ClosedRingCount)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(result.Lines))
	}

	var island, open *ProcessedLine
	for i := range result.Lines {
		if result.Lines[i].Closed {
			island = &result.Lines[i]
		} else {
			open = &result.Lines[i]
		}
	}
	if island == nil || island.Subtype != SubtypeIsland {
		t.Error("Expected a closed island line")
	}
	if open == nil || len(open.Coordinates) != 3 {
		t.Error("Expected the two coastline segments stitched into one open line")
	}

	if result.Stats.TotalLengthMeter <= 0 {
		t.Error("Expected positive total length")
	}
}

func TestBuildCoastlinesFillsGaps(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Two coastline stretches separated by a ~78 m break.
	features := []Feature{
		lineFeature(1, "COALNE", [][]float64{{0, -0.01}, {0, 0}}, nil),
		lineFeature(2, "COALNE", [][]float64{{0, 0.0007}, {0, 0.0107}}, nil),
	}

	opts := DefaultBuildOptions()
	opts.Stitch.FillGaps = true

	result, err := engine.BuildCoastlines(features, opts)
	if err != nil {
		t.Fatalf("BuildCoastlines failed: %v", err)
	}

	if result.Stats.GapCount != 1 {
		t.Errorf("Expected 1 gap detected, got %d", result.Stats.GapCount)
	}
	if result.Stats.FilledGapCount != 1 {
		t.Errorf("Expected 1 gap filled, got %d", result.Stats.FilledGapCount)
	}
	if result.Stats.ChainCount != 1 {
		t.Errorf("Expected chains bridged into 1, got %d", result.Stats.ChainCount)
	}
	if len(result.Lines) == 1 && result.Lines[0].GapCount != 1 {
		t.Errorf("Expected line GapCount 1, got %d", result.Lines[0].GapCount)
	}
}

func TestBuildCoastlinesRejectsInvalidOptions(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	opts := DefaultBuildOptions()
	opts.Stitch.MaxGapDistanceMeters = -5

	if _, err := engine.BuildCoastlines(nil, opts); err == nil {
		t.Fatal("Expected options validation error")
	}
}
