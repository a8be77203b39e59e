package coastline

import (
	"testing"
)

// Test fixtures: features in a small harbor area around (0, 0).

func lineFeature(id int64, class string, coords [][]float64, attrs map[string]interface{}) Feature {
	return NewFeature(id, class, NewLineGeometry(coords), attrs)
}

func polygonFeature(id int64, class string, rings [][][]float64, attrs map[string]interface{}) Feature {
	return NewFeature(id, class, NewPolygonGeometry(rings), attrs)
}

// openSquare is an unclosed square ring, ~1.1 km on a side.
func openSquare(lon, lat float64) [][]float64 {
	return [][]float64{
		{lon, lat},
		{lon + 0.01, lat},
		{lon + 0.01, lat + 0.01},
		{lon, lat + 0.01},
	}
}

func TestExtractExplicitCoastline(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	features := []Feature{
		lineFeature(1, "COALNE", [][]float64{{0, 0}, {0.01, 0}, {0.02, 0.01}}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}

	s := segments[0]
	if s.Method != MethodExplicit {
		t.Errorf("Expected explicit method, got %s", s.Method)
	}
	if s.Class != ClassCoastline {
		t.Errorf("Expected coastline class, got %s", s.Class)
	}
	if s.PrimarySource != "COALNE" {
		t.Errorf("Expected primary source COALNE, got %s", s.PrimarySource)
	}
	if len(s.Coordinates) != 3 {
		t.Errorf("Expected 3 coordinates, got %d", len(s.Coordinates))
	}
}

func TestExtractLandAreaBoundary(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	features := []Feature{
		polygonFeature(1, "LNDARE", [][][]float64{openSquare(0, 0)}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}

	s := segments[0]
	if s.Method != MethodDerived {
		t.Errorf("Expected derived method, got %s", s.Method)
	}

	// Ring must come out closed even when the source ring was open.
	first := s.Coordinates[0]
	last := s.Coordinates[len(s.Coordinates)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Errorf("Expected closed ring, got first=%v last=%v", first, last)
	}
}

func TestExtractLandAreaHoleRings(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Land area with a lake hole: both rings are boundaries.
	features := []Feature{
		polygonFeature(1, "LNDARE", [][][]float64{
			openSquare(0, 0),
			openSquare(0.002, 0.002),
		}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments (exterior + hole), got %d", len(segments))
	}
}

func TestExtractMultiPolygonExplodesRings(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	features := []Feature{
		NewFeature(1, "LNDARE", NewMultiPolygonGeometry([][][][]float64{
			{openSquare(0, 0)},
			{openSquare(0.1, 0.1)},
		}), nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments (one per member polygon), got %d", len(segments))
	}
}

func TestExtractDepthAreaFilter(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	tests := []struct {
		name     string
		attrs    map[string]interface{}
		expected int
	}{
		{"drying boundary", map[string]interface{}{"DRVAL1": 0.0}, 1},
		{"shallow reference", map[string]interface{}{"DRVAL1": 1.5}, 1},
		{"shallow limit", map[string]interface{}{"DRVAL1": 2.0}, 1},
		{"too deep", map[string]interface{}{"DRVAL1": 5.0}, 0},
		{"negative depth", map[string]interface{}{"DRVAL1": -1.0}, 0},
		{"missing attribute", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := []Feature{
				polygonFeature(1, "DEPARE", [][][]float64{openSquare(0, 0)}, tt.attrs),
			}
			segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
			if len(segments) != tt.expected {
				t.Errorf("Expected %d segments, got %d", tt.expected, len(segments))
			}
			if tt.expected == 1 {
				if segments[0].Class != ClassShoreline {
					t.Errorf("Expected shoreline class, got %s", segments[0].Class)
				}
				if segments[0].DepthValue == nil {
					t.Error("Expected depth value to be carried")
				}
			}
		})
	}
}

func TestExtractDepthContourFilter(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	line := [][]float64{{0, 0}, {0.01, 0.01}}

	tests := []struct {
		name     string
		attrs    map[string]interface{}
		expected int
	}{
		{"zero contour", map[string]interface{}{"VALDCO": 0.0}, 1},
		{"shallow contour", map[string]interface{}{"VALDCO": 2.0}, 1},
		{"deep contour", map[string]interface{}{"VALDCO": 10.0}, 0},
		{"missing value", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := []Feature{lineFeature(1, "DEPCNT", line, tt.attrs)}
			segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
			if len(segments) != tt.expected {
				t.Errorf("Expected %d segments, got %d", tt.expected, len(segments))
			}
		})
	}
}

func TestExtractConstructionSubtype(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	tests := []struct {
		catslc  int
		subtype string
	}{
		{1, "breakwater"},
		{4, "pier"},
		{6, "wharf"},
		{10, "seawall"},
	}

	for _, tt := range tests {
		features := []Feature{
			lineFeature(1, "SLCONS", [][]float64{{0, 0}, {0.001, 0}},
				map[string]interface{}{"CATSLC": tt.catslc}),
		}
		segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
		if len(segments) != 1 {
			t.Fatalf("CATSLC %d: expected 1 segment, got %d", tt.catslc, len(segments))
		}
		if segments[0].Subtype != tt.subtype {
			t.Errorf("CATSLC %d: expected subtype %q, got %q", tt.catslc, tt.subtype, segments[0].Subtype)
		}
		if segments[0].Class != ClassConstructed {
			t.Errorf("CATSLC %d: expected constructed class, got %s", tt.catslc, segments[0].Class)
		}
	}
}

func TestExtractSkipsMalformedFeature(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// A COALNE carrying polygon geometry is malformed; extraction skips it
	// and keeps going.
	features := []Feature{
		NewFeature(1, "COALNE", NewPolygonGeometry([][][]float64{openSquare(0, 0)}), nil),
		lineFeature(2, "COALNE", [][]float64{{0, 0}, {0.01, 0}}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 1 {
		t.Fatalf("Expected malformed feature skipped, 1 segment extracted, got %d", len(segments))
	}
}

func TestExtractDisabledCategories(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	features := []Feature{
		lineFeature(1, "COALNE", [][]float64{{0, 0}, {0.01, 0}}, nil),
		polygonFeature(2, "LNDARE", [][][]float64{openSquare(0, 0)}, nil),
	}

	opts := ExtractOptions{LandAreas: true}
	segments := engine.ExtractCoastlines(features, opts)
	if len(segments) != 1 {
		t.Fatalf("Expected only land area extracted, got %d segments", len(segments))
	}
	if segments[0].PrimarySource != "LNDARE" {
		t.Errorf("Expected LNDARE source, got %s", segments[0].PrimarySource)
	}
}

func TestExtractHarborAreas(t *testing.T) {
	engine := NewEngine(EngineOptions{})
	features := []Feature{
		polygonFeature(1, "HRBARE", [][][]float64{openSquare(0, 0)}, nil),
		polygonFeature(2, "DOCARE", [][][]float64{openSquare(0.1, 0)}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segments))
	}
	for _, s := range segments {
		if s.Class != ClassConstructed {
			t.Errorf("Expected constructed class for %s, got %s", s.PrimarySource, s.Class)
		}
	}
}

func TestExtractBuiltStructures(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Lines pass through, polygons derive boundary rings.
	features := []Feature{
		lineFeature(1, "BRIDGE", [][]float64{{0, 0}, {0.001, 0}}, nil),
		polygonFeature(2, "CAUSWY", [][][]float64{openSquare(0.1, 0)}, nil),
	}

	segments := engine.ExtractCoastlines(features, DefaultExtractOptions())
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segments))
	}
	if segments[0].Method != MethodExplicit {
		t.Errorf("Expected explicit method for BRIDGE line, got %s", segments[0].Method)
	}
	if segments[1].Method != MethodDerived {
		t.Errorf("Expected derived method for CAUSWY polygon, got %s", segments[1].Method)
	}
}
