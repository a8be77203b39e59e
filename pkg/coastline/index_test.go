package coastline

import (
	"testing"
)

func testIndexFeatures() []Feature {
	return []Feature{
		lineFeature(1, "COALNE", [][]float64{{0, 0}, {0.01, 0}}, nil),
		polygonFeature(2, "LNDARE", [][][]float64{closeRing(openSquare(0, 0))}, nil),
		lineFeature(3, "BERTHS", [][]float64{{0.005, 0.005}, {0.006, 0.005}}, nil),
		lineFeature(4, "COALNE", [][]float64{{5, 5}, {5.01, 5}}, nil),
	}
}

func TestFeatureIndexQuery(t *testing.T) {
	idx := NewFeatureIndex(testIndexFeatures(), nil)

	if idx.Count() != 4 {
		t.Fatalf("Expected 4 indexed features, got %d", idx.Count())
	}

	// Query around the origin: the feature at (5, 5) is excluded.
	hits := idx.Query(Bounds{MinLon: -0.1, MaxLon: 0.1, MinLat: -0.1, MaxLat: 0.1}, QueryOptions{})
	if len(hits) != 3 {
		t.Fatalf("Expected 3 features near origin, got %d", len(hits))
	}

	// Results are ordered by priority rank: BERTHS before COALNE before LNDARE.
	if hits[0].ObjectClass() != "BERTHS" {
		t.Errorf("Expected BERTHS first, got %s", hits[0].ObjectClass())
	}
	if hits[2].ObjectClass() != "LNDARE" {
		t.Errorf("Expected LNDARE last, got %s", hits[2].ObjectClass())
	}
}

func TestFeatureIndexClassFilter(t *testing.T) {
	idx := NewFeatureIndex(testIndexFeatures(), nil)

	hits := idx.Query(
		Bounds{MinLon: -1, MaxLon: 6, MinLat: -1, MaxLat: 6},
		QueryOptions{ObjectClasses: []string{"COALNE"}},
	)
	if len(hits) != 2 {
		t.Fatalf("Expected 2 COALNE features, got %d", len(hits))
	}
	for _, f := range hits {
		if f.ObjectClass() != "COALNE" {
			t.Errorf("Filter leaked %s", f.ObjectClass())
		}
	}
}

func TestFeatureIndexPointFeature(t *testing.T) {
	// Point features have degenerate bounds; the index pads them.
	features := []Feature{
		NewFeature(1, "WRECKS", NewPointGeometry([]float64{0.005, 0.005}), nil),
	}
	idx := NewFeatureIndex(features, nil)

	hits := idx.Query(Bounds{MinLon: 0, MaxLon: 0.01, MinLat: 0, MaxLat: 0.01}, QueryOptions{})
	if len(hits) != 1 {
		t.Fatalf("Expected point feature found, got %d hits", len(hits))
	}
}

func TestFeatureIndexSkipsEmptyGeometry(t *testing.T) {
	features := []Feature{
		lineFeature(1, "COALNE", [][]float64{{0, 0}, {0.01, 0}}, nil),
		NewFeature(2, "COALNE", Geometry{Type: GeometryTypeLineString}, nil),
	}
	idx := NewFeatureIndex(features, nil)

	if idx.Count() != 1 {
		t.Errorf("Expected empty geometry skipped, count %d", idx.Count())
	}
}

func TestFeatureIndexBounds(t *testing.T) {
	idx := NewFeatureIndex(testIndexFeatures(), nil)

	b := idx.Bounds()
	if b.MinLon != 0 || b.MinLat != 0 {
		t.Errorf("Expected min corner (0, 0), got (%f, %f)", b.MinLon, b.MinLat)
	}
	if b.MaxLon != 5.01 || b.MaxLat != 5 {
		t.Errorf("Expected max corner (5.01, 5), got (%f, %f)", b.MaxLon, b.MaxLat)
	}

	if len(idx.All()) != idx.Count() {
		t.Error("All must return every indexed feature")
	}
}

func TestFeatureIndexEmpty(t *testing.T) {
	idx := NewFeatureIndex(nil, nil)
	if idx.Count() != 0 {
		t.Errorf("Expected empty index, count %d", idx.Count())
	}
	b := idx.Bounds()
	if b != (Bounds{}) {
		t.Errorf("Expected zero bounds, got %+v", b)
	}
}
