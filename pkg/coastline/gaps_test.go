package coastline

import (
	"math"
	"testing"

	"github.com/beetlebugorg/coastline/internal/geo"
)

func openChain(coords [][]float64) Chain {
	return Chain{
		Coordinates:  coords,
		Sources:      []string{"COALNE"},
		LengthMeters: geo.LineLength(coords),
	}
}

func TestDetectGapWithinRange(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Nearest endpoints ~78 m apart; everything else is kilometers away.
	chains := []Chain{
		openChain([][]float64{{0, -0.01}, {0, 0}}),
		openChain([][]float64{{0, 0.0007}, {0, 0.0107}}),
	}

	gaps := engine.DetectGaps(chains, DefaultStitchOptions())
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %d", len(gaps))
	}

	g := gaps[0]
	if g.DistanceMeters < 70 || g.DistanceMeters > 90 {
		t.Errorf("Expected ~78 m gap, got %.1f m", g.DistanceMeters)
	}
	if g.Filled {
		t.Error("Detection must not fill gaps")
	}
}

func TestDetectGapIgnoresStitchedDistances(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Endpoints 30 m apart are below the 50 m stitch tolerance: not a gap,
	// stitching would have joined them.
	chains := []Chain{
		openChain([][]float64{{0, -0.01}, {0, 0}}),
		openChain([][]float64{{0, 0.00027}, {0, 0.0107}}),
	}

	gaps := engine.DetectGaps(chains, DefaultStitchOptions())
	if len(gaps) != 0 {
		t.Fatalf("Expected no gaps below stitch tolerance, got %d", len(gaps))
	}
}

func TestDetectGapSymmetry(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	a := openChain([][]float64{{0, -0.01}, {0, 0}})
	b := openChain([][]float64{{0, 0.0007}, {0, 0.0107}})

	forward := engine.DetectGaps([]Chain{a, b}, DefaultStitchOptions())
	backward := engine.DetectGaps([]Chain{b, a}, DefaultStitchOptions())

	if len(forward) != 1 || len(backward) != 1 {
		t.Fatalf("Expected 1 gap in both orders, got %d and %d", len(forward), len(backward))
	}
	if math.Abs(forward[0].DistanceMeters-backward[0].DistanceMeters) > 1e-9 {
		t.Errorf("Gap distance not symmetric: %.12f vs %.12f",
			forward[0].DistanceMeters, backward[0].DistanceMeters)
	}
}

func TestGapReportedButNotFilled(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	// Endpoints ~120 m apart with a 100 m fill radius: the break is reported
	// as a diagnostic but too wide to bridge.
	chains := []Chain{
		openChain([][]float64{{0, -0.01}, {0, 0}}),
		openChain([][]float64{{0, 0.00108}, {0, 0.0111}}),
	}

	opts := DefaultStitchOptions()
	opts.FillGaps = true

	gaps := engine.DetectGaps(chains, opts)
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 reported gap, got %d", len(gaps))
	}
	if gaps[0].DistanceMeters < 110 || gaps[0].DistanceMeters > 130 {
		t.Errorf("Expected ~120 m gap, got %.1f m", gaps[0].DistanceMeters)
	}

	filled, annotated := engine.FillGaps(chains, gaps, opts)
	if len(filled) != 2 {
		t.Errorf("Expected chains untouched, got %d chains", len(filled))
	}
	if annotated[0].Filled {
		t.Error("Gap beyond the fill radius must not be filled")
	}
}

func TestFillGapsBridges(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	chains := []Chain{
		openChain([][]float64{{0, -0.01}, {0, 0}}),
		openChain([][]float64{{0, 0.0007}, {0, 0.0107}}),
	}

	opts := DefaultStitchOptions()
	opts.FillGaps = true

	gaps := engine.DetectGaps(chains, opts)
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %d", len(gaps))
	}

	filled, annotated := engine.FillGaps(chains, gaps, opts)
	if !annotated[0].Filled {
		t.Fatal("Expected gap to be filled")
	}
	if len(filled) != 1 {
		t.Fatalf("Expected bridge to join chains into 1, got %d", len(filled))
	}
	if filled[0].GapCount != 1 {
		t.Errorf("Expected GapCount 1, got %d", filled[0].GapCount)
	}

	// The bridged chain spans both originals plus the gap.
	want := geo.LineLength(chains[0].Coordinates) +
		geo.LineLength(chains[1].Coordinates) +
		annotated[0].DistanceMeters
	if math.Abs(filled[0].LengthMeters-want) > 1 {
		t.Errorf("Expected bridged length ~%.1f m, got %.1f m", want, filled[0].LengthMeters)
	}
}

func TestFillGapsWaterValidation(t *testing.T) {
	engine := NewEngine(EngineOptions{})

	chains := []Chain{
		openChain([][]float64{{0, -0.01}, {0, 0}}),
		openChain([][]float64{{0, 0.0007}, {0, 0.0107}}),
	}

	opts := DefaultStitchOptions()
	opts.FillGaps = true
	opts.ValidateWithWaterBodies = true

	gaps := engine.DetectGaps(chains, opts)

	t.Run("midpoint in water", func(t *testing.T) {
		opts.WaterBodies = []ClassifiedPolygon{{
			Geometry: NewPolygonGeometry([][][]float64{closeRing([][]float64{
				{-0.001, -0.001}, {0.001, -0.001}, {0.001, 0.001}, {-0.001, 0.001},
			})}),
			Classification: ClassificationWater,
		}}

		filled, annotated := engine.FillGaps(chains, gaps, opts)
		if !annotated[0].Filled || !annotated[0].ValidatedAgainstWater {
			t.Error("Expected bridge validated against water and filled")
		}
		if len(filled) != 1 {
			t.Errorf("Expected 1 bridged chain, got %d", len(filled))
		}
	})

	t.Run("midpoint on land", func(t *testing.T) {
		opts.WaterBodies = []ClassifiedPolygon{{
			Geometry: NewPolygonGeometry([][][]float64{closeRing([][]float64{
				{1, 1}, {1.001, 1}, {1.001, 1.001}, {1, 1.001},
			})}),
			Classification: ClassificationWater,
		}}

		filled, annotated := engine.FillGaps(chains, gaps, opts)
		if annotated[0].Filled {
			t.Error("Bridge over land must be discarded")
		}
		if len(filled) != 2 {
			t.Errorf("Expected chains untouched, got %d", len(filled))
		}
	})
}
