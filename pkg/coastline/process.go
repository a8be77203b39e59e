package coastline

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"go.uber.org/zap"

	"github.com/beetlebugorg/coastline/internal/geo"
)

// ProcessedLine is a finalized coastline: geometry after optional
// simplification, smoothing and precision reduction, plus recomputed metrics.
type ProcessedLine struct {
	// Coordinates is the finalized [lon, lat] vertex sequence.
	Coordinates [][]float64

	// Subtype, Sources, Closed and GapCount carry over from the chain.
	Subtype  string
	Sources  []string
	Closed   bool
	GapCount int

	// LengthMeters is recomputed from the finalized geometry as the sum of
	// great-circle distances between consecutive coordinates.
	LengthMeters float64

	// ProximityToWaterMeters is the minimum vertex-to-water-boundary
	// distance, or -1 when no water polygons were supplied.
	ProximityToWaterMeters float64

	// Simplified, Smoothed and PrecisionReduced record which optional
	// finalization steps ran.
	Simplified       bool
	Smoothed         bool
	PrecisionReduced bool
}

// ProcessCoastline finalizes a stitched chain.
//
// Steps, each optional: Douglas-Peucker simplification (endpoints are always
// retained, so junctions between adjacent chains stay coincident when
// PreserveTopology is set; interior topology across chains is not enforced),
// N iterations of endpoint-preserving smoothing, and coordinate precision
// reduction once the vertex count exceeds the size warning threshold.
// Length is always recomputed from the finalized geometry.
func (e *Engine) ProcessCoastline(chain Chain, opts ProcessOptions) (ProcessedLine, error) {
	if err := opts.Validate(); err != nil {
		return ProcessedLine{}, err
	}

	line := ProcessedLine{
		Coordinates:            chain.Coordinates,
		Subtype:                chain.Subtype,
		Sources:                chain.Sources,
		Closed:                 chain.Closed,
		GapCount:               chain.GapCount,
		ProximityToWaterMeters: -1,
	}

	if opts.Simplify && len(line.Coordinates) > 2 {
		line.Coordinates = simplifyLine(line.Coordinates, opts.SimplifyToleranceDegrees)
		if chain.Closed && opts.PreserveTopology {
			line.Coordinates = closeRing(line.Coordinates)
		}
		line.Simplified = true
	}

	if opts.SmoothingIterations > 0 && len(line.Coordinates) > 2 {
		for i := 0; i < opts.SmoothingIterations; i++ {
			line.Coordinates = smoothOnce(line.Coordinates)
		}
		line.Smoothed = true
	}

	threshold := opts.SizeWarningVertices
	if threshold == 0 {
		threshold = 10000
	}
	if len(line.Coordinates) > threshold {
		precision := opts.PrecisionDigits
		if precision == 0 {
			precision = geo.DefaultPrecision
		}
		e.log.Warn("output size over threshold, reducing coordinate precision",
			zap.Int("vertices", len(line.Coordinates)),
			zap.Int("digits", precision))
		line.Coordinates = geo.RoundCoordinates(line.Coordinates, precision)
		line.PrecisionReduced = true
	}

	line.LengthMeters = geo.LineLength(line.Coordinates)

	if len(opts.WaterBodies) > 0 {
		line.ProximityToWaterMeters = proximityToWater(line.Coordinates, opts.WaterBodies)
	}

	return line, nil
}

// simplifyLine applies Douglas-Peucker simplification. The tolerance is in
// decimal degrees. Endpoints always survive.
func simplifyLine(coords [][]float64, toleranceDegrees float64) [][]float64 {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c[0], c[1]}
	}

	ls = simplify.DouglasPeucker(toleranceDegrees).LineString(ls)

	out := make([][]float64, len(ls))
	for i, p := range ls {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

// smoothOnce applies one round of three-point moving-average smoothing to the
// interior vertices. The first and last coordinates never move.
func smoothOnce(coords [][]float64) [][]float64 {
	out := make([][]float64, len(coords))
	out[0] = coords[0]
	out[len(coords)-1] = coords[len(coords)-1]

	for i := 1; i < len(coords)-1; i++ {
		out[i] = []float64{
			(coords[i-1][0] + coords[i][0] + coords[i+1][0]) / 3,
			(coords[i-1][1] + coords[i][1] + coords[i+1][1]) / 3,
		}
	}
	return out
}

// proximityToWater returns the minimum distance from any line vertex to any
// water polygon boundary, measured against boundary edges so sparse rings
// with long edges report the true closest approach.
func proximityToWater(coords [][]float64, water []ClassifiedPolygon) float64 {
	min := math.Inf(1)
	for _, c := range coords {
		for i := range water {
			for _, ring := range water[i].Geometry.AllRings() {
				for j := 0; j < len(ring)-1; j++ {
					if d := geo.DistanceToSegment(c, ring[j], ring[j+1]); d < min {
						min = d
					}
				}
			}
		}
	}

	if math.IsInf(min, 1) {
		return -1
	}
	return min
}
