package coastline

import (
	"go.uber.org/zap"

	"github.com/beetlebugorg/coastline/internal/geo"
)

// DetectGaps finds unstitched breaks between chain endpoints.
//
// Every pair of free endpoints is examined, including the two ends of a
// single open chain (a near-closure). A gap is recorded when the distance is
// above the stitch tolerance (anything closer would already have been
// joined) and within twice opts.MaxGapDistanceMeters; the extra reporting
// margin surfaces near-miss breaks that filling will decline. The reported
// distance is symmetric in endpoint order.
//
// Gaps are diagnostics: detection never modifies the chains. Use FillGaps to
// materialize bridges; only gaps within opts.MaxGapDistanceMeters are
// eligible.
func (e *Engine) DetectGaps(chains []Chain, opts StitchOptions) []Gap {
	var endpoints [][]float64
	for i := range chains {
		if chains[i].Closed || len(chains[i].Coordinates) < 2 {
			continue
		}
		endpoints = append(endpoints, chains[i].Start(), chains[i].End())
	}

	var gaps []Gap
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			a, b := endpoints[i], endpoints[j]

			d := geo.Distance(a, b)
			if d <= opts.ToleranceMeters || d > 2*opts.MaxGapDistanceMeters {
				continue
			}

			gaps = append(gaps, Gap{
				EndpointA:      a,
				EndpointB:      b,
				DistanceMeters: d,
				Method:         opts.FillMethod,
			})
		}
	}

	return gaps
}

// FillGaps synthesizes bridging segments for detected gaps and re-runs
// stitching so the bridges are absorbed into chains.
//
// The linear method bridges with a two-point straight line. The arc and
// coastline-following methods are accepted configuration but currently
// construct the same linear baseline; the Gap record keeps the requested
// method so bridges can be re-materialized once those constructions are
// settled.
//
// When opts.ValidateWithWaterBodies is set, a candidate bridge whose midpoint
// is not inside any supplied water polygon is discarded: a coastline bridge
// over land would cut a corner off the shore.
//
// Returns the restitched chains and a copy of the gaps annotated with fill
// results.
func (e *Engine) FillGaps(chains []Chain, gaps []Gap, opts StitchOptions) ([]Chain, []Gap) {
	if len(gaps) == 0 {
		return chains, gaps
	}

	annotated := make([]Gap, len(gaps))
	copy(annotated, gaps)

	var bridges []stitchItem
	for i := range annotated {
		gap := &annotated[i]

		if gap.DistanceMeters > opts.MaxGapDistanceMeters {
			// Reported for diagnostics only; too wide to bridge.
			continue
		}

		if opts.ValidateWithWaterBodies {
			mid := geo.Midpoint(gap.EndpointA, gap.EndpointB)
			if !pointInWater(mid, opts.WaterBodies) {
				e.log.Debug("discarding gap bridge: midpoint not in water",
					zap.Float64("distanceMeters", gap.DistanceMeters))
				continue
			}
			gap.ValidatedAgainstWater = true
		}

		gap.Filled = true
		bridges = append(bridges, stitchItem{
			coords:   [][]float64{gap.EndpointA, gap.EndpointB},
			rank:     unrankedPriority,
			gapCount: 1,
		})
	}

	if len(bridges) == 0 {
		return chains, annotated
	}

	// Re-stitch open chains together with the bridges. Bridge endpoints
	// coincide exactly with chain endpoints, so they absorb under any
	// tolerance >= 0.
	var out []Chain
	items := bridges
	for i := range chains {
		if chains[i].Closed {
			out = append(out, chains[i])
			continue
		}
		items = append(items, e.chainToItem(&chains[i]))
	}

	out = append(out, e.greedyStitch(items, opts.ToleranceMeters)...)
	return out, annotated
}

// pointInWater reports whether a point lies inside any water polygon's
// exterior ring. This is the read-only "is this point wet" oracle consulted
// by gap validation.
func pointInWater(p []float64, water []ClassifiedPolygon) bool {
	for i := range water {
		for _, ring := range water[i].Geometry.ExteriorRings() {
			if geo.PointInPolygon(p, ring) {
				return true
			}
		}
	}
	return false
}
