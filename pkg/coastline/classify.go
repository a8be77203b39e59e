package coastline

import (
	"github.com/beetlebugorg/coastline/internal/geo"
)

// Well-known line subtypes. Construction subtypes carried from source
// attributes ("seawall", "wharf", "breakwater", ...) extend this set.
const (
	SubtypeIsland   = "island"
	SubtypeMainland = "mainland"
	SubtypePier     = "pier"
)

// SubtypeClassifier assigns a subtype to a finished chain.
//
// The built-in HeuristicClassifier is best-effort; chart-specific rules can
// replace it via EngineOptions.Classifier without touching stitching or
// deduplication.
type SubtypeClassifier interface {
	// Classify returns the subtype for a chain. The chain is read-only.
	Classify(chain *Chain) string
}

// Pier heuristic thresholds: short, straight constructed lines are most
// likely piers. Misclassification is possible by design of the heuristic.
const (
	pierMaxBearingVariance = 10.0   // degrees
	pierMaxLengthMeters    = 1000.0 // meters
)

// HeuristicClassifier is the default subtype classifier.
//
// Rules, in order:
//  1. Closed loop: island.
//  2. Source carried an explicit construction-category subtype: keep it.
//  3. Low bearing variance and short length: pier.
//  4. Default: mainland.
type HeuristicClassifier struct{}

// Classify implements SubtypeClassifier.
func (h *HeuristicClassifier) Classify(chain *Chain) string {
	if chain.Closed || isRing(chain.Coordinates) {
		return SubtypeIsland
	}

	if chain.Subtype != "" && chain.Subtype != SubtypeMainland {
		return chain.Subtype
	}

	if geo.BearingVariance(chain.Coordinates) < pierMaxBearingVariance &&
		chain.LengthMeters < pierMaxLengthMeters &&
		chain.LengthMeters > 0 {
		return SubtypePier
	}

	return SubtypeMainland
}

// isRing reports whether a coordinate sequence forms a closed loop
// (first and last coordinates coincide).
func isRing(coords [][]float64) bool {
	if len(coords) < 4 {
		return false
	}
	return coordsEqual(coords[0], coords[len(coords)-1])
}
