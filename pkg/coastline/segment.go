package coastline

import (
	"github.com/beetlebugorg/coastline/internal/geo"
)

// ExtractionMethod indicates how a segment was obtained from its source feature.
type ExtractionMethod int

const (
	// MethodExplicit marks segments taken verbatim from boundary line features.
	MethodExplicit ExtractionMethod = iota

	// MethodDerived marks segments converted from polygon boundary rings or
	// depth thresholds.
	MethodDerived
)

// String returns the string representation of the extraction method.
func (m ExtractionMethod) String() string {
	switch m {
	case MethodExplicit:
		return "explicit"
	case MethodDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// BoundaryClass categorizes what kind of land/water boundary a segment represents.
type BoundaryClass int

const (
	// ClassCoastline is the natural land/water boundary.
	ClassCoastline BoundaryClass = iota

	// ClassShoreline is a zero-depth or shallow reference boundary derived
	// from bathymetry.
	ClassShoreline

	// ClassConstructed is an engineered boundary (piers, wharves, seawalls).
	ClassConstructed
)

// String returns the string representation of the boundary class.
func (c BoundaryClass) String() string {
	switch c {
	case ClassCoastline:
		return "coastline"
	case ClassShoreline:
		return "shoreline"
	case ClassConstructed:
		return "constructed"
	default:
		return "unknown"
	}
}

// Segment is a canonical boundary segment extracted from one source feature.
//
// Segments always have at least two coordinates; degenerate single-point
// conversions are dropped during extraction and never stored. Segments are
// consumed (not shared) by deduplication and stitching.
type Segment struct {
	// Coordinates is the [lon, lat] vertex sequence, length >= 2.
	Coordinates [][]float64

	// PrimarySource is the object class of the feature this segment came from.
	// After deduplication it is the highest-priority source of the group.
	PrimarySource string

	// AllSources lists every object class that contributed this geometry,
	// primary first.
	AllSources []string

	// Method records whether the segment was explicit or derived.
	Method ExtractionMethod

	// Class is the boundary classification of the segment.
	Class BoundaryClass

	// Subtype is an optional construction subtype ("pier", "seawall", ...)
	// carried from source attributes.
	Subtype string

	// DepthValue is the depth in meters for bathymetry-derived segments,
	// nil otherwise.
	DepthValue *float64

	// Attributes back-references the source feature's attribute map.
	Attributes map[string]interface{}

	// Deduplicated is true if this segment survived collapsing a group of
	// geometrically coincident segments.
	Deduplicated bool

	// MergedSourceCount is the size of the collapsed group, 0 if never deduplicated.
	MergedSourceCount int
}

// Start returns the first coordinate of the segment.
func (s *Segment) Start() []float64 {
	return s.Coordinates[0]
}

// End returns the last coordinate of the segment.
func (s *Segment) End() []float64 {
	return s.Coordinates[len(s.Coordinates)-1]
}

// Length returns the great-circle length of the segment in meters.
func (s *Segment) Length() float64 {
	return geo.LineLength(s.Coordinates)
}

// Chain is a continuous line produced by stitching segments end-to-end.
type Chain struct {
	// Coordinates is the stitched [lon, lat] vertex sequence.
	Coordinates [][]float64

	// Sources is the set of object classes that contributed segments,
	// in first-contribution order.
	Sources []string

	// Closed is true if the chain's ends met within the stitch tolerance
	// and were joined into a ring.
	Closed bool

	// Subtype is the classified line subtype ("island", "mainland", "pier", ...).
	Subtype string

	// LengthMeters is the sum of great-circle distances between consecutive
	// coordinates.
	LengthMeters float64

	// GapCount is the number of bridged gaps absorbed into this chain.
	GapCount int

	// Deduplicated is true if any constituent segment survived deduplication.
	Deduplicated bool

	// MergedSourceCount is the total number of source segments collapsed into
	// this chain's constituents.
	MergedSourceCount int
}

// Start returns the first coordinate of the chain.
func (c *Chain) Start() []float64 {
	return c.Coordinates[0]
}

// End returns the last coordinate of the chain.
func (c *Chain) End() []float64 {
	return c.Coordinates[len(c.Coordinates)-1]
}

// hasSource reports whether the given object class contributed to the chain.
func (c *Chain) hasSource(class string) bool {
	for _, s := range c.Sources {
		if s == class {
			return true
		}
	}
	return false
}

// FillMethod selects how a detected gap is bridged.
type FillMethod int

const (
	// FillLinear bridges a gap with a two-point straight line.
	FillLinear FillMethod = iota

	// FillArc is accepted configuration; bridges are currently constructed
	// linearly until a curvature model is settled.
	FillArc

	// FillCoastlineFollowing is accepted configuration; bridges are currently
	// constructed linearly until water-boundary path tracing is settled.
	FillCoastlineFollowing
)

// String returns the string representation of the fill method.
func (m FillMethod) String() string {
	switch m {
	case FillLinear:
		return "linear"
	case FillArc:
		return "arc"
	case FillCoastlineFollowing:
		return "coastline-following"
	default:
		return "unknown"
	}
}

// Gap is a diagnostic record of an unstitched break between chain endpoints.
//
// Gaps are immutable once detected; filling materializes a separate bridging
// segment rather than modifying the record's endpoints.
type Gap struct {
	// EndpointA and EndpointB are the two free endpoints, [lon, lat].
	EndpointA []float64
	EndpointB []float64

	// DistanceMeters is the great-circle distance between the endpoints.
	DistanceMeters float64

	// Filled is true if a bridging segment was synthesized for this gap.
	Filled bool

	// Method records the requested fill construction.
	Method FillMethod

	// ValidatedAgainstWater is true if the bridge midpoint was confirmed to
	// lie inside a supplied water polygon.
	ValidatedAgainstWater bool
}

// reverseCoordinates returns a new slice with coordinates in opposite order.
func reverseCoordinates(coords [][]float64) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[len(coords)-1-i] = c
	}
	return out
}

// coordsEqual reports exact coordinate equality.
func coordsEqual(a, b []float64) bool {
	return a[0] == b[0] && a[1] == b[1]
}
