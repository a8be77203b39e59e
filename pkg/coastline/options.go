package coastline

import (
	"go.uber.org/zap"
)

// EngineOptions configures a new engine.
type EngineOptions struct {
	// Logger receives per-feature skip diagnostics and boolean-operation
	// fallback warnings. Nil disables logging.
	Logger *zap.Logger

	// Priorities overrides the source priority table.
	// Nil uses DefaultPriorities().
	Priorities PriorityTable

	// Classifier overrides the line subtype classifier.
	// Nil uses the built-in heuristic classifier.
	Classifier SubtypeClassifier
}

// ExtractOptions selects which feature categories contribute boundary segments.
//
// Each category has an independent, side-effect-free extraction rule; disabled
// categories are simply skipped.
type ExtractOptions struct {
	// CoastlineLines extracts explicit COALNE boundary lines.
	CoastlineLines bool

	// ShorelineConstruction extracts SLCONS, BERTHS, DRYDOC, FLODOC, PONTON
	// and MORFAC features (lines pass through, polygon boundaries are derived).
	ShorelineConstruction bool

	// LandAreas derives boundary rings from LNDARE polygons.
	LandAreas bool

	// DepthAreas derives boundaries from DEPARE polygons whose minimum depth
	// is zero (exposed at lowest tide) or in (0, 2] m (shallow reference).
	DepthAreas bool

	// DepthContours extracts DEPCNT lines whose value is zero or in (0, 2] m.
	DepthContours bool

	// HarborAreas derives boundary rings from HRBARE, HRBFAC and DOCARE
	// area features.
	HarborAreas bool

	// BuiltStructures extracts BRIDGE, PYLONS, CRANES, CONVYR, CAUSWY,
	// FNCLNE, RAILWY and DMPGRD boundaries.
	BuiltStructures bool
}

// DefaultExtractOptions enables every category.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		CoastlineLines:        true,
		ShorelineConstruction: true,
		LandAreas:             true,
		DepthAreas:            true,
		DepthContours:         true,
		HarborAreas:           true,
		BuiltStructures:       true,
	}
}

// StitchOptions configures segment stitching and gap handling.
type StitchOptions struct {
	// ToleranceMeters is the endpoint matching radius. Segments whose
	// endpoints lie within this distance are joined.
	ToleranceMeters float64

	// MaxGapDistanceMeters is the search radius for gap detection. Endpoint
	// pairs closer than this but farther than ToleranceMeters are reported
	// as gaps.
	MaxGapDistanceMeters float64

	// FillGaps synthesizes bridging segments for detected gaps and re-runs
	// stitching so bridges are absorbed.
	FillGaps bool

	// FillMethod selects the bridge construction.
	FillMethod FillMethod

	// ValidateWithWaterBodies discards a candidate bridge whose midpoint is
	// not inside any polygon in WaterBodies.
	ValidateWithWaterBodies bool

	// WaterBodies supplies water polygons for bridge validation. Typically
	// the water output of ClassifyWaterLandFeatures. Read-only.
	WaterBodies []ClassifiedPolygon
}

// DefaultStitchOptions returns the standard 50 m stitch tolerance and 100 m
// gap search radius with gap filling disabled.
func DefaultStitchOptions() StitchOptions {
	return StitchOptions{
		ToleranceMeters:      50,
		MaxGapDistanceMeters: 100,
		FillGaps:             false,
		FillMethod:           FillLinear,
	}
}

// Validate rejects invalid tolerances before the engine runs. A gap radius
// below the stitch tolerance is an error only when gap filling is requested;
// a stitch-only configuration may use any tolerance, and gap detection over
// an empty range simply reports nothing.
func (o StitchOptions) Validate() error {
	if o.ToleranceMeters < 0 {
		return &ErrInvalidOptions{Field: "ToleranceMeters", Reason: "must be >= 0"}
	}
	if o.MaxGapDistanceMeters <= 0 {
		return &ErrInvalidOptions{Field: "MaxGapDistanceMeters", Reason: "must be > 0"}
	}
	if o.FillGaps && o.MaxGapDistanceMeters < o.ToleranceMeters {
		return &ErrInvalidOptions{Field: "MaxGapDistanceMeters", Reason: "must be >= ToleranceMeters when FillGaps is set"}
	}
	return nil
}

// ProcessOptions configures coastline finalization.
type ProcessOptions struct {
	// Simplify enables Douglas-Peucker simplification.
	Simplify bool

	// SimplifyToleranceDegrees is the simplification tolerance in decimal
	// degrees (~1e-4 is 11 m at the equator).
	SimplifyToleranceDegrees float64

	// PreserveTopology pins chain endpoints during simplification so
	// junctions between adjacent chains stay coincident. Interior topology
	// across chains is not enforced.
	PreserveTopology bool

	// SmoothingIterations applies N rounds of endpoint-preserving corner
	// smoothing. 0 disables smoothing.
	SmoothingIterations int

	// PrecisionDigits is the coordinate rounding precision applied when the
	// estimated output size exceeds SizeWarningVertices. 0 uses the default
	// of 6 digits.
	PrecisionDigits int

	// SizeWarningVertices is the vertex count above which precision reduction
	// kicks in. 0 uses the default of 10000.
	SizeWarningVertices int

	// WaterBodies supplies water polygons for the proximity-to-water metric.
	// Empty skips the metric.
	WaterBodies []ClassifiedPolygon
}

// DefaultProcessOptions returns finalization defaults: no simplification,
// no smoothing, 6-digit precision reduction above 10000 vertices.
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		Simplify:                 false,
		SimplifyToleranceDegrees: 0.0001,
		PreserveTopology:         true,
		SmoothingIterations:      0,
		PrecisionDigits:          6,
		SizeWarningVertices:      10000,
	}
}

// Validate rejects invalid finalization parameters.
func (o ProcessOptions) Validate() error {
	if o.Simplify && o.SimplifyToleranceDegrees <= 0 {
		return &ErrInvalidOptions{Field: "SimplifyToleranceDegrees", Reason: "must be > 0 when Simplify is set"}
	}
	if o.SmoothingIterations < 0 {
		return &ErrInvalidOptions{Field: "SmoothingIterations", Reason: "must be >= 0"}
	}
	if o.PrecisionDigits < 0 {
		return &ErrInvalidOptions{Field: "PrecisionDigits", Reason: "must be >= 0"}
	}
	return nil
}

// WaterLandOptions configures water/land polygon classification.
type WaterLandOptions struct {
	// MergeConnected merges touching water polygons into connected groups.
	MergeConnected bool

	// DeriveLand computes land polygons as the complement of water within
	// Bounds. Requires Bounds to be set.
	DeriveLand bool

	// Bounds is the region tiled by DeriveLand.
	Bounds Bounds

	// IncludeNavigation passes navigation features through with
	// classification metadata attached.
	IncludeNavigation bool

	// IncludeDangers passes danger features through with classification
	// metadata attached.
	IncludeDangers bool
}

// DefaultWaterLandOptions merges connected water and includes navigation and
// danger features; land derivation stays off until bounds are supplied.
func DefaultWaterLandOptions() WaterLandOptions {
	return WaterLandOptions{
		MergeConnected:    true,
		DeriveLand:        false,
		IncludeNavigation: true,
		IncludeDangers:    true,
	}
}

// Validate rejects land derivation over an empty region.
func (o WaterLandOptions) Validate() error {
	if o.DeriveLand {
		if o.Bounds.MaxLon <= o.Bounds.MinLon || o.Bounds.MaxLat <= o.Bounds.MinLat {
			return &ErrInvalidOptions{Field: "Bounds", Reason: "must be a non-empty region when DeriveLand is set"}
		}
	}
	return nil
}

// BuildOptions bundles the per-stage options for the full pipeline.
type BuildOptions struct {
	Extract ExtractOptions
	Stitch  StitchOptions
	Process ProcessOptions
}

// DefaultBuildOptions returns defaults for every stage.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Extract: DefaultExtractOptions(),
		Stitch:  DefaultStitchOptions(),
		Process: DefaultProcessOptions(),
	}
}
