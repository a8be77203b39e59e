package coastline

import (
	"go.uber.org/zap"
)

// Object classes handled by each extraction category.
var (
	constructionClasses = map[string]bool{
		"SLCONS": true,
		"BERTHS": true,
		"DRYDOC": true,
		"FLODOC": true,
		"PONTON": true,
		"MORFAC": true,
	}

	harborClasses = map[string]bool{
		"HRBARE": true,
		"HRBFAC": true,
		"DOCARE": true,
	}

	structureClasses = map[string]bool{
		"BRIDGE": true,
		"PYLONS": true,
		"CRANES": true,
		"CONVYR": true,
		"CAUSWY": true,
		"FNCLNE": true,
		"RAILWY": true,
		"DMPGRD": true,
	}
)

// catslcSubtypes maps the CATSLC shoreline construction category code to a
// subtype name. S-57 Appendix A, attribute 122.
var catslcSubtypes = map[int]string{
	1:  "breakwater",
	2:  "groyne",
	3:  "mole",
	4:  "pier",
	5:  "promenade-pier",
	6:  "wharf",
	7:  "training-wall",
	8:  "rip-rap",
	9:  "revetment",
	10: "seawall",
	11: "landing-steps",
	12: "ramp",
	13: "slipway",
	14: "fender",
	15: "wharf",
	16: "wharf",
}

// shallowDepthLimitMeters bounds the shallow reference band: depth areas and
// contours deeper than this carry no coastline information.
const shallowDepthLimitMeters = 2.0

// ExtractAllCoastlines extracts boundary segments for every enabled category
// and collapses geometrically coincident duplicates to their highest-priority
// source.
//
// This is the standard entry for the extraction stage; use ExtractCoastlines
// to inspect raw per-category output before deduplication.
func (e *Engine) ExtractAllCoastlines(features []Feature, opts ExtractOptions) []Segment {
	return e.DedupeSegments(e.ExtractCoastlines(features, opts))
}

// ExtractCoastlines turns features into raw boundary segments, one rule per
// enabled category.
//
// A feature whose geometry cannot be converted (empty rings, unsupported kind
// for its class) is logged and skipped; extraction never fails on a single
// malformed feature.
func (e *Engine) ExtractCoastlines(features []Feature, opts ExtractOptions) []Segment {
	var segments []Segment

	for i := range features {
		f := &features[i]

		converted, err := e.convertFeature(f, opts)
		if err != nil {
			e.log.Warn("skipping feature: geometry conversion failed",
				zap.Int64("id", f.ID()),
				zap.String("objectClass", f.ObjectClass()),
				zap.Error(err))
			continue
		}
		segments = append(segments, converted...)
	}

	return segments
}

// convertFeature applies the extraction rule for the feature's category.
// Features outside every enabled category convert to nothing.
func (e *Engine) convertFeature(f *Feature, opts ExtractOptions) ([]Segment, error) {
	class := f.ObjectClass()

	switch {
	case opts.CoastlineLines && class == "COALNE":
		return e.explicitLine(f, ClassCoastline, "")

	case opts.ShorelineConstruction && constructionClasses[class]:
		return e.constructedBoundary(f)

	case opts.LandAreas && class == "LNDARE":
		return e.polygonBoundary(f, ClassCoastline, "")

	case opts.DepthAreas && (class == "DEPARE" || class == "DRGARE"):
		return e.depthAreaBoundary(f)

	case opts.DepthContours && class == "DEPCNT":
		return e.depthContour(f)

	case opts.HarborAreas && harborClasses[class]:
		return e.polygonBoundary(f, ClassConstructed, "")

	case opts.BuiltStructures && structureClasses[class]:
		if f.Geometry().Type == GeometryTypeLineString {
			return e.explicitLine(f, ClassConstructed, "")
		}
		return e.polygonBoundary(f, ClassConstructed, "")
	}

	return nil, nil
}

// explicitLine passes a boundary line feature through unchanged.
func (e *Engine) explicitLine(f *Feature, class BoundaryClass, subtype string) ([]Segment, error) {
	geom := f.Geometry()
	if geom.Type != GeometryTypeLineString {
		return nil, &ErrInvalidGeometry{
			FeatureID: f.ID(),
			Type:      geom.Type,
			Reason:    "expected LineString",
		}
	}
	if len(geom.Coordinates) < 2 {
		// Degenerate single-point line: drop, never store.
		return nil, nil
	}

	return []Segment{{
		Coordinates:   geom.Coordinates,
		PrimarySource: f.ObjectClass(),
		AllSources:    []string{f.ObjectClass()},
		Method:        MethodExplicit,
		Class:         class,
		Subtype:       subtype,
		Attributes:    f.Attributes(),
	}}, nil
}

// polygonBoundary converts an area feature to one derived segment per ring.
// MultiPolygon inputs are exploded per ring. Hole rings are boundaries too:
// a lake inside a land area is a land/water boundary.
func (e *Engine) polygonBoundary(f *Feature, class BoundaryClass, subtype string) ([]Segment, error) {
	return e.polygonBoundaryDepth(f, class, subtype, nil)
}

func (e *Engine) polygonBoundaryDepth(f *Feature, class BoundaryClass, subtype string, depth *float64) ([]Segment, error) {
	geom := f.Geometry()
	if geom.Type != GeometryTypePolygon && geom.Type != GeometryTypeMultiPolygon {
		return nil, &ErrInvalidGeometry{
			FeatureID: f.ID(),
			Type:      geom.Type,
			Reason:    "expected Polygon or MultiPolygon",
		}
	}

	rings := geom.AllRings()
	if len(rings) == 0 {
		return nil, &ErrInvalidGeometry{
			FeatureID: f.ID(),
			Type:      geom.Type,
			Reason:    "no rings",
		}
	}

	segments := make([]Segment, 0, len(rings))
	for _, ring := range rings {
		if len(ring) < 2 {
			// Degenerate ring: drop the ring, keep the feature's other rings.
			continue
		}
		segments = append(segments, Segment{
			Coordinates:   closeRing(ring),
			PrimarySource: f.ObjectClass(),
			AllSources:    []string{f.ObjectClass()},
			Method:        MethodDerived,
			Class:         class,
			Subtype:       subtype,
			DepthValue:    depth,
			Attributes:    f.Attributes(),
		})
	}

	if len(segments) == 0 {
		return nil, &ErrInvalidGeometry{
			FeatureID: f.ID(),
			Type:      geom.Type,
			Reason:    "all rings degenerate",
		}
	}
	return segments, nil
}

// constructedBoundary extracts shoreline construction features, carrying the
// CATSLC construction category through as the segment subtype.
func (e *Engine) constructedBoundary(f *Feature) ([]Segment, error) {
	subtype := ""
	if code, ok := f.IntAttribute("CATSLC"); ok {
		subtype = catslcSubtypes[code]
	}

	if f.Geometry().Type == GeometryTypeLineString {
		return e.explicitLine(f, ClassConstructed, subtype)
	}
	return e.polygonBoundary(f, ClassConstructed, subtype)
}

// depthAreaBoundary converts depth-area polygons whose minimum depth marks a
// drying or shallow boundary.
//
// DRVAL1 == 0 means the area is exposed at lowest tide: its edge is the most
// reliable bathymetry-derived shoreline. DRVAL1 in (0, 2] m is kept as a
// lower-priority shallow reference. Deeper areas convert to nothing.
func (e *Engine) depthAreaBoundary(f *Feature) ([]Segment, error) {
	minDepth, ok := f.FloatAttribute("DRVAL1")
	if !ok {
		return nil, nil
	}
	if minDepth < 0 || minDepth > shallowDepthLimitMeters {
		return nil, nil
	}

	depth := minDepth
	return e.polygonBoundaryDepth(f, ClassShoreline, "", &depth)
}

// depthContour extracts zero-depth and shallow depth-contour lines.
func (e *Engine) depthContour(f *Feature) ([]Segment, error) {
	value, ok := f.FloatAttribute("VALDCO")
	if !ok {
		return nil, nil
	}
	if value < 0 || value > shallowDepthLimitMeters {
		return nil, nil
	}

	segments, err := e.explicitLine(f, ClassShoreline, "")
	if err != nil || len(segments) == 0 {
		return segments, err
	}

	depth := value
	for i := range segments {
		segments[i].DepthValue = &depth
	}
	return segments, nil
}

// closeRing ensures a ring's first coordinate equals its last.
func closeRing(ring [][]float64) [][]float64 {
	if len(ring) < 2 || coordsEqual(ring[0], ring[len(ring)-1]) {
		return ring
	}

	closed := make([][]float64, len(ring)+1)
	copy(closed, ring)
	closed[len(ring)] = ring[0]
	return closed
}
