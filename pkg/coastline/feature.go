package coastline

// Feature represents a parsed chart feature handed to the engine.
//
// Features are immutable inputs owned by the caller: the engine never mutates
// a Feature and never retains a reference past the call that received it.
//
// Object classes follow the S-57 Object Catalogue acronyms ("COALNE", "DEPARE",
// "SLCONS", ...). Attributes carry the per-class domain fields as a key/value
// map ("DRVAL1", "VALDCO", "CATSLC", ...); attribute meanings vary by class,
// so typed accessors return ok=false rather than failing on absent keys.
type Feature struct {
	id          int64
	objectClass string
	geometry    Geometry
	attributes  map[string]interface{}
}

// NewFeature creates a feature from already-parsed geometry and attributes.
//
// Example:
//
//	f := coastline.NewFeature(42, "DEPCNT",
//	    coastline.NewLineGeometry([][]float64{{-71.0, 42.0}, {-71.1, 42.1}}),
//	    map[string]interface{}{"VALDCO": 0.0})
func NewFeature(id int64, objectClass string, geometry Geometry, attributes map[string]interface{}) Feature {
	return Feature{
		id:          id,
		objectClass: objectClass,
		geometry:    geometry,
		attributes:  attributes,
	}
}

// ID returns the unique feature identifier.
func (f *Feature) ID() int64 {
	return f.id
}

// ObjectClass returns the S-57 object class acronym.
func (f *Feature) ObjectClass() string {
	return f.objectClass
}

// Geometry returns the spatial representation of the feature.
func (f *Feature) Geometry() Geometry {
	return f.geometry
}

// Attributes returns all feature attributes as a map.
func (f *Feature) Attributes() map[string]interface{} {
	return f.attributes
}

// Attribute returns a specific attribute value by name.
//
// Returns the value and true if the attribute exists, or nil and false if not.
func (f *Feature) Attribute(name string) (interface{}, bool) {
	val, ok := f.attributes[name]
	return val, ok
}

// FloatAttribute returns a numeric attribute as float64.
//
// Chart sources encode numeric attributes inconsistently (float64, int,
// occasionally int32 from binary decoders), so all numeric kinds are accepted.
func (f *Feature) FloatAttribute(name string) (float64, bool) {
	val, ok := f.attributes[name]
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// IntAttribute returns a numeric attribute as int.
func (f *Feature) IntAttribute(name string) (int, bool) {
	v, ok := f.FloatAttribute(name)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// Geometry represents the spatial representation of a feature.
//
// Coordinates follow GeoJSON convention: [longitude, latitude] pairs in WGS-84
// decimal degrees.
type Geometry struct {
	// Type indicates the geometry kind.
	Type GeometryType

	// Coordinates holds the point (single entry) or line string vertices.
	// Unused for Polygon and MultiPolygon.
	Coordinates [][]float64

	// Rings holds polygon rings: index 0 is the exterior ring, the rest are
	// holes. Rings are closed (first coordinate == last). Unused for other
	// geometry kinds.
	Rings [][][]float64

	// Polygons holds one ring set per member polygon of a MultiPolygon,
	// each shaped like Rings.
	Polygons [][][][]float64
}

// GeometryType represents the kind of geometry.
type GeometryType int

const (
	// GeometryTypePoint represents a single point location.
	GeometryTypePoint GeometryType = iota

	// GeometryTypeLineString represents a line composed of connected points.
	GeometryTypeLineString

	// GeometryTypePolygon represents a closed polygon area, optionally with holes.
	GeometryTypePolygon

	// GeometryTypeMultiPolygon represents a collection of polygon areas.
	GeometryTypeMultiPolygon
)

// String returns the string representation of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// NewPointGeometry creates a point geometry from a [lon, lat] coordinate.
func NewPointGeometry(coord []float64) Geometry {
	return Geometry{
		Type:        GeometryTypePoint,
		Coordinates: [][]float64{coord},
	}
}

// NewLineGeometry creates a line string geometry.
func NewLineGeometry(coords [][]float64) Geometry {
	return Geometry{
		Type:        GeometryTypeLineString,
		Coordinates: coords,
	}
}

// NewPolygonGeometry creates a polygon geometry from rings.
//
// The first ring is the exterior; any further rings are holes.
func NewPolygonGeometry(rings [][][]float64) Geometry {
	return Geometry{
		Type:  GeometryTypePolygon,
		Rings: rings,
	}
}

// NewMultiPolygonGeometry creates a multi-polygon geometry.
func NewMultiPolygonGeometry(polygons [][][][]float64) Geometry {
	return Geometry{
		Type:     GeometryTypeMultiPolygon,
		Polygons: polygons,
	}
}

// ExteriorRings returns every exterior ring of the geometry.
//
// Polygons contribute one ring, MultiPolygons one per member. Point and
// LineString geometries contribute none.
func (g Geometry) ExteriorRings() [][][]float64 {
	switch g.Type {
	case GeometryTypePolygon:
		if len(g.Rings) > 0 {
			return [][][]float64{g.Rings[0]}
		}
	case GeometryTypeMultiPolygon:
		rings := make([][][]float64, 0, len(g.Polygons))
		for _, poly := range g.Polygons {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings
	}
	return nil
}

// AllRings returns every ring of the geometry, exterior rings first within
// each member polygon.
func (g Geometry) AllRings() [][][]float64 {
	switch g.Type {
	case GeometryTypePolygon:
		return g.Rings
	case GeometryTypeMultiPolygon:
		var rings [][][]float64
		for _, poly := range g.Polygons {
			rings = append(rings, poly...)
		}
		return rings
	}
	return nil
}

// allCoordinates returns a flat view of every coordinate in the geometry,
// used for bounding-box computation.
func (g Geometry) allCoordinates() [][]float64 {
	switch g.Type {
	case GeometryTypePoint, GeometryTypeLineString:
		return g.Coordinates
	case GeometryTypePolygon, GeometryTypeMultiPolygon:
		var coords [][]float64
		for _, ring := range g.AllRings() {
			coords = append(coords, ring...)
		}
		return coords
	}
	return nil
}

// IsEmpty reports whether the geometry carries no coordinates at all.
func (g Geometry) IsEmpty() bool {
	return len(g.allCoordinates()) == 0
}
