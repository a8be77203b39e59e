package coastline

import (
	"github.com/dhconnelly/rtreego"
	"go.uber.org/zap"

	"github.com/beetlebugorg/coastline/internal/geo"
)

// Classification partitions chart polygons by what they mean for navigation.
type Classification int

const (
	// ClassificationWater marks navigable or potentially navigable water areas.
	ClassificationWater Classification = iota

	// ClassificationLand marks dry land.
	ClassificationLand

	// ClassificationNavigation marks routing aids (fairways, anchorages, lanes).
	ClassificationNavigation

	// ClassificationDanger marks hazards (wrecks, rocks, obstructions).
	ClassificationDanger
)

// String returns the string representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassificationWater:
		return "water"
	case ClassificationLand:
		return "land"
	case ClassificationNavigation:
		return "navigation"
	case ClassificationDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Static object-class membership per classification.
var (
	waterSubtypes = map[string]string{
		"DEPARE": "depth-area",
		"DRGARE": "dredged-area",
		"RIVERS": "river",
		"LAKARE": "lake",
		"CANALS": "canal",
		"LOKBSN": "lock-basin",
		"DOCARE": "dock",
		"TIDEWY": "tideway",
	}

	landSubtypes = map[string]string{
		"LNDARE": "land-area",
		"BUAARE": "built-up-area",
	}

	navigationSubtypes = map[string]string{
		"FAIRWY": "fairway",
		"ACHARE": "anchorage",
		"ACHBRT": "anchor-berth",
		"DWRTPT": "deep-water-route",
		"RECTRC": "recommended-track",
		"TSSLPT": "traffic-lane",
		"PRCARE": "precautionary-area",
	}

	dangerSubtypes = map[string]string{
		"OBSTRN": "obstruction",
		"WRECKS": "wreck",
		"UWTROC": "underwater-rock",
		"MIPARE": "military-practice-area",
		"CTNARE": "caution-area",
	}
)

// waterTouchToleranceMeters is the contact distance for the water-merge
// connectivity predicate: polygons closer than this are treated as touching,
// standing in for a ~1 m buffer-and-intersect test.
const waterTouchToleranceMeters = 1.0

// DepthRange is the [min, max] depth in meters carried by bathymetry polygons.
type DepthRange struct {
	MinMeters float64
	MaxMeters float64
}

// ClassifiedPolygon is a chart polygon with its water/land classification and
// derived metadata.
type ClassifiedPolygon struct {
	// Geometry is the polygon or multi-polygon geometry. Navigation and
	// danger features may carry point or line geometry instead.
	Geometry Geometry

	// Classification is the water/land/navigation/danger partition.
	Classification Classification

	// Subtype names the feature kind within its classification
	// ("depth-area", "fairway", "wreck", ...).
	Subtype string

	// AreaKm2 is the polygon area in square kilometers (holes subtracted).
	// Zero for non-areal geometry.
	AreaKm2 float64

	// DepthRange carries DRVAL1/DRVAL2 when present, nil otherwise.
	DepthRange *DepthRange

	// Navigable is true for water with positive minimum depth and for all
	// navigation features.
	Navigable bool

	// Source is the object class of the originating feature, or "derived"
	// for complement-derived land.
	Source string

	// Attributes back-references the source feature's attribute map. Merged
	// polygons inherit the attributes of their largest-area constituent.
	Attributes map[string]interface{}

	// Merged is true if this polygon is the union of a connected group.
	Merged bool

	// OriginalCount is the size of the merged group, 0 if never merged.
	OriginalCount int
}

// WaterLandResult is the output of water/land classification.
type WaterLandResult struct {
	Water      []ClassifiedPolygon
	Land       []ClassifiedPolygon
	Navigation []ClassifiedPolygon
	Dangers    []ClassifiedPolygon
}

// ClassifyWaterLandFeatures partitions polygon features into water, land,
// navigation and danger categories by object-class membership.
//
// Non-polygon navigation and danger features (buoyed wrecks, route lines)
// pass through with classification metadata attached; non-polygon water and
// land features are skipped. With opts.MergeConnected, touching water
// polygons are merged; with opts.DeriveLand, land is derived as the
// complement of water within opts.Bounds and appended to any explicit land.
func (e *Engine) ClassifyWaterLandFeatures(features []Feature, opts WaterLandOptions) (*WaterLandResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &WaterLandResult{}

	for i := range features {
		f := &features[i]
		class := f.ObjectClass()
		areal := f.Geometry().Type == GeometryTypePolygon || f.Geometry().Type == GeometryTypeMultiPolygon

		switch {
		case waterSubtypes[class] != "":
			if !areal {
				continue
			}
			result.Water = append(result.Water, e.classifyPolygon(f, ClassificationWater, waterSubtypes[class]))

		case landSubtypes[class] != "":
			if !areal {
				continue
			}
			result.Land = append(result.Land, e.classifyPolygon(f, ClassificationLand, landSubtypes[class]))

		case opts.IncludeNavigation && navigationSubtypes[class] != "":
			result.Navigation = append(result.Navigation, e.classifyPolygon(f, ClassificationNavigation, navigationSubtypes[class]))

		case opts.IncludeDangers && dangerSubtypes[class] != "":
			result.Dangers = append(result.Dangers, e.classifyPolygon(f, ClassificationDanger, dangerSubtypes[class]))
		}
	}

	if opts.MergeConnected {
		result.Water = e.MergeWaterPolygons(result.Water)
	}

	if opts.DeriveLand {
		result.Land = append(result.Land, e.DeriveLandPolygons(opts.Bounds, result.Water)...)
	}

	return result, nil
}

// classifyPolygon builds the classification record for one feature.
func (e *Engine) classifyPolygon(f *Feature, class Classification, subtype string) ClassifiedPolygon {
	p := ClassifiedPolygon{
		Geometry:       f.Geometry(),
		Classification: class,
		Subtype:        subtype,
		Source:         f.ObjectClass(),
		Attributes:     f.Attributes(),
		AreaKm2:        arealKm2(f.Geometry()),
	}

	if min, ok := f.FloatAttribute("DRVAL1"); ok {
		r := &DepthRange{MinMeters: min, MaxMeters: min}
		if max, ok := f.FloatAttribute("DRVAL2"); ok {
			r.MaxMeters = max
		}
		p.DepthRange = r
	}

	switch class {
	case ClassificationNavigation:
		p.Navigable = true
	case ClassificationWater:
		p.Navigable = p.DepthRange == nil || p.DepthRange.MinMeters > 0
	}

	return p
}

// arealKm2 returns polygon area in km², holes subtracted.
func arealKm2(g Geometry) float64 {
	var m2 float64
	switch g.Type {
	case GeometryTypePolygon:
		m2 = ringSetArea(g.Rings)
	case GeometryTypeMultiPolygon:
		for _, rings := range g.Polygons {
			m2 += ringSetArea(rings)
		}
	}
	return m2 / 1e6
}

func ringSetArea(rings [][][]float64) float64 {
	if len(rings) == 0 {
		return 0
	}
	area := geo.PolygonArea(rings[0])
	for _, hole := range rings[1:] {
		area -= geo.PolygonArea(hole)
	}
	return area
}

// indexedPolygon wraps a polygon for R-tree storage during merge prefiltering.
type indexedPolygon struct {
	idx    int
	bounds Bounds
}

// Bounds implements rtreego.Spatial.
func (p *indexedPolygon) Bounds() rtreego.Rect {
	point := rtreego.Point{p.bounds.MinLon, p.bounds.MinLat}

	// R-tree requires non-zero dimensions; pad degenerate extents.
	const epsilon = 0.0001
	lonLength := p.bounds.MaxLon - p.bounds.MinLon
	latLength := p.bounds.MaxLat - p.bounds.MinLat
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{lonLength, latLength})
	return rect
}

// MergeWaterPolygons merges touching water polygons into connected groups.
//
// Connectivity is computed with union-find over polygon indices: two polygons
// are connected when their geometries intersect or come within ~1 m of each
// other, and groups grow transitively until no further polygon joins. An
// R-tree over slightly expanded bounding boxes prefilters candidate pairs, so
// the exact touch predicate only runs on nearby polygons.
//
// Each group larger than one is reduced by iterative pairwise union and
// inherits the attributes of its largest-area constituent, flagged Merged
// with OriginalCount set. A failed union falls back to that largest
// constituent unmodified; logged, never raised.
func (e *Engine) MergeWaterPolygons(polygons []ClassifiedPolygon) []ClassifiedPolygon {
	if len(polygons) <= 1 {
		return polygons
	}

	bounds := make([]Bounds, len(polygons))
	rtree := rtreego.NewTree(2, 25, 50)
	for i := range polygons {
		b := BoundingBox(polygons[i].Geometry.allCoordinates())
		if b == nil {
			continue
		}
		bounds[i] = *b
		rtree.Insert(&indexedPolygon{idx: i, bounds: *b})
	}

	// Margin in degrees generously covering the touch tolerance.
	const margin = 0.0001

	uf := newUnionFind(len(polygons))
	for i := range polygons {
		expanded := bounds[i].Expand(margin)
		point := rtreego.Point{expanded.MinLon, expanded.MinLat}
		lengths := []float64{expanded.MaxLon - expanded.MinLon, expanded.MaxLat - expanded.MinLat}
		rect, err := rtreego.NewRect(point, lengths)
		if err != nil {
			continue
		}

		for _, spatial := range rtree.SearchIntersect(rect) {
			j := spatial.(*indexedPolygon).idx
			if j <= i || uf.find(i) == uf.find(j) {
				continue
			}
			if e.polygonsTouch(&polygons[i].Geometry, &polygons[j].Geometry) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	order := make([]int, 0, len(polygons))
	for i := range polygons {
		root := uf.find(i)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], i)
	}

	out := make([]ClassifiedPolygon, 0, len(order))
	for _, root := range order {
		group := groups[root]
		if len(group) == 1 {
			out = append(out, polygons[group[0]])
			continue
		}
		out = append(out, e.unionGroup(polygons, group))
	}

	return out
}

// unionGroup reduces a connected group to one merged polygon.
func (e *Engine) unionGroup(polygons []ClassifiedPolygon, group []int) ClassifiedPolygon {
	largest := group[0]
	for _, idx := range group[1:] {
		if polygons[idx].AreaKm2 > polygons[largest].AreaKm2 {
			largest = idx
		}
	}

	merged, err := e.unionGeometries(polygons, group)
	if err != nil {
		e.log.Warn("water polygon union failed, keeping largest constituent",
			zap.Int("groupSize", len(group)),
			zap.String("source", polygons[largest].Source),
			zap.Error(err))
		merged = polygons[largest].Geometry
	}

	// Merged polygons inherit the largest constituent's attributes.
	result := polygons[largest]
	result.Geometry = merged
	result.AreaKm2 = arealKm2(merged)
	result.Merged = true
	result.OriginalCount = len(group)
	return result
}

// DeriveLandPolygons derives land as the complement of water within bounds:
// land = bounding rectangle − union(water).
//
// With no water input the whole rectangle is land. Together with the input
// water polygons the output tiles the rectangle exactly, modulo boolean-op
// floating point tolerance. On a failed union or difference the rectangle is
// returned whole (logged, never raised) so downstream consumers always get
// a land layer.
func (e *Engine) DeriveLandPolygons(bounds Bounds, water []ClassifiedPolygon) []ClassifiedPolygon {
	rectangle := NewPolygonGeometry([][][]float64{bounds.Ring()})

	wholeRectangle := func() []ClassifiedPolygon {
		return []ClassifiedPolygon{{
			Geometry:       rectangle,
			Classification: ClassificationLand,
			Subtype:        "derived",
			Source:         "derived",
			AreaKm2:        arealKm2(rectangle),
		}}
	}

	if len(water) == 0 {
		return wholeRectangle()
	}

	land, err := e.subtractWater(rectangle, water)
	if err != nil {
		e.log.Warn("land derivation failed, returning full bounds as land",
			zap.Error(err))
		return wholeRectangle()
	}

	if land.IsEmpty() {
		return nil
	}

	out := make([]ClassifiedPolygon, 0, 1)
	for _, rings := range splitPolygons(land) {
		g := NewPolygonGeometry(rings)
		out = append(out, ClassifiedPolygon{
			Geometry:       g,
			Classification: ClassificationLand,
			Subtype:        "derived",
			Source:         "derived",
			AreaKm2:        arealKm2(g),
		})
	}
	return out
}

// splitPolygons explodes a polygonal geometry into one ring set per member.
func splitPolygons(g Geometry) [][][][]float64 {
	switch g.Type {
	case GeometryTypePolygon:
		return [][][][]float64{g.Rings}
	case GeometryTypeMultiPolygon:
		return g.Polygons
	}
	return nil
}

// unionFind is a disjoint-set over polygon indices with path compression.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
