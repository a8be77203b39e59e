package coastline

import (
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/beetlebugorg/coastline/internal/geo"
)

// This file bridges the engine's coordinate-slice geometry to the
// simplefeatures geometry model used for polygon boolean operations.
// Boolean ops here are planar in degree space, adequate at chart scale but
// not geodesically exact.

// toSFGeometry converts an areal Geometry to a simplefeatures geometry.
func toSFGeometry(g *Geometry) (geom.Geometry, error) {
	switch g.Type {
	case GeometryTypePolygon:
		p, err := toSFPolygon(g.Rings)
		if err != nil {
			return geom.Geometry{}, err
		}
		return p.AsGeometry(), nil

	case GeometryTypeMultiPolygon:
		polys := make([]geom.Polygon, 0, len(g.Polygons))
		for _, rings := range g.Polygons {
			p, err := toSFPolygon(rings)
			if err != nil {
				return geom.Geometry{}, err
			}
			polys = append(polys, p)
		}
		return geom.NewMultiPolygon(polys).AsGeometry(), nil
	}

	return geom.Geometry{}, &ErrGeometryOperation{
		Operation: "convert",
		Reason:    fmt.Sprintf("non-areal geometry %v", g.Type),
	}
}

func toSFPolygon(rings [][][]float64) (geom.Polygon, error) {
	if len(rings) == 0 {
		return geom.Polygon{}, &ErrGeometryOperation{Operation: "convert", Reason: "no rings"}
	}

	lss := make([]geom.LineString, 0, len(rings))
	for _, ring := range rings {
		ring = closeRing(ring)
		flat := make([]float64, 0, len(ring)*2)
		for _, c := range ring {
			flat = append(flat, c[0], c[1])
		}
		lss = append(lss, geom.NewLineString(geom.NewSequence(flat, geom.DimXY)))
	}

	p := geom.NewPolygon(lss)
	if err := p.Validate(); err != nil {
		return geom.Polygon{}, &ErrGeometryOperation{Operation: "convert", Reason: err.Error()}
	}
	return p, nil
}

// fromSFGeometry converts a simplefeatures result back to engine geometry.
// Non-areal members of mixed results are dropped; boolean operations over
// polygons only produce lower-dimension artifacts at shared boundaries.
func fromSFGeometry(g geom.Geometry) Geometry {
	polygons := collectSFPolygons(g)

	switch len(polygons) {
	case 0:
		return Geometry{Type: GeometryTypePolygon}
	case 1:
		return NewPolygonGeometry(polygons[0])
	default:
		return NewMultiPolygonGeometry(polygons)
	}
}

func collectSFPolygons(g geom.Geometry) [][][][]float64 {
	switch g.Type() {
	case geom.TypePolygon:
		return [][][][]float64{sfPolygonRings(g.MustAsPolygon())}

	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		out := make([][][][]float64, 0, mp.NumPolygons())
		for i := 0; i < mp.NumPolygons(); i++ {
			out = append(out, sfPolygonRings(mp.PolygonN(i)))
		}
		return out

	case geom.TypeGeometryCollection:
		gc := g.MustAsGeometryCollection()
		var out [][][][]float64
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, collectSFPolygons(gc.GeometryN(i))...)
		}
		return out
	}

	return nil
}

func sfPolygonRings(p geom.Polygon) [][][]float64 {
	rings := make([][][]float64, 0, p.NumInteriorRings()+1)
	rings = append(rings, sfRingCoords(p.ExteriorRing()))
	for i := 0; i < p.NumInteriorRings(); i++ {
		rings = append(rings, sfRingCoords(p.InteriorRingN(i)))
	}
	return rings
}

func sfRingCoords(ls geom.LineString) [][]float64 {
	seq := ls.Coordinates()
	out := make([][]float64, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		out[i] = []float64{xy.X, xy.Y}
	}
	return out
}

// polygonsTouch is the connectivity predicate for water merging: geometries
// intersect, or their exterior rings come within the touch tolerance.
func (e *Engine) polygonsTouch(a, b *Geometry) bool {
	ga, errA := toSFGeometry(a)
	gb, errB := toSFGeometry(b)
	if errA == nil && errB == nil && geom.Intersects(ga, gb) {
		return true
	}

	return ringsWithinDistance(a.ExteriorRings(), b.ExteriorRings(), waterTouchToleranceMeters)
}

// ringsWithinDistance reports whether any vertex of one ring set lies within
// tolerance of any edge of the other, checked both ways.
func ringsWithinDistance(a, b [][][]float64, toleranceMeters float64) bool {
	return minVertexToRings(a, b) <= toleranceMeters ||
		minVertexToRings(b, a) <= toleranceMeters
}

func minVertexToRings(vertices, edges [][][]float64) float64 {
	min := math.Inf(1)
	for _, ring := range vertices {
		for _, v := range ring {
			for _, other := range edges {
				for i := 0; i < len(other)-1; i++ {
					if d := geo.DistanceToSegment(v, other[i], other[i+1]); d < min {
						min = d
					}
				}
			}
		}
	}
	return min
}

// unionGeometries unions a group of classified polygons into one geometry.
func (e *Engine) unionGeometries(polygons []ClassifiedPolygon, group []int) (Geometry, error) {
	acc, err := toSFGeometry(&polygons[group[0]].Geometry)
	if err != nil {
		return Geometry{}, err
	}

	for _, idx := range group[1:] {
		next, err := toSFGeometry(&polygons[idx].Geometry)
		if err != nil {
			return Geometry{}, err
		}
		acc, err = geom.Union(acc, next)
		if err != nil {
			return Geometry{}, &ErrGeometryOperation{Operation: "union", Reason: err.Error()}
		}
	}

	return fromSFGeometry(acc), nil
}

// subtractWater computes rectangle − union(water).
func (e *Engine) subtractWater(rectangle Geometry, water []ClassifiedPolygon) (Geometry, error) {
	rect, err := toSFGeometry(&rectangle)
	if err != nil {
		return Geometry{}, err
	}

	var union geom.Geometry
	haveUnion := false
	for i := range water {
		w, err := toSFGeometry(&water[i].Geometry)
		if err != nil {
			return Geometry{}, err
		}
		if !haveUnion {
			union, haveUnion = w, true
			continue
		}
		union, err = geom.Union(union, w)
		if err != nil {
			return Geometry{}, &ErrGeometryOperation{Operation: "union", Reason: err.Error()}
		}
	}

	if !haveUnion {
		return rectangle, nil
	}

	land, err := geom.Difference(rect, union)
	if err != nil {
		return Geometry{}, &ErrGeometryOperation{Operation: "difference", Reason: err.Error()}
	}

	return fromSFGeometry(land), nil
}
