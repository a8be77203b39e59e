package geo

import (
	"github.com/golang/geo/s2"
)

// PolygonArea returns the area of a polygon ring in square meters using the
// spherical-excess area of the corresponding s2 loop.
//
// The ring may be open or closed (first == last); the closing coordinate and
// consecutive duplicates are dropped before building the loop. Winding order
// does not matter; the loop is normalized so the smaller of the two possible
// enclosed areas is returned. Adequate at chart scale, not geodesically exact.
//
// Returns 0 for degenerate rings with fewer than three distinct vertices.
func PolygonArea(ring [][]float64) float64 {
	pts := make([]s2.Point, 0, len(ring))
	for _, c := range ring {
		p := s2.PointFromLatLng(s2.LatLngFromDegrees(c[1], c[0]))
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}

	// Drop the explicit closing vertex; s2 loops are implicitly closed.
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	if len(pts) < 3 {
		return 0
	}

	loop := s2.LoopFromPoints(pts)
	loop.Normalize()

	return loop.Area() * EarthRadiusMeters * EarthRadiusMeters
}
