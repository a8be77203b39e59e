// Package geo provides spherical geometry primitives for coastline processing.
//
// All functions operate on GeoJSON-order coordinates: []float64{longitude, latitude}
// in WGS-84 decimal degrees. Distances are great-circle distances in meters.
package geo

import (
	"math"
)

// EarthRadiusMeters is the mean Earth radius used for all spherical calculations.
const EarthRadiusMeters = 6371000.0

// DefaultPrecision is the coordinate rounding precision in decimal digits.
//
// Six digits is roughly 0.11 m at the equator, well below chart survey accuracy.
// The same quantization feeds deduplication keys, so two segments digitized from
// the same source geometry collapse to identical keys.
const DefaultPrecision = 6

// Distance returns the haversine great-circle distance between two points in meters.
//
// Points are []float64{lon, lat} in decimal degrees.
func Distance(a, b []float64) float64 {
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	dLat := (b[1] - a[1]) * math.Pi / 180
	dLon := (b[0] - a[0]) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bearing returns the initial bearing from a to b in degrees, normalized to [0, 360).
func Bearing(a, b []float64) float64 {
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	dLon := (b[0] - a[0]) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// AverageBearing returns the circular mean bearing along a line in degrees [0, 360).
//
// Uses unit-vector summation rather than an arithmetic mean, so a line that
// oscillates around north (359°, 1°, 358°, 2°) averages to ~0° instead of ~180°.
// Returns 0 for lines with fewer than two points.
func AverageBearing(line [][]float64) float64 {
	if len(line) < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < len(line)-1; i++ {
		rad := Bearing(line[i], line[i+1]) * math.Pi / 180
		sumX += math.Cos(rad)
		sumY += math.Sin(rad)
	}

	if sumX == 0 && sumY == 0 {
		return 0
	}

	deg := math.Atan2(sumY, sumX) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// BearingVariance returns the standard deviation of segment bearings along a line,
// in degrees.
//
// Differences from the circular mean are taken as minimal angular differences
// (≤180°) so that bearings straddling the 0°/360° wraparound do not inflate the
// result. Returns 0 for lines with fewer than three points.
func BearingVariance(line [][]float64) float64 {
	if len(line) < 3 {
		return 0
	}

	mean := AverageBearing(line)

	var sumSq float64
	n := 0
	for i := 0; i < len(line)-1; i++ {
		b := Bearing(line[i], line[i+1])
		diff := AngularDifference(b, mean)
		sumSq += diff * diff
		n++
	}

	return math.Sqrt(sumSq / float64(n))
}

// AngularDifference returns the minimal absolute difference between two bearings
// in degrees, always in [0, 180].
func AngularDifference(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// LineLength returns the sum of great-circle distances between consecutive
// coordinates in meters.
func LineLength(line [][]float64) float64 {
	var total float64
	for i := 0; i < len(line)-1; i++ {
		total += Distance(line[i], line[i+1])
	}
	return total
}

// PointInPolygon reports whether point p lies inside the polygon ring using
// even-odd ray casting.
//
// Only the outer ring is considered; holes are not honored. The ring may be
// open or closed (first == last); the algorithm wraps around either way.
func PointInPolygon(p []float64, ring [][]float64) bool {
	if len(ring) < 3 {
		return false
	}

	x, y := p[0], p[1]
	inside := false

	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if (yi > y) != (yj > y) &&
			x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}

// RoundCoordinate rounds a single coordinate pair to the given number of
// decimal digits.
func RoundCoordinate(coord []float64, precision int) []float64 {
	scale := math.Pow(10, float64(precision))
	out := make([]float64, len(coord))
	for i, v := range coord {
		out[i] = math.Round(v*scale) / scale
	}
	return out
}

// RoundCoordinates rounds every coordinate in a line to the given number of
// decimal digits, returning a new slice.
//
// Used both for output compaction and as the quantization step feeding
// deduplication keys.
func RoundCoordinates(coords [][]float64, precision int) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = RoundCoordinate(c, precision)
	}
	return out
}

// DistanceToSegment returns the distance in meters from point p to the
// segment a-b.
//
// Uses an equirectangular projection centered on p, which is accurate for the
// meter-scale tolerances this engine works at; not suitable for segments
// spanning many degrees.
func DistanceToSegment(p, a, b []float64) float64 {
	cosLat := math.Cos(p[1] * math.Pi / 180)
	scale := EarthRadiusMeters * math.Pi / 180

	ax := (a[0] - p[0]) * cosLat * scale
	ay := (a[1] - p[1]) * scale
	bx := (b[0] - p[0]) * cosLat * scale
	by := (b[1] - p[1]) * scale

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(ax, ay)
	}

	t := -(ax*dx + ay*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(ax+t*dx, ay+t*dy)
}

// Midpoint returns the point halfway between a and b along the great circle.
func Midpoint(a, b []float64) []float64 {
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	lon1 := a[0] * math.Pi / 180
	dLon := (b[0] - a[0]) * math.Pi / 180

	bx := math.Cos(lat2) * math.Cos(dLon)
	by := math.Cos(lat2) * math.Sin(dLon)

	lat := math.Atan2(math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by))
	lon := lon1 + math.Atan2(by, math.Cos(lat1)+bx)

	return []float64{lon * 180 / math.Pi, lat * 180 / math.Pi}
}
