package coastline

// Bounds represents a geographic bounding box in WGS-84 coordinates.
//
// Coordinates are in decimal degrees.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// Contains returns true if the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Union returns the smallest bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	if other.MinLon < out.MinLon {
		out.MinLon = other.MinLon
	}
	if other.MaxLon > out.MaxLon {
		out.MaxLon = other.MaxLon
	}
	if other.MinLat < out.MinLat {
		out.MinLat = other.MinLat
	}
	if other.MaxLat > out.MaxLat {
		out.MaxLat = other.MaxLat
	}
	return out
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Ring returns the bounds as a closed rectangular polygon ring,
// counterclockwise from the southwest corner.
func (b Bounds) Ring() [][]float64 {
	return [][]float64{
		{b.MinLon, b.MinLat},
		{b.MaxLon, b.MinLat},
		{b.MaxLon, b.MaxLat},
		{b.MinLon, b.MaxLat},
		{b.MinLon, b.MinLat},
	}
}

// BoundingBox calculates the bounding box of a coordinate sequence.
//
// Returns nil for empty input.
func BoundingBox(coords [][]float64) *Bounds {
	if len(coords) == 0 {
		return nil
	}

	bounds := Bounds{
		MinLon: coords[0][0],
		MaxLon: coords[0][0],
		MinLat: coords[0][1],
		MaxLat: coords[0][1],
	}

	for _, coord := range coords {
		lon, lat := coord[0], coord[1]
		if lon < bounds.MinLon {
			bounds.MinLon = lon
		}
		if lon > bounds.MaxLon {
			bounds.MaxLon = lon
		}
		if lat < bounds.MinLat {
			bounds.MinLat = lat
		}
		if lat > bounds.MaxLat {
			bounds.MaxLat = lat
		}
	}

	return &bounds
}

// featureBounds calculates the bounding box for a feature's geometry.
func featureBounds(f Feature) Bounds {
	b := BoundingBox(f.geometry.allCoordinates())
	if b == nil {
		return Bounds{}
	}
	return *b
}
