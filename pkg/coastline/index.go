package coastline

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// FeatureIndex provides fast spatial queries over a collection of features.
//
// The index holds each feature's bounding box in an R-tree, so regional
// queries are O(log N) instead of an O(N) linear scan. A typical use is
// selecting only the features covering one chart tile before running the
// coastline pipeline.
//
// Example:
//
//	idx := coastline.NewFeatureIndex(features, nil)
//
//	harbor := coastline.Bounds{
//	    MinLon: -122.5, MaxLon: -122.0,
//	    MinLat: 37.5, MaxLat: 38.0,
//	}
//	hits := idx.Query(harbor, coastline.QueryOptions{
//	    ObjectClasses: []string{"COALNE", "SLCONS"},
//	})
type FeatureIndex struct {
	entries []indexEntry
	rtree   *rtreego.Rtree
	rank    PriorityTable
}

// indexEntry pairs a feature with its precomputed bounds for the R-tree.
type indexEntry struct {
	feature Feature
	bounds  Bounds
}

// Bounds implements rtreego.Spatial.
func (e indexEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.bounds.MinLon, e.bounds.MinLat}
	lengths := []float64{
		e.bounds.MaxLon - e.bounds.MinLon,
		e.bounds.MaxLat - e.bounds.MinLat,
	}

	// R-tree rectangles need positive extent; pad degenerate boxes
	// (points, axis-aligned lines) with a tiny epsilon.
	if lengths[0] <= 0 {
		lengths[0] = 0.0001
	}
	if lengths[1] <= 0 {
		lengths[1] = 0.0001
	}

	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// QueryOptions controls spatial query filtering.
type QueryOptions struct {
	// ObjectClasses filters by S-57 object class acronym.
	// If non-empty, only features matching these classes are returned.
	// Example: []string{"COALNE", "LNDARE"}
	ObjectClasses []string
}

// NewFeatureIndex builds a spatial index over a feature set.
//
// Features with empty geometry are skipped. The priority table orders query
// results; nil selects DefaultPriorities.
func NewFeatureIndex(features []Feature, priorities PriorityTable) *FeatureIndex {
	if priorities == nil {
		priorities = DefaultPriorities()
	}

	// 2D, min=25 children, max=50 children.
	rtree := rtreego.NewTree(2, 25, 50)

	entries := make([]indexEntry, 0, len(features))
	for i := range features {
		if features[i].Geometry().IsEmpty() {
			continue
		}
		entry := indexEntry{
			feature: features[i],
			bounds:  featureBounds(features[i]),
		}
		entries = append(entries, entry)
		rtree.Insert(entry)
	}

	return &FeatureIndex{
		entries: entries,
		rtree:   rtree,
		rank:    priorities,
	}
}

// Query returns features whose bounds intersect the given bounds, ordered by
// source priority rank (authoritative classes first), then by feature ID for
// a stable ordering within a rank.
func (idx *FeatureIndex) Query(bounds Bounds, opts QueryOptions) []Feature {
	point := rtreego.Point{bounds.MinLon, bounds.MinLat}
	lengths := []float64{
		bounds.MaxLon - bounds.MinLon,
		bounds.MaxLat - bounds.MinLat,
	}
	if lengths[0] <= 0 {
		lengths[0] = 0.0001
	}
	if lengths[1] <= 0 {
		lengths[1] = 0.0001
	}
	queryRect, _ := rtreego.NewRect(point, lengths)

	spatials := idx.rtree.SearchIntersect(queryRect)

	var result []Feature
	for _, spatial := range spatials {
		entry := spatial.(indexEntry)

		if len(opts.ObjectClasses) > 0 {
			match := false
			for _, class := range opts.ObjectClasses {
				if entry.feature.ObjectClass() == class {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}

		result = append(result, entry.feature)
	}

	sort.Slice(result, func(i, j int) bool {
		ri := idx.rank.Rank(result[i].ObjectClass())
		rj := idx.rank.Rank(result[j].ObjectClass())
		if ri != rj {
			return ri < rj
		}
		return result[i].ID() < result[j].ID()
	})

	return result
}

// Count returns the total number of indexed features.
func (idx *FeatureIndex) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed feature bounds.
func (idx *FeatureIndex) Bounds() Bounds {
	if len(idx.entries) == 0 {
		return Bounds{}
	}

	bounds := idx.entries[0].bounds
	for i := 1; i < len(idx.entries); i++ {
		bounds = bounds.Union(idx.entries[i].bounds)
	}

	return bounds
}

// All returns all indexed features.
func (idx *FeatureIndex) All() []Feature {
	features := make([]Feature, len(idx.entries))
	for i := range idx.entries {
		features[i] = idx.entries[i].feature
	}
	return features
}
