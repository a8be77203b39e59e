package coastline

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/beetlebugorg/coastline/internal/geo"
)

// DedupeSegments collapses geometrically coincident segments to their
// highest-priority source.
//
// Segments are grouped by a quantized coordinate-sequence key (6 decimal
// digits, direction-insensitive, so a ring traced clockwise by one source and
// counterclockwise by another still coincides). Within a group the member
// with the lowest priority rank survives; ties prefer zero-depth segments and
// then input order. The survivor's AllSources becomes the union of every
// group member's sources, so deduplication never loses provenance.
//
// Idempotent: deduplicating already-deduplicated segments is a no-op.
func (e *Engine) DedupeSegments(segments []Segment) []Segment {
	if len(segments) <= 1 {
		return segments
	}

	groups := make(map[string][]int)
	order := make([]string, 0, len(segments))
	for i := range segments {
		key := segmentKey(segments[i].Coordinates)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	out := make([]Segment, 0, len(groups))
	for _, key := range order {
		group := groups[key]
		if len(group) == 1 {
			out = append(out, segments[group[0]])
			continue
		}

		best := group[0]
		for _, idx := range group[1:] {
			if e.segmentBeats(&segments[idx], &segments[best]) {
				best = idx
			}
		}

		survivor := segments[best]
		survivor.AllSources = unionSources(segments, group, survivor.PrimarySource)
		survivor.Deduplicated = true
		survivor.MergedSourceCount = len(group)
		out = append(out, survivor)

		e.log.Debug("collapsed coincident segments",
			zap.String("primary", survivor.PrimarySource),
			zap.Strings("sources", survivor.AllSources),
			zap.Int("count", len(group)))
	}

	return out
}

// segmentBeats reports whether candidate should replace current as the
// surviving member of a coincident group.
func (e *Engine) segmentBeats(candidate, current *Segment) bool {
	cr := e.priorities.Rank(candidate.PrimarySource)
	br := e.priorities.Rank(current.PrimarySource)
	if cr != br {
		return cr < br
	}

	// Equal rank: a zero-depth boundary beats a shallow reference.
	if isZeroDepth(candidate) != isZeroDepth(current) {
		return isZeroDepth(candidate)
	}

	return false
}

func isZeroDepth(s *Segment) bool {
	return s.DepthValue != nil && *s.DepthValue == 0
}

// unionSources collects every source class across the group, primary first,
// preserving first-appearance order and dropping duplicates.
func unionSources(segments []Segment, group []int, primary string) []string {
	sources := []string{primary}
	seen := map[string]bool{primary: true}

	for _, idx := range group {
		for _, src := range segments[idx].AllSources {
			if !seen[src] {
				seen[src] = true
				sources = append(sources, src)
			}
		}
	}
	return sources
}

// segmentKey builds the quantized grouping key for a coordinate sequence.
//
// The key is direction-insensitive: the lexicographically smaller of the
// forward and reversed encodings is used.
func segmentKey(coords [][]float64) string {
	rounded := geo.RoundCoordinates(coords, geo.DefaultPrecision)

	forward := encodeCoordinates(rounded)
	backward := encodeCoordinates(reverseCoordinates(rounded))
	if backward < forward {
		return backward
	}
	return forward
}

func encodeCoordinates(coords [][]float64) string {
	var b strings.Builder
	b.Grow(len(coords) * 24)
	for _, c := range coords {
		b.WriteString(strconv.FormatFloat(c[0], 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(c[1], 'f', -1, 64))
		b.WriteByte(';')
	}
	return b.String()
}
