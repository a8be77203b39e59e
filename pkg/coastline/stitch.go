package coastline

import (
	"github.com/beetlebugorg/coastline/internal/geo"
)

// chainState tracks the lifecycle of a chain under construction.
type chainState int

const (
	stateUnstarted chainState = iota
	stateGrowing
	stateClosed
	stateTerminal
)

// stitchItem is the unit of the greedy matcher. Both raw segments and whole
// chains are stitched through the same algorithm; only the item construction
// differs.
type stitchItem struct {
	coords       [][]float64
	sources      []string
	subtype      string
	rank         int
	deduplicated bool
	mergedCount  int
	gapCount     int
	consumed     bool
}

// StitchSegments joins segment endpoints within tolerance into continuous
// chains.
//
// The matcher is greedy: it seeds a chain with an unconsumed segment, then
// repeatedly searches the remaining segments for one whose either endpoint
// lies within tolerance of the chain's free endpoint, reversing the candidate
// when its far end matches, until no candidate remains at either end
// (terminal chain) or the chain's two free ends meet within tolerance
// (closed ring). Ties among candidates break by nearest distance, then by
// source priority rank.
//
// When opts.FillGaps is set, detected gaps are bridged and stitching re-runs
// so the bridges are absorbed; see FillGaps.
//
// Endpoint matching is O(n²) in segment count, sized for per-tile feature
// sets, not whole-catalog batches.
func (e *Engine) StitchSegments(segments []Segment, opts StitchOptions) ([]Chain, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	items := make([]stitchItem, len(segments))
	for i := range segments {
		items[i] = stitchItem{
			coords:       segments[i].Coordinates,
			sources:      segments[i].AllSources,
			subtype:      segments[i].Subtype,
			rank:         e.priorities.Rank(segments[i].PrimarySource),
			deduplicated: segments[i].Deduplicated,
			mergedCount:  segments[i].MergedSourceCount,
		}
	}

	chains := e.greedyStitch(items, opts.ToleranceMeters)

	if opts.FillGaps {
		gaps := e.DetectGaps(chains, opts)
		chains, _ = e.FillGaps(chains, gaps, opts)
	}

	return chains, nil
}

// MergeConnectedSegments re-applies endpoint matching at chain granularity to
// absorb residual fragmentation left by independently extracted categories.
//
// Closed rings are final and pass through untouched; only open chains are
// candidates for merging.
func (e *Engine) MergeConnectedSegments(chains []Chain, toleranceMeters float64) []Chain {
	if len(chains) <= 1 {
		return chains
	}

	var out []Chain
	var items []stitchItem

	for i := range chains {
		if chains[i].Closed {
			out = append(out, chains[i])
			continue
		}
		items = append(items, e.chainToItem(&chains[i]))
	}

	if len(items) > 0 {
		out = append(out, e.greedyStitch(items, toleranceMeters)...)
	}

	return out
}

// greedyStitch runs the chain state machine over a set of items.
func (e *Engine) greedyStitch(items []stitchItem, tolerance float64) []Chain {
	var chains []Chain

	for seed := range items {
		if items[seed].consumed {
			continue
		}
		items[seed].consumed = true

		state := stateGrowing
		coords := items[seed].coords
		sources := append([]string(nil), items[seed].sources...)
		subtype := items[seed].subtype
		deduplicated := items[seed].deduplicated
		mergedCount := items[seed].mergedCount
		gapCount := items[seed].gapCount

		// The chain grows from its tail; when the tail is exhausted it is
		// reversed once so the other end gets a turn. Any successful growth
		// re-arms the flip, so both ends are exhausted before terminating.
		// Orientation stays fixed by the seed segment: a chain left reversed
		// when growth stops is flipped back.
		flipped := false
		reversed := false

		// A seed that is already a ring (polygon-derived boundary) closes
		// immediately.
		if isClosable(coords, tolerance) {
			state = stateClosed
		}

		for state == stateGrowing {
			free := coords[len(coords)-1]

			best := -1
			bestReversed := false
			bestDist := 0.0
			for i := range items {
				if items[i].consumed {
					continue
				}

				dStart := geo.Distance(free, items[i].coords[0])
				dEnd := geo.Distance(free, items[i].coords[len(items[i].coords)-1])

				d, rev := dStart, false
				if dEnd < dStart {
					d, rev = dEnd, true
				}
				if d > tolerance {
					continue
				}

				// Nearest candidate wins; priority rank breaks distance ties.
				if best == -1 || d < bestDist ||
					(d == bestDist && items[i].rank < items[best].rank) {
					best, bestReversed, bestDist = i, rev, d
				}
			}

			if best == -1 {
				if flipped {
					state = stateTerminal
					break
				}
				coords = reverseCoordinates(coords)
				flipped = true
				reversed = !reversed
				continue
			}
			flipped = false

			items[best].consumed = true
			next := items[best].coords
			if bestReversed {
				next = reverseCoordinates(next)
			}
			coords = appendJoined(coords, next)

			sources = mergeSources(sources, items[best].sources)
			if subtype == "" {
				subtype = items[best].subtype
			}
			deduplicated = deduplicated || items[best].deduplicated
			mergedCount += items[best].mergedCount
			gapCount += items[best].gapCount

			if isClosable(coords, tolerance) {
				state = stateClosed
			}
		}

		if reversed {
			coords = reverseCoordinates(coords)
		}

		if state == stateClosed && !coordsEqual(coords[0], coords[len(coords)-1]) {
			coords = append(coords, coords[0])
		}

		chain := Chain{
			Coordinates:       coords,
			Sources:           sources,
			Closed:            state == stateClosed,
			Subtype:           subtype,
			LengthMeters:      geo.LineLength(coords),
			GapCount:          gapCount,
			Deduplicated:      deduplicated,
			MergedSourceCount: mergedCount,
		}
		chain.Subtype = e.classifier.Classify(&chain)
		chains = append(chains, chain)
	}

	return chains
}

// isClosable reports whether a growing chain's free ends have met.
//
// Guards against degenerate closure: a chain must span more than twice the
// tolerance before its ends merely meeting within tolerance counts as a ring
// rather than noise. Exactly coincident ends are exempt from the length
// guard, so small polygon-derived rings still close.
func isClosable(coords [][]float64, tolerance float64) bool {
	if len(coords) < 3 {
		return false
	}
	if len(coords) >= 4 && coordsEqual(coords[0], coords[len(coords)-1]) {
		return true
	}
	if geo.LineLength(coords) <= 2*tolerance {
		return false
	}
	return geo.Distance(coords[0], coords[len(coords)-1]) <= tolerance
}

// appendJoined concatenates a matched item onto chain coordinates, dropping
// the junction vertex when the endpoints coincide exactly.
func appendJoined(coords, next [][]float64) [][]float64 {
	if len(next) > 0 && coordsEqual(coords[len(coords)-1], next[0]) {
		next = next[1:]
	}
	return append(coords, next...)
}

// mergeSources appends unseen source classes, preserving first-contribution order.
func mergeSources(into, from []string) []string {
	seen := make(map[string]bool, len(into))
	for _, s := range into {
		seen[s] = true
	}
	for _, s := range from {
		if !seen[s] {
			seen[s] = true
			into = append(into, s)
		}
	}
	return into
}

// chainToItem converts a chain back into matcher input for chain-level merging
// and gap-bridge absorption.
func (e *Engine) chainToItem(c *Chain) stitchItem {
	rank := unrankedPriority
	// A chain inherits its best source's rank for tie-breaking.
	for _, s := range c.Sources {
		if r := e.priorities.Rank(s); r < rank {
			rank = r
		}
	}

	// Heuristic subtypes must not masquerade as construction subtypes when
	// the merged chain is reclassified; only attribute-carried subtypes stick.
	subtype := c.Subtype
	if subtype == SubtypeIsland || subtype == SubtypeMainland {
		subtype = ""
	}

	return stitchItem{
		coords:       c.Coordinates,
		sources:      c.Sources,
		subtype:      subtype,
		rank:         rank,
		deduplicated: c.Deduplicated,
		mergedCount:  c.MergedSourceCount,
		gapCount:     c.GapCount,
	}
}
