// Package coastline synthesizes continuous coastline networks and water/land
// classifications from parsed nautical chart features.
package coastline

import (
	"fmt"

	"go.uber.org/zap"
)

// Engine synthesizes coastline networks and water/land classifications from
// parsed chart features.
//
// The engine is stateless per invocation: all working state is local to each
// call, the priority table and classification sets are immutable, and calls
// never mutate input features. Callers may therefore invoke one engine
// concurrently, e.g. one call per chart tile, without synchronization.
//
// The engine defines no internal cancellation: the quadratic matching passes
// run to completion, so callers needing bounded latency must impose their own
// deadline around the call. Every pipeline stage is deterministic given
// identical inputs, which makes whole-call retry always safe.
type Engine struct {
	log        *zap.Logger
	priorities PriorityTable
	classifier SubtypeClassifier
}

// NewEngine creates an engine with the given options.
//
// Zero-value options select the defaults: no logging, DefaultPriorities,
// and the built-in heuristic subtype classifier.
//
// Example:
//
//	engine := coastline.NewEngine(coastline.EngineOptions{Logger: logger})
//	segments := engine.ExtractAllCoastlines(features, coastline.DefaultExtractOptions())
//	chains, err := engine.StitchSegments(segments, coastline.DefaultStitchOptions())
func NewEngine(opts EngineOptions) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	priorities := opts.Priorities
	if priorities == nil {
		priorities = DefaultPriorities()
	}

	classifier := opts.Classifier
	if classifier == nil {
		classifier = &HeuristicClassifier{}
	}

	return &Engine{
		log:        log,
		priorities: priorities,
		classifier: classifier,
	}
}

// CoastlineResult is the output of the full coastline pipeline.
type CoastlineResult struct {
	// Lines are the finalized coastline chains.
	Lines []ProcessedLine

	// Gaps are the unstitched breaks detected between chains, whether or
	// not they were bridged.
	Gaps []Gap

	// Stats summarizes the run.
	Stats CoastlineStats
}

// CoastlineStats reports per-stage counts and aggregate metrics for one run.
type CoastlineStats struct {
	FeatureCount     int     // Input features
	SegmentCount     int     // Raw extracted segments
	DedupedCount     int     // Segments after deduplication
	ChainCount       int     // Chains after stitching and merging
	ClosedRingCount  int     // Chains that closed into rings
	GapCount         int     // Gaps detected
	FilledGapCount   int     // Gaps bridged
	TotalLengthMeter float64 // Summed chain length
}

// BuildCoastlines runs the full pipeline over a feature set:
// extract, deduplicate, stitch, merge, detect and optionally fill gaps,
// classify subtypes, and finalize geometry.
//
// This is the recommended high-level entry point. The individual stages
// remain exposed for callers that need intermediate results.
func (e *Engine) BuildCoastlines(features []Feature, opts BuildOptions) (*CoastlineResult, error) {
	if err := opts.Stitch.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Process.Validate(); err != nil {
		return nil, err
	}

	segments := e.ExtractCoastlines(features, opts.Extract)
	rawCount := len(segments)
	segments = e.DedupeSegments(segments)
	dedupedCount := len(segments)

	// Gap handling runs after chain merging so the pipeline fills each break
	// once; StitchSegments' own fill pass is for standalone callers.
	stitchOpts := opts.Stitch
	stitchOpts.FillGaps = false

	chains, err := e.StitchSegments(segments, stitchOpts)
	if err != nil {
		return nil, fmt.Errorf("stitch segments: %w", err)
	}
	chains = e.MergeConnectedSegments(chains, opts.Stitch.ToleranceMeters)

	gaps := e.DetectGaps(chains, opts.Stitch)
	if opts.Stitch.FillGaps {
		chains, gaps = e.FillGaps(chains, gaps, opts.Stitch)
	}

	result := &CoastlineResult{
		Gaps: gaps,
		Stats: CoastlineStats{
			FeatureCount: len(features),
			SegmentCount: rawCount,
			DedupedCount: dedupedCount,
		},
	}

	for i := range chains {
		line, err := e.ProcessCoastline(chains[i], opts.Process)
		if err != nil {
			return nil, fmt.Errorf("process chain %d: %w", i, err)
		}
		result.Lines = append(result.Lines, line)

		result.Stats.TotalLengthMeter += line.LengthMeters
		if line.Closed {
			result.Stats.ClosedRingCount++
		}
	}

	result.Stats.ChainCount = len(chains)
	result.Stats.GapCount = len(gaps)
	for _, g := range gaps {
		if g.Filled {
			result.Stats.FilledGapCount++
		}
	}

	return result, nil
}
