package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/coastline/pkg/coastline"
)

func main() {
	// Features normally come from a chart parser; here a small harbor is
	// built by hand: an island, two coastline stretches and a pier.
	features := []coastline.Feature{
		coastline.NewFeature(1, "LNDARE", coastline.NewPolygonGeometry([][][]float64{{
			{-70.500, 41.500},
			{-70.490, 41.500},
			{-70.490, 41.510},
			{-70.500, 41.510},
			{-70.500, 41.500},
		}}), nil),
		coastline.NewFeature(2, "COALNE", coastline.NewLineGeometry([][]float64{
			{-70.600, 41.520}, {-70.590, 41.521}, {-70.580, 41.520},
		}), nil),
		coastline.NewFeature(3, "COALNE", coastline.NewLineGeometry([][]float64{
			{-70.580, 41.520}, {-70.570, 41.519},
		}), nil),
		coastline.NewFeature(4, "SLCONS", coastline.NewLineGeometry([][]float64{
			{-70.570, 41.519}, {-70.5695, 41.5182},
		}), map[string]interface{}{"CATSLC": 4}),
	}

	engine := coastline.NewEngine(coastline.EngineOptions{})

	result, err := engine.BuildCoastlines(features, coastline.DefaultBuildOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Features:  %d\n", result.Stats.FeatureCount)
	fmt.Printf("Segments:  %d (%d after dedupe)\n", result.Stats.SegmentCount, result.Stats.DedupedCount)
	fmt.Printf("Chains:    %d (%d closed rings)\n", result.Stats.ChainCount, result.Stats.ClosedRingCount)
	fmt.Printf("Length:    %.0f m\n", result.Stats.TotalLengthMeter)

	for i, line := range result.Lines {
		fmt.Printf("  line %d: %-8s %5d vertices, %.0f m, closed=%v\n",
			i, line.Subtype, len(line.Coordinates), line.LengthMeters, line.Closed)
	}
}
