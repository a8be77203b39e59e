package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/coastline/pkg/coastline"
)

func main() {
	// A feature set spanning two harbors; only one is of interest.
	features := []coastline.Feature{
		coastline.NewFeature(1, "COALNE", coastline.NewLineGeometry([][]float64{
			{-70.60, 41.52}, {-70.58, 41.52},
		}), nil),
		coastline.NewFeature(2, "BERTHS", coastline.NewLineGeometry([][]float64{
			{-70.59, 41.521}, {-70.589, 41.5215},
		}), nil),
		coastline.NewFeature(3, "LNDARE", coastline.NewPolygonGeometry([][][]float64{{
			{-70.60, 41.50}, {-70.55, 41.50}, {-70.55, 41.55}, {-70.60, 41.55}, {-70.60, 41.50},
		}}), nil),
		// A second harbor far to the north.
		coastline.NewFeature(4, "COALNE", coastline.NewLineGeometry([][]float64{
			{-70.90, 42.30}, {-70.88, 42.30},
		}), nil),
	}

	idx := coastline.NewFeatureIndex(features, nil)
	fmt.Printf("Indexed %d features, coverage [%.2f,%.2f] to [%.2f,%.2f]\n",
		idx.Count(),
		idx.Bounds().MinLon, idx.Bounds().MinLat,
		idx.Bounds().MaxLon, idx.Bounds().MaxLat)

	// Select the southern harbor, boundary classes only.
	harbor := coastline.Bounds{
		MinLon: -70.65, MaxLon: -70.50,
		MinLat: 41.45, MaxLat: 41.60,
	}
	hits := idx.Query(harbor, coastline.QueryOptions{
		ObjectClasses: []string{"COALNE", "BERTHS", "LNDARE"},
	})

	fmt.Printf("Found %d features in harbor (priority order):\n", len(hits))
	for _, f := range hits {
		fmt.Printf("  %d %s\n", f.ID(), f.ObjectClass())
	}

	// Feed the selection straight into the coastline pipeline.
	engine := coastline.NewEngine(coastline.EngineOptions{})
	result, err := engine.BuildCoastlines(hits, coastline.DefaultBuildOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Built %d coastline(s), %.0f m total\n",
		result.Stats.ChainCount, result.Stats.TotalLengthMeter)
}
