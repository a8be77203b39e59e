package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/beetlebugorg/coastline/pkg/coastline"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// Two adjacent depth areas, a fairway and a wreck.
	features := []coastline.Feature{
		coastline.NewFeature(1, "DEPARE", coastline.NewPolygonGeometry([][][]float64{{
			{-70.60, 41.50}, {-70.55, 41.50}, {-70.55, 41.55}, {-70.60, 41.55}, {-70.60, 41.50},
		}}), map[string]interface{}{"DRVAL1": 5.0, "DRVAL2": 10.0}),
		coastline.NewFeature(2, "DEPARE", coastline.NewPolygonGeometry([][][]float64{{
			{-70.55, 41.50}, {-70.50, 41.50}, {-70.50, 41.55}, {-70.55, 41.55}, {-70.55, 41.50},
		}}), map[string]interface{}{"DRVAL1": 2.0, "DRVAL2": 5.0}),
		coastline.NewFeature(3, "FAIRWY", coastline.NewLineGeometry([][]float64{
			{-70.58, 41.52}, {-70.52, 41.52},
		}), nil),
		coastline.NewFeature(4, "WRECKS", coastline.NewPointGeometry([]float64{-70.53, 41.53}), nil),
	}

	engine := coastline.NewEngine(coastline.EngineOptions{Logger: logger})

	opts := coastline.DefaultWaterLandOptions()
	opts.DeriveLand = true
	opts.Bounds = coastline.Bounds{
		MinLon: -70.65, MaxLon: -70.45,
		MinLat: 41.48, MaxLat: 41.57,
	}

	result, err := engine.ClassifyWaterLandFeatures(features, opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Water:      %d\n", len(result.Water))
	for _, w := range result.Water {
		fmt.Printf("  %-12s %8.2f km2, navigable=%v, merged=%v (from %d)\n",
			w.Subtype, w.AreaKm2, w.Navigable, w.Merged, w.OriginalCount)
	}

	fmt.Printf("Land:       %d\n", len(result.Land))
	for _, l := range result.Land {
		fmt.Printf("  %-12s %8.2f km2\n", l.Subtype, l.AreaKm2)
	}

	fmt.Printf("Navigation: %d\n", len(result.Navigation))
	fmt.Printf("Dangers:    %d\n", len(result.Dangers))
}
