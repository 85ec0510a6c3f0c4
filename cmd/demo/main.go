package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/terrain-analyst/internal/app"
	"github.com/terrain-analyst/internal/config"
	"github.com/terrain-analyst/internal/domain"
	"github.com/terrain-analyst/internal/pkg/logger"
)

var (
	searchAreas = []string{"mountain_valley_east", "river_crossing_north", "dense_forest_west"}

	routes = []struct{ start, end, difficulty string }{
		{"base_camp_alpha", "ridge_overlook", domain.RouteNormal},
		{"river_crossing_north", "mountain_valley_east", domain.RouteHard},
		{"dense_forest_west", "base_camp_alpha", domain.RouteExtreme},
	}

	crossingTypes = []domain.ObstacleType{
		domain.ObstacleWaterCrossing,
		domain.ObstacleSteepSlope,
		domain.ObstacleDenseVegetation,
	}
)

func main() {
	mapsDir := flag.String("maps", "terrain_maps", "directory for GeoJSON maps")
	seed := flag.Uint64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *seed != 0 {
		cfg.Analyst.Seed = *seed
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx := context.Background()
	analyst, err := app.Build(ctx, cfg, log, false)
	if err != nil {
		log.Fatal("Failed to initialize analyst", zap.Error(err))
	}
	defer analyst.Close()
	uc := analyst.UseCase

	uc.UpdateStatus("active")
	fmt.Printf("Agent status: %s\n", uc.Status())

	section("TERRAIN ANALYSIS")
	for _, area := range searchAreas {
		snapshot, err := uc.AnalyzeTerrain(ctx, area, domain.DefaultResolution, true)
		if err != nil {
			log.Fatal("Terrain analysis failed", zap.String("location", area), zap.Error(err))
		}
		show("Terrain Analysis for "+area, snapshot)
	}

	section("OBSTACLE IDENTIFICATION")
	for _, area := range searchAreas {
		report, err := uc.IdentifyObstacles(ctx, area, true)
		if err != nil {
			log.Fatal("Obstacle identification failed", zap.String("location", area), zap.Error(err))
		}
		show("Obstacles in "+area, report)
	}

	section("PATH GENERATION")
	for _, r := range routes {
		plan, err := uc.GeneratePath(ctx, r.start, r.end, r.difficulty, true)
		if err != nil {
			log.Fatal("Path generation failed", zap.String("start", r.start), zap.String("end", r.end), zap.Error(err))
		}
		show(fmt.Sprintf("Path from %s to %s (%s difficulty)", r.start, r.end, r.difficulty), plan)
	}

	section("TERRAIN MAPS")
	if err := os.MkdirAll(*mapsDir, 0o755); err != nil {
		log.Fatal("Failed to create maps directory", zap.Error(err))
	}
	for _, area := range searchAreas {
		fc, err := uc.GetTerrainMap(ctx, area, "geojson", true)
		if err != nil {
			log.Fatal("Map export failed", zap.String("location", area), zap.Error(err))
		}
		path := filepath.Join(*mapsDir, area+"_map.geojson")
		if err := writeJSON(path, fc); err != nil {
			log.Fatal("Failed to save map", zap.String("path", path), zap.Error(err))
		}
		fmt.Printf("Saved terrain map for %s to %s\n", area, path)
	}

	section("TERRAIN MONITORING")
	for _, area := range searchAreas {
		changes, err := uc.MonitorTerrainChanges(ctx, area)
		if err != nil {
			log.Fatal("Change monitoring failed", zap.String("location", area), zap.Error(err))
		}
		show("Terrain changes for "+area, changes)
	}

	section("CROSSING DIFFICULTY EVALUATION")
	for _, area := range searchAreas {
		for _, t := range crossingTypes {
			report, err := uc.EvaluateCrossingDifficulty(ctx, area, t)
			var noMatch *domain.NoMatchingObstaclesError
			if stderrors.As(err, &noMatch) {
				continue
			}
			if err != nil {
				log.Fatal("Crossing evaluation failed", zap.String("location", area), zap.Error(err))
			}
			show(fmt.Sprintf("Crossing difficulty for %s in %s", t, area), report)
		}
	}
}

func section(title string) {
	fmt.Printf("\n--- %s ---\n", title)
}

func show(title string, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("\n%s: %v\n", title, err)
		return
	}
	fmt.Printf("\n%s:\n%s\n", title, out)
}

func writeJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
