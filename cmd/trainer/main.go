package main

import (
	"context"
	"flag"
	"log"
	"time"

	"talent-match/internal/app"
	"talent-match/internal/config"
	"talent-match/internal/domain/fit"
	"talent-match/internal/pipeline"
)

// Offline pipeline runner. Trains the fit model by default; -pipeline
// selects the match refresh or skill backfill jobs instead.
func main() {
	which := flag.String("pipeline", "train", "pipeline to run: train, refresh, backfill")
	timeout := flag.Duration("timeout", 30*time.Minute, "hard deadline for the run")
	limit := flag.Int("limit", 0, "backfill only: max jobs to process (0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(*cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *which {
	case "train":
		rep, err := c.TrainingPipe.Run(ctx, pipeline.TrainingParams{
			Workers:     cfg.Training.Workers,
			RateLimit:   cfg.Training.RateLimit,
			MinSamples:  cfg.Training.MinSamples,
			ArtifactDir: cfg.Training.ArtifactDir,
			Forest: fit.Params{
				Trees:    cfg.Training.Trees,
				MaxDepth: cfg.Training.MaxDepth,
			},
		})
		if err != nil {
			log.Fatalf("training failed: %v", err)
		}
		log.Printf("training done: samples=%d real=%d f1=%.4f",
			rep.SampleCount, rep.RealSamples, rep.Metrics.F1)
	case "refresh":
		if err := c.RefreshPipe.Run(ctx, pipeline.MatchRefreshParams{
			Workers:   cfg.Training.Workers,
			RateLimit: cfg.Training.RateLimit,
		}); err != nil {
			log.Fatalf("match refresh failed: %v", err)
		}
		log.Printf("match refresh done")
	case "backfill":
		if err := c.BackfillPipe.Run(ctx, pipeline.SkillBackfillParams{
			Workers: cfg.Training.Workers,
			Limit:   *limit,
		}); err != nil {
			log.Fatalf("skill backfill failed: %v", err)
		}
		log.Printf("skill backfill done")
	default:
		log.Fatalf("unknown pipeline %q", *which)
	}
}
