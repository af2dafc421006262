package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"abalone-estimator/internal/config"
	"abalone-estimator/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "configs/abalone.yaml", "Path to YAML config")
	dataDir := flag.String("data-dir", "", "Override dataset cache directory")
	modelDir := flag.String("model-dir", "", "Override checkpoint directory")
	steps := flag.Int("steps", 0, "Number of training steps")
	batchSize := flag.Int("batch-size", 0, "Batch size (0 = full batch)")
	learningRate := flag.Float64("learning-rate", 0, "SGD learning rate")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log every N steps")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		DataDir:      *dataDir,
		ModelDir:     *modelDir,
		Steps:        *steps,
		BatchSize:    *batchSize,
		LearningRate: *learningRate,
		Seed:         *seed,
		LogEvery:     *logEvery,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		DataDir:      cfg.DataDir,
		ModelDir:     cfg.ModelDir,
		TrainURL:     cfg.TrainURL,
		TestURL:      cfg.TestURL,
		PredictURL:   cfg.PredictURL,
		Steps:        cfg.Steps,
		BatchSize:    cfg.BatchSize,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
		LogEvery:     cfg.LogEvery,
	}

	if err := trainer.Run(ctx, runCfg); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
