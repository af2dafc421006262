package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"path/filepath"

	"abalone-estimator/internal/dataset"
	"abalone-estimator/internal/estimator"
	"abalone-estimator/internal/model"
)

// RunConfig captures the knobs required by the training run.
type RunConfig struct {
	DataDir      string
	ModelDir     string
	TrainURL     string
	TestURL      string
	PredictURL   string
	Steps        int
	BatchSize    int
	LearningRate float64
	Seed         int64
	LogEvery     int
}

// Run executes the whole pipeline: fetch and load the three datasets,
// train the age model for a fixed step count, evaluate on the test set
// and print predictions for the held-out rows.
func Run(ctx context.Context, cfg RunConfig) error {
	if cfg.Steps <= 0 {
		return errors.New("trainer: steps must be > 0")
	}
	if cfg.LearningRate <= 0 {
		return errors.New("trainer: learning rate must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 100
	}

	train, err := fetchDataset(ctx, cfg.TrainURL, cfg.DataDir)
	if err != nil {
		return err
	}
	test, err := fetchDataset(ctx, cfg.TestURL, cfg.DataDir)
	if err != nil {
		return err
	}
	predict, err := fetchDataset(ctx, cfg.PredictURL, cfg.DataDir)
	if err != nil {
		return err
	}

	est, err := estimator.New(
		model.AgeModel{Seed: cfg.Seed}.ModelFn,
		estimator.Params{LearningRate: cfg.LearningRate},
		cfg.ModelDir,
	)
	if err != nil {
		return err
	}

	batcher, err := dataset.NewBatcher(train, dataset.BatcherOptions{
		BatchSize: cfg.BatchSize,
		Shuffle:   true,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("train batcher: %w", err)
	}

	finalLoss, err := est.Train(ctx, batcher, cfg.Steps, cfg.LogEvery)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	log.Printf("mode=train done steps=%d loss=%.6f", cfg.Steps, finalLoss)

	eval, err := est.Evaluate(test)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	log.Printf("mode=eval records=%d loss=%.6f rmse=%.4f", test.Len(), eval.Loss, eval.RMSE)

	preds, err := est.Predict(predict)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	for i, p := range preds {
		log.Printf("mode=predict row=%d predicted_age=%.2f actual_rings=%.0f",
			i, p[model.PredictionKey], predict.Targets[i])
	}

	return nil
}

func fetchDataset(ctx context.Context, url, dataDir string) (*dataset.Dataset, error) {
	name := path.Base(url)
	local := filepath.Join(dataDir, name)
	if err := dataset.Fetch(ctx, url, local); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	ds, err := dataset.Load(local)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	sum := dataset.Summarize(ds)
	log.Printf("dataset=%s records=%d features=%d target_mean=%.2f target_std=%.2f",
		name, sum.Records, dataset.NumFeatures, sum.TargetMean, sum.TargetStd)
	return ds, nil
}
