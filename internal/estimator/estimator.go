// Package estimator manages the train/evaluate/predict lifecycle of a model
// described by a model function. The model function is invoked once per
// lifecycle call with the requested mode and the hyperparameter bundle, and
// returns a mode-tagged Spec; learned parameters are carried between calls
// through a checkpoint in the model directory.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"abalone-estimator/internal/dataset"
	"abalone-estimator/internal/metrics"
	"abalone-estimator/internal/nn"
)

// Mode selects which part of the lifecycle a Spec is built for.
type Mode int

const (
	ModeTrain Mode = iota
	ModeEval
	ModePredict
)

func (m Mode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeEval:
		return "eval"
	case ModePredict:
		return "predict"
	default:
		return "unknown"
	}
}

// Params is the hyperparameter bundle handed to the model function on every
// invocation. Immutable for the duration of a run.
type Params struct {
	LearningRate float64
}

// Spec bundles what the estimator needs for one mode: the built network,
// the training loss, the optimizer (train mode only) and the key under
// which predictions are emitted.
type Spec struct {
	Network       *nn.Network
	Loss          nn.Loss
	Optimizer     nn.Optimizer
	PredictionKey string
}

// ModelFn builds a Spec for the requested mode.
type ModelFn func(mode Mode, p Params) (*Spec, error)

// EvalResult reports one evaluation pass.
type EvalResult struct {
	Loss float64
	RMSE float64
}

// Estimator drives a model function through training, evaluation and
// inference, persisting parameters to the model directory in between.
type Estimator struct {
	modelFn  ModelFn
	params   Params
	modelDir string
}

// New returns an Estimator over modelFn. Checkpoints live under modelDir.
func New(modelFn ModelFn, params Params, modelDir string) (*Estimator, error) {
	if modelFn == nil {
		return nil, errors.New("estimator: model fn is nil")
	}
	if modelDir == "" {
		return nil, errors.New("estimator: model dir must be set")
	}
	return &Estimator{modelFn: modelFn, params: params, modelDir: modelDir}, nil
}

func (e *Estimator) buildSpec(mode Mode) (*Spec, error) {
	spec, err := e.modelFn(mode, e.params)
	if err != nil {
		return nil, fmt.Errorf("model fn (%s): %w", mode, err)
	}
	if spec == nil || spec.Network == nil {
		return nil, fmt.Errorf("model fn (%s): spec has no network", mode)
	}
	if mode != ModePredict && spec.Loss == nil {
		return nil, fmt.Errorf("model fn (%s): spec has no loss", mode)
	}
	if mode == ModeTrain && spec.Optimizer == nil {
		return nil, errors.New("model fn (train): spec has no optimizer")
	}
	if mode == ModePredict && spec.PredictionKey == "" {
		return nil, errors.New("model fn (predict): spec has no prediction key")
	}

	if err := restore(e.modelDir, spec.Network); err != nil && !errors.Is(err, errNoCheckpoint) {
		return nil, fmt.Errorf("restore checkpoint: %w", err)
	}
	return spec, nil
}

// Train runs a fixed number of optimization steps over batches drawn from
// the batcher, logging throughput every logEvery steps, and saves a
// checkpoint when done. Returns the loss of the final step.
func (e *Estimator) Train(ctx context.Context, b *dataset.Batcher, steps, logEvery int) (float64, error) {
	if steps <= 0 {
		return 0, errors.New("estimator: steps must be > 0")
	}
	if logEvery <= 0 {
		logEvery = 100
	}

	spec, err := e.buildSpec(ModeTrain)
	if err != nil {
		return 0, err
	}

	var window metrics.Window
	lastLoss := 0.0

	for step := 1; step <= steps; step++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		startData := time.Now()
		batch := b.Next()
		dataTime := time.Since(startData)

		startCompute := time.Now()
		pred, err := spec.Network.Forward(batch.Features)
		if err != nil {
			return 0, fmt.Errorf("step %d forward: %w", step, err)
		}
		lastLoss = spec.Loss.Compute(pred, batch.Targets)
		if err := spec.Network.Backward(spec.Loss.Gradient(pred, batch.Targets)); err != nil {
			return 0, fmt.Errorf("step %d backward: %w", step, err)
		}
		spec.Optimizer.Step(spec.Network.Params(), spec.Network.Grads())
		computeTime := time.Since(startCompute)

		window.Record(len(batch.Targets), dataTime, computeTime, lastLoss)

		if step%logEvery == 0 {
			snap := window.Snapshot()
			log.Printf("mode=train step=%d rows_per_sec=%.1f data_ms=%.3f compute_ms=%.3f loss=%.6f",
				step,
				snap.RowsPerSec,
				snap.AvgDataMS,
				snap.AvgComputeMS,
				snap.LastLoss,
			)
		}
	}

	if err := save(e.modelDir, spec.Network); err != nil {
		return 0, fmt.Errorf("save checkpoint: %w", err)
	}
	return lastLoss, nil
}

// Evaluate runs one full pass over ds and reports loss and RMSE.
func (e *Estimator) Evaluate(ds *dataset.Dataset) (EvalResult, error) {
	if ds.Len() == 0 {
		return EvalResult{}, errors.New("estimator: empty evaluation dataset")
	}
	spec, err := e.buildSpec(ModeEval)
	if err != nil {
		return EvalResult{}, err
	}

	pred, err := spec.Network.Forward(ds.Features)
	if err != nil {
		return EvalResult{}, fmt.Errorf("eval forward: %w", err)
	}

	var rmse metrics.RMSE
	preds := make([]float64, ds.Len())
	for i := range preds {
		preds[i] = pred.At(i, 0)
	}
	rmse.Update(preds, ds.Targets)

	return EvalResult{
		Loss: spec.Loss.Compute(pred, ds.Targets),
		RMSE: rmse.Result(),
	}, nil
}

// Predict runs inference over ds and returns one prediction map per input
// row, keyed by the spec's prediction key.
func (e *Estimator) Predict(ds *dataset.Dataset) ([]map[string]float64, error) {
	if ds.Len() == 0 {
		return nil, errors.New("estimator: empty prediction dataset")
	}
	spec, err := e.buildSpec(ModePredict)
	if err != nil {
		return nil, err
	}

	pred, err := spec.Network.Forward(ds.Features)
	if err != nil {
		return nil, fmt.Errorf("predict forward: %w", err)
	}

	out := make([]map[string]float64, ds.Len())
	for i := range out {
		out[i] = map[string]float64{spec.PredictionKey: pred.At(i, 0)}
	}
	return out, nil
}
