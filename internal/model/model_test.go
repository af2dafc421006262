package model

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"abalone-estimator/internal/dataset"
	"abalone-estimator/internal/estimator"
)

func TestModelFnTrainSpec(t *testing.T) {
	m := AgeModel{Seed: 1}
	spec, err := m.ModelFn(estimator.ModeTrain, estimator.Params{LearningRate: 0.001})
	if err != nil {
		t.Fatalf("ModelFn error: %v", err)
	}
	if spec.Optimizer == nil {
		t.Fatal("train spec missing optimizer")
	}
	if spec.Loss == nil {
		t.Fatal("train spec missing loss")
	}
	if spec.PredictionKey != PredictionKey {
		t.Fatalf("prediction key = %q", spec.PredictionKey)
	}
	if spec.Network.OutputDim() != 1 {
		t.Fatalf("output dim = %d, want 1", spec.Network.OutputDim())
	}
}

func TestModelFnPredictSpecHasNoOptimizer(t *testing.T) {
	m := AgeModel{Seed: 1}
	spec, err := m.ModelFn(estimator.ModePredict, estimator.Params{LearningRate: 0.001})
	if err != nil {
		t.Fatalf("ModelFn error: %v", err)
	}
	if spec.Optimizer != nil {
		t.Fatal("predict spec should not carry an optimizer")
	}
}

func TestModelForwardScalarPerRow(t *testing.T) {
	m := AgeModel{Seed: 1}
	spec, err := m.ModelFn(estimator.ModePredict, estimator.Params{LearningRate: 0.001})
	if err != nil {
		t.Fatalf("ModelFn error: %v", err)
	}
	x := mat.NewDense(5, dataset.NumFeatures, nil)
	out, err := spec.Network.Forward(x)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	rows, cols := out.Dims()
	if rows != 5 || cols != 1 {
		t.Fatalf("output shape (%d, %d), want (5, 1)", rows, cols)
	}
}
