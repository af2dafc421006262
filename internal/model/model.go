// Package model defines the abalone age regressor handed to the estimator.
package model

import (
	"abalone-estimator/internal/dataset"
	"abalone-estimator/internal/estimator"
	"abalone-estimator/internal/nn"
)

// PredictionKey is the key under which predicted ages are emitted.
const PredictionKey = "ages"

const hiddenUnits = 10

// AgeModel builds the three layer feed-forward regressor: two hidden
// layers of 10 relu units and a single linear output unit mapping the
// seven measurements to a ring count.
type AgeModel struct {
	Seed int64
}

// ModelFn is the model function the estimator invokes per lifecycle call.
func (m AgeModel) ModelFn(mode estimator.Mode, p estimator.Params) (*estimator.Spec, error) {
	net := nn.NewNetwork().
		AddLayer(nn.Dense(hiddenUnits).
			WithActivation(nn.ReLU()).
			WithInitializer(nn.GlorotUniform()).
			Build()).
		AddLayer(nn.Dense(hiddenUnits).
			WithActivation(nn.ReLU()).
			WithInitializer(nn.GlorotUniform()).
			Build()).
		AddLayer(nn.Dense(1).
			WithActivation(nn.Identity()).
			WithInitializer(nn.GlorotUniform()).
			Build())
	if err := net.Build(dataset.NumFeatures, m.Seed); err != nil {
		return nil, err
	}

	spec := &estimator.Spec{
		Network:       net,
		Loss:          nn.MSE(),
		PredictionKey: PredictionKey,
	}
	if mode == estimator.ModeTrain {
		spec.Optimizer = nn.SGD(p.LearningRate)
	}
	return spec, nil
}
