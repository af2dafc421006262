package nn

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Optimizer updates network parameters from their gradients.
type Optimizer interface {
	Step(params, grads []*mat.Dense)
	Name() string
}

// SGDOptimizer applies plain stochastic gradient descent.
type SGDOptimizer struct {
	LR float64
}

// SGD returns a gradient descent optimizer with the given learning rate.
func SGD(lr float64) Optimizer {
	return &SGDOptimizer{LR: lr}
}

func (s *SGDOptimizer) Step(params, grads []*mat.Dense) {
	for i, p := range params {
		floats.AddScaled(p.RawMatrix().Data, -s.LR, grads[i].RawMatrix().Data)
	}
}

func (s *SGDOptimizer) Name() string { return "sgd" }
