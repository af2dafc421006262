package nn

import "gonum.org/v1/gonum/mat"

// Activation is an elementwise activation function.
type Activation interface {
	forward(z, out *mat.Dense)
	// backward writes dL/dz into gradIn given the pre-activation z and dL/dy.
	backward(z, gradOut, gradIn *mat.Dense)
	name() string
}

type reluActivation struct{}

// ReLU returns the rectified linear activation.
func ReLU() Activation { return reluActivation{} }

func (reluActivation) forward(z, out *mat.Dense) {
	out.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	}, z)
}

func (reluActivation) backward(z, gradOut, gradIn *mat.Dense) {
	gradIn.Apply(func(i, j int, g float64) float64 {
		if z.At(i, j) > 0 {
			return g
		}
		return 0
	}, gradOut)
}

func (reluActivation) name() string { return "relu" }

type identityActivation struct{}

// Identity returns the linear (no-op) activation used on output layers.
func Identity() Activation { return identityActivation{} }

func (identityActivation) forward(z, out *mat.Dense) {
	out.Copy(z)
}

func (identityActivation) backward(z, gradOut, gradIn *mat.Dense) {
	gradIn.Copy(gradOut)
}

func (identityActivation) name() string { return "identity" }
