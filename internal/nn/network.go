package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Network is an ordered stack of layers.
type Network struct {
	layers []Layer
	built  bool
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{}
}

// AddLayer appends a layer. Must be called before Build.
func (n *Network) AddLayer(l Layer) *Network {
	n.layers = append(n.layers, l)
	return n
}

// Build initializes every layer's parameters from a seeded PRNG. The same
// seed always produces the same initial parameters.
func (n *Network) Build(inputDim int, seed int64) error {
	if len(n.layers) == 0 {
		return errors.New("nn: network has no layers")
	}
	rng := rand.New(rand.NewSource(seed))
	dim := inputDim
	for i, l := range n.layers {
		if err := l.build(dim, rng); err != nil {
			return fmt.Errorf("layer %d (%s): %w", i, l.name(), err)
		}
		dim = l.outputDim()
	}
	n.built = true
	return nil
}

// OutputDim reports the width of the final layer.
func (n *Network) OutputDim() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].outputDim()
}

// Forward runs a batch through the network.
func (n *Network) Forward(x *mat.Dense) (*mat.Dense, error) {
	if !n.built {
		return nil, errors.New("nn: network not built")
	}
	out := x
	for i, l := range n.layers {
		var err error
		out, err = l.forward(out)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s) forward: %w", i, l.name(), err)
		}
	}
	return out, nil
}

// Backward propagates a loss gradient from the output back through every
// layer, filling each layer's parameter gradients.
func (n *Network) Backward(gradOut *mat.Dense) error {
	if !n.built {
		return errors.New("nn: network not built")
	}
	grad := gradOut
	for i := len(n.layers) - 1; i >= 0; i-- {
		var err error
		grad, err = n.layers[i].backward(grad)
		if err != nil {
			return fmt.Errorf("layer %d (%s) backward: %w", i, n.layers[i].name(), err)
		}
	}
	return nil
}

// Params returns every learnable parameter matrix in layer order.
func (n *Network) Params() []*mat.Dense {
	var out []*mat.Dense
	for _, l := range n.layers {
		out = append(out, l.parameters()...)
	}
	return out
}

// Grads returns the gradient matrices matching Params.
func (n *Network) Grads() []*mat.Dense {
	var out []*mat.Dense
	for _, l := range n.layers {
		out = append(out, l.gradients()...)
	}
	return out
}
