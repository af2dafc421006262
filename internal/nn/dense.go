package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Layer is the base interface for network layers.
type Layer interface {
	build(inputDim int, rng *rand.Rand) error
	forward(input *mat.Dense) (*mat.Dense, error)
	backward(gradOut *mat.Dense) (*mat.Dense, error)
	parameters() []*mat.Dense
	gradients() []*mat.Dense
	outputDim() int
	name() string
}

// DenseLayer is a fully connected layer: y = act(x W + b).
type DenseLayer struct {
	units       int
	activation  Activation
	initializer Initializer

	weights *mat.Dense // fanIn x units
	bias    *mat.Dense // 1 x units
	gradW   *mat.Dense
	gradB   *mat.Dense

	input  *mat.Dense
	preAct *mat.Dense

	inputDim int
	built    bool
}

// DenseBuilder configures a DenseLayer fluently.
type DenseBuilder struct {
	layer *DenseLayer
}

// Dense starts building a fully connected layer with the given unit count.
func Dense(units int) *DenseBuilder {
	return &DenseBuilder{layer: &DenseLayer{units: units}}
}

func (b *DenseBuilder) WithActivation(act Activation) *DenseBuilder {
	b.layer.activation = act
	return b
}

func (b *DenseBuilder) WithInitializer(init Initializer) *DenseBuilder {
	b.layer.initializer = init
	return b
}

func (b *DenseBuilder) Build() Layer {
	return b.layer
}

func (d *DenseLayer) build(inputDim int, rng *rand.Rand) error {
	if d.units <= 0 {
		return fmt.Errorf("nn: dense layer units must be > 0 (got %d)", d.units)
	}
	if inputDim <= 0 {
		return fmt.Errorf("nn: dense layer input dim must be > 0 (got %d)", inputDim)
	}
	if d.activation == nil {
		return errors.New("nn: dense layer requires activation - use WithActivation()")
	}
	if d.initializer == nil {
		return errors.New("nn: dense layer requires initializer - use WithInitializer()")
	}

	d.inputDim = inputDim
	d.weights = mat.NewDense(inputDim, d.units, nil)
	d.initializer.initialize(d.weights, inputDim, d.units, rng)
	d.bias = mat.NewDense(1, d.units, nil)
	d.gradW = mat.NewDense(inputDim, d.units, nil)
	d.gradB = mat.NewDense(1, d.units, nil)
	d.built = true
	return nil
}

func (d *DenseLayer) forward(input *mat.Dense) (*mat.Dense, error) {
	if !d.built {
		return nil, errors.New("nn: layer not built")
	}
	batch, cols := input.Dims()
	if cols != d.inputDim {
		return nil, fmt.Errorf("nn: input dim %d, layer expects %d", cols, d.inputDim)
	}

	d.input = input
	d.preAct = mat.NewDense(batch, d.units, nil)
	d.preAct.Mul(input, d.weights)
	for i := 0; i < batch; i++ {
		row := d.preAct.RawRowView(i)
		for j := 0; j < d.units; j++ {
			row[j] += d.bias.At(0, j)
		}
	}

	out := mat.NewDense(batch, d.units, nil)
	d.activation.forward(d.preAct, out)
	return out, nil
}

func (d *DenseLayer) backward(gradOut *mat.Dense) (*mat.Dense, error) {
	if d.input == nil {
		return nil, errors.New("nn: backward called before forward")
	}
	batch, _ := d.input.Dims()

	gradPre := mat.NewDense(batch, d.units, nil)
	d.activation.backward(d.preAct, gradOut, gradPre)

	// dL/dW = X^T dL/dZ, dL/db = column sums of dL/dZ.
	d.gradW.Mul(d.input.T(), gradPre)
	d.gradB.Zero()
	for i := 0; i < batch; i++ {
		row := gradPre.RawRowView(i)
		for j := 0; j < d.units; j++ {
			d.gradB.Set(0, j, d.gradB.At(0, j)+row[j])
		}
	}

	gradIn := mat.NewDense(batch, d.inputDim, nil)
	gradIn.Mul(gradPre, d.weights.T())
	return gradIn, nil
}

func (d *DenseLayer) parameters() []*mat.Dense {
	return []*mat.Dense{d.weights, d.bias}
}

func (d *DenseLayer) gradients() []*mat.Dense {
	return []*mat.Dense{d.gradW, d.gradB}
}

func (d *DenseLayer) outputDim() int { return d.units }

func (d *DenseLayer) name() string { return "dense" }
