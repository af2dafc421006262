package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Initializer fills a parameter matrix before training.
type Initializer interface {
	initialize(m *mat.Dense, fanIn, fanOut int, rng *rand.Rand)
	name() string
}

type glorotUniformInit struct{}

// GlorotUniform returns Glorot/Xavier uniform initialization.
func GlorotUniform() Initializer { return glorotUniformInit{} }

func (glorotUniformInit) initialize(m *mat.Dense, fanIn, fanOut int, rng *rand.Rand) {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	data := m.RawMatrix().Data
	for i := range data {
		data[i] = rng.Float64()*2*limit - limit
	}
}

func (glorotUniformInit) name() string { return "glorot_uniform" }

type zerosInit struct{}

// Zeros returns the all-zero initialization used for biases.
func Zeros() Initializer { return zerosInit{} }

func (zerosInit) initialize(m *mat.Dense, fanIn, fanOut int, rng *rand.Rand) {
	m.Zero()
}

func (zerosInit) name() string { return "zeros" }
