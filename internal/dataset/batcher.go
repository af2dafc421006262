package dataset

import (
	"errors"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Batch is one mini-batch of features and targets.
type Batch struct {
	Features *mat.Dense
	Targets  []float64
}

// BatcherOptions configures a Batcher.
type BatcherOptions struct {
	BatchSize int // 0 means full batch
	Shuffle   bool
	Seed      int64
}

// Batcher yields mini-batches over a Dataset, wrapping around epoch
// boundaries so a fixed step count can exceed one epoch. When shuffling
// is enabled the row order is re-drawn at each epoch from a seeded PRNG.
type Batcher struct {
	ds        *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	order     []int
	cursor    int
}

// NewBatcher builds a Batcher over ds.
func NewBatcher(ds *Dataset, opts BatcherOptions) (*Batcher, error) {
	if ds.Len() == 0 {
		return nil, errors.New("batcher: empty dataset")
	}
	size := opts.BatchSize
	if size <= 0 || size > ds.Len() {
		size = ds.Len()
	}
	b := &Batcher{
		ds:        ds,
		batchSize: size,
		shuffle:   opts.Shuffle,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		order:     make([]int, ds.Len()),
	}
	b.resetEpoch()
	return b, nil
}

func (b *Batcher) resetEpoch() {
	for i := range b.order {
		b.order[i] = i
	}
	if b.shuffle {
		b.rng.Shuffle(len(b.order), func(i, j int) {
			b.order[i], b.order[j] = b.order[j], b.order[i]
		})
	}
	b.cursor = 0
}

// Next returns the next mini-batch. The returned matrices are copies and
// safe to retain across calls.
func (b *Batcher) Next() Batch {
	if b.cursor >= len(b.order) {
		b.resetEpoch()
	}
	end := b.cursor + b.batchSize
	if end > len(b.order) {
		end = len(b.order)
	}
	rows := b.order[b.cursor:end]
	b.cursor = end

	features := mat.NewDense(len(rows), NumFeatures, nil)
	targets := make([]float64, len(rows))
	for i, row := range rows {
		features.SetRow(i, b.ds.Features.RawRowView(row))
		targets[i] = b.ds.Targets[row]
	}
	return Batch{Features: features, Targets: targets}
}

// BatchSize reports the effective batch size.
func (b *Batcher) BatchSize() int { return b.batchSize }
