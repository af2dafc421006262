package dataset

import (
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func buildDataset(t *testing.T, rows int) *Dataset {
	t.Helper()
	features := mat.NewDense(rows, NumFeatures, nil)
	targets := make([]float64, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < NumFeatures; j++ {
			features.Set(i, j, float64(i))
		}
		targets[i] = float64(i)
	}
	return &Dataset{Features: features, Targets: targets}
}

func TestBatcherCoversEpoch(t *testing.T) {
	ds := buildDataset(t, 10)
	b, err := NewBatcher(ds, BatcherOptions{BatchSize: 4})
	if err != nil {
		t.Fatalf("NewBatcher error: %v", err)
	}

	var seen []float64
	for i := 0; i < 3; i++ {
		batch := b.Next()
		seen = append(seen, batch.Targets...)
	}
	if len(seen) != 10 {
		t.Fatalf("epoch yielded %d rows, want 10", len(seen))
	}
	sort.Float64s(seen)
	for i, v := range seen {
		if v != float64(i) {
			t.Fatalf("row %d missing from epoch (got %g)", i, v)
		}
	}
}

func TestBatcherWrapsAround(t *testing.T) {
	ds := buildDataset(t, 3)
	b, err := NewBatcher(ds, BatcherOptions{BatchSize: 2})
	if err != nil {
		t.Fatalf("NewBatcher error: %v", err)
	}
	for i := 0; i < 10; i++ {
		batch := b.Next()
		if len(batch.Targets) == 0 {
			t.Fatalf("step %d: empty batch", i)
		}
	}
}

func TestBatcherFullBatchDefault(t *testing.T) {
	ds := buildDataset(t, 5)
	b, err := NewBatcher(ds, BatcherOptions{})
	if err != nil {
		t.Fatalf("NewBatcher error: %v", err)
	}
	if b.BatchSize() != 5 {
		t.Fatalf("batch size = %d, want 5", b.BatchSize())
	}
	batch := b.Next()
	rows, cols := batch.Features.Dims()
	if rows != 5 || cols != NumFeatures {
		t.Fatalf("batch shape (%d, %d)", rows, cols)
	}
}

func TestBatcherShuffleIsSeeded(t *testing.T) {
	ds := buildDataset(t, 32)
	first, err := NewBatcher(ds, BatcherOptions{BatchSize: 32, Shuffle: true, Seed: 9})
	if err != nil {
		t.Fatalf("NewBatcher error: %v", err)
	}
	second, err := NewBatcher(ds, BatcherOptions{BatchSize: 32, Shuffle: true, Seed: 9})
	if err != nil {
		t.Fatalf("NewBatcher error: %v", err)
	}
	a := first.Next()
	b := second.Next()
	for i := range a.Targets {
		if a.Targets[i] != b.Targets[i] {
			t.Fatalf("same seed produced different order at %d", i)
		}
	}
}

func TestBatcherEmptyDataset(t *testing.T) {
	if _, err := NewBatcher(&Dataset{}, BatcherOptions{}); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}
