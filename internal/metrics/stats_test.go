package metrics

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(64, 20*time.Millisecond, 10*time.Millisecond, 1.2)
	w.Record(64, 10*time.Millisecond, 20*time.Millisecond, 0.8)
	snap := w.Snapshot()
	if math.Abs(snap.RowsPerSec-2133.3333) > 1 {
		t.Fatalf("unexpected throughput %.2f", snap.RowsPerSec)
	}
	if w.rows != 0 || w.steps != 0 {
		t.Fatalf("window was not reset")
	}
	if snap.LastLoss != 0.8 {
		t.Fatalf("expected last loss 0.8, got %.2f", snap.LastLoss)
	}
}

func TestRMSE(t *testing.T) {
	var r RMSE
	r.Update([]float64{2, 4}, []float64{1, 2})
	r.Update([]float64{3}, []float64{3})
	// errors 1, 2, 0 -> mean sq = 5/3
	want := math.Sqrt(5.0 / 3.0)
	if got := r.Result(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("RMSE = %g, want %g", got, want)
	}
	if math.IsNaN(r.Result()) || r.Result() < 0 {
		t.Fatalf("RMSE must be finite and non-negative")
	}
	r.Reset()
	if r.Result() != 0 {
		t.Fatalf("expected zero after reset, got %g", r.Result())
	}
}

func TestRMSEEmpty(t *testing.T) {
	var r RMSE
	if r.Result() != 0 {
		t.Fatalf("empty accumulator should report 0, got %g", r.Result())
	}
}
