package metrics

import "math"

// RMSE accumulates squared prediction error across batches and reports
// the root mean squared error.
type RMSE struct {
	sumSq float64
	count int
}

// Update records one batch of predictions against targets. Both slices
// must have the same length.
func (r *RMSE) Update(preds, targets []float64) {
	for i := range preds {
		diff := preds[i] - targets[i]
		r.sumSq += diff * diff
	}
	r.count += len(preds)
}

// Result returns the RMSE over everything recorded so far.
func (r *RMSE) Result() float64 {
	if r.count == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.count))
}

// Reset clears the accumulator.
func (r *RMSE) Reset() {
	r.sumSq = 0
	r.count = 0
}
