package nn

import "gonum.org/v1/gonum/mat"

// Loss computes a scalar loss and its gradient w.r.t. predictions.
// Predictions are a (batch x 1) matrix, targets a vector of length batch.
type Loss interface {
	Compute(pred *mat.Dense, targets []float64) float64
	Gradient(pred *mat.Dense, targets []float64) *mat.Dense
	Name() string
}

// MSELoss is mean squared error with mean reduction over the batch.
type MSELoss struct{}

// MSE returns the mean squared error loss.
func MSE() Loss { return MSELoss{} }

func (MSELoss) Compute(pred *mat.Dense, targets []float64) float64 {
	n := len(targets)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		diff := pred.At(i, 0) - targets[i]
		sum += diff * diff
	}
	return sum / float64(n)
}

func (MSELoss) Gradient(pred *mat.Dense, targets []float64) *mat.Dense {
	n := len(targets)
	grad := mat.NewDense(n, 1, nil)
	scale := 2.0 / float64(n)
	for i := 0; i < n; i++ {
		grad.Set(i, 0, scale*(pred.At(i, 0)-targets[i]))
	}
	return grad
}

func (MSELoss) Name() string { return "mse" }
