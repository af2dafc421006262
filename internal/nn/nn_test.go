package nn

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func buildNet(t *testing.T, seed int64) *Network {
	t.Helper()
	net := NewNetwork().
		AddLayer(Dense(4).WithActivation(ReLU()).WithInitializer(GlorotUniform()).Build()).
		AddLayer(Dense(1).WithActivation(Identity()).WithInitializer(GlorotUniform()).Build())
	if err := net.Build(2, seed); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return net
}

func TestForwardShape(t *testing.T) {
	net := buildNet(t, 1)
	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	out, err := net.Forward(x)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	rows, cols := out.Dims()
	if rows != 3 || cols != 1 {
		t.Fatalf("output shape (%d, %d), want (3, 1)", rows, cols)
	}
}

func TestDenseIdentityIsAffine(t *testing.T) {
	layer := Dense(2).WithActivation(Identity()).WithInitializer(GlorotUniform()).Build()
	net := NewNetwork().AddLayer(layer)
	if err := net.Build(2, 5); err != nil {
		t.Fatalf("Build error: %v", err)
	}

	d := layer.(*DenseLayer)
	d.weights.Set(0, 0, 1)
	d.weights.Set(0, 1, 2)
	d.weights.Set(1, 0, 3)
	d.weights.Set(1, 1, 4)
	d.bias.Set(0, 0, 0.5)
	d.bias.Set(0, 1, -0.5)

	x := mat.NewDense(1, 2, []float64{1, 1})
	out, err := net.Forward(x)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	if got := out.At(0, 0); math.Abs(got-4.5) > 1e-12 {
		t.Fatalf("out[0] = %g, want 4.5", got)
	}
	if got := out.At(0, 1); math.Abs(got-5.5) > 1e-12 {
		t.Fatalf("out[1] = %g, want 5.5", got)
	}
}

func TestSeededInitIsDeterministic(t *testing.T) {
	a := buildNet(t, 42)
	b := buildNet(t, 42)
	pa, pb := a.Params(), b.Params()
	if len(pa) != len(pb) {
		t.Fatalf("param count mismatch: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if !mat.EqualApprox(pa[i], pb[i], 0) {
			t.Fatalf("param %d differs between identically seeded networks", i)
		}
	}
}

func TestSGDStepsReduceMSE(t *testing.T) {
	net := buildNet(t, 7)
	opt := SGD(0.05)
	loss := MSE()

	x := mat.NewDense(4, 2, []float64{
		0.1, 0.9,
		0.8, 0.2,
		0.5, 0.5,
		0.9, 0.1,
	})
	targets := []float64{1.0, 0.2, 0.6, 0.1}

	pred, err := net.Forward(x)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	before := loss.Compute(pred, targets)

	for step := 0; step < 50; step++ {
		pred, err = net.Forward(x)
		if err != nil {
			t.Fatalf("Forward error: %v", err)
		}
		if err := net.Backward(loss.Gradient(pred, targets)); err != nil {
			t.Fatalf("Backward error: %v", err)
		}
		opt.Step(net.Params(), net.Grads())
	}

	pred, err = net.Forward(x)
	if err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	after := loss.Compute(pred, targets)
	if after >= before {
		t.Fatalf("expected loss to decrease; before=%f after=%f", before, after)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name  string
		layer Layer
	}{
		{"missing activation", Dense(4).WithInitializer(GlorotUniform()).Build()},
		{"missing initializer", Dense(4).WithActivation(ReLU()).Build()},
		{"zero units", Dense(0).WithActivation(ReLU()).WithInitializer(GlorotUniform()).Build()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			net := NewNetwork().AddLayer(tc.layer)
			if err := net.Build(2, 1); err == nil {
				t.Fatal("expected build error, got nil")
			}
		})
	}
}

func TestForwardDimensionMismatch(t *testing.T) {
	net := buildNet(t, 3)
	x := mat.NewDense(1, 5, nil)
	if _, err := net.Forward(x); err == nil {
		t.Fatal("expected dimension error, got nil")
	}
}
