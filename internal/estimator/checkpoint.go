package estimator

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"abalone-estimator/internal/nn"
)

const checkpointName = "checkpoint.gob"

var errNoCheckpoint = errors.New("estimator: no checkpoint")

type checkpointParam struct {
	Rows int
	Cols int
	Data []float64
}

// save writes the network's parameters to <dir>/checkpoint.gob, via a temp
// file and rename so a failed write never leaves a corrupt checkpoint.
func save(dir string, net *nn.Network) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	var params []checkpointParam
	for _, p := range net.Params() {
		r, c := p.Dims()
		data := make([]float64, len(p.RawMatrix().Data))
		copy(data, p.RawMatrix().Data)
		params = append(params, checkpointParam{Rows: r, Cols: c, Data: data})
	}

	tmp, err := os.CreateTemp(dir, checkpointName+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(params); err != nil {
		tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(dir, checkpointName))
}

// restore loads parameters from <dir>/checkpoint.gob into net. Returns
// errNoCheckpoint when the file does not exist.
func restore(dir string, net *nn.Network) error {
	f, err := os.Open(filepath.Join(dir, checkpointName))
	if os.IsNotExist(err) {
		return errNoCheckpoint
	}
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	var params []checkpointParam
	if err := gob.NewDecoder(f).Decode(&params); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	targets := net.Params()
	if len(params) != len(targets) {
		return fmt.Errorf("checkpoint has %d tensors, network has %d", len(params), len(targets))
	}
	for i, p := range params {
		r, c := targets[i].Dims()
		if p.Rows != r || p.Cols != c {
			return fmt.Errorf("tensor %d: checkpoint shape (%d, %d), network shape (%d, %d)",
				i, p.Rows, p.Cols, r, c)
		}
		targets[i].Copy(mat.NewDense(p.Rows, p.Cols, p.Data))
	}
	return nil
}
