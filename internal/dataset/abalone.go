package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NumFeatures is the number of physical measurements per abalone record.
const NumFeatures = 7

// Dataset holds one abalone CSV fully in memory: a (records x NumFeatures)
// feature matrix and a target vector of ring counts. Immutable after Load.
type Dataset struct {
	Features *mat.Dense
	Targets  []float64
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil || d.Features == nil {
		return 0
	}
	r, _ := d.Features.Dims()
	return r
}

// Load parses an abalone CSV from path. Each row carries NumFeatures float
// columns followed by one integer target column; rows with only the feature
// columns get a zero target (the predict file ignores targets in effect).
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

func parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		features []float64
		targets  []float64
	)
	row := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		if len(record) != NumFeatures && len(record) != NumFeatures+1 {
			return nil, fmt.Errorf("row %d: expected %d or %d columns, got %d",
				row+1, NumFeatures, NumFeatures+1, len(record))
		}
		for col := 0; col < NumFeatures; col++ {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", row+1, col+1, err)
			}
			features = append(features, v)
		}
		target := 0.0
		if len(record) == NumFeatures+1 {
			v, err := strconv.ParseFloat(record[NumFeatures], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d target: %w", row+1, err)
			}
			target = v
		}
		targets = append(targets, target)
		row++
	}
	if row == 0 {
		return nil, errors.New("dataset is empty")
	}

	return &Dataset{
		Features: mat.NewDense(row, NumFeatures, features),
		Targets:  targets,
	}, nil
}

// Summary reports loggable shape and target statistics for a dataset.
type Summary struct {
	Records    int
	TargetMean float64
	TargetStd  float64
}

// Summarize computes a Summary over ds.
func Summarize(ds *Dataset) Summary {
	mean, std := stat.MeanStdDev(ds.Targets, nil)
	return Summary{
		Records:    ds.Len(),
		TargetMean: mean,
		TargetStd:  std,
	}
}
