package dataset

import (
	"errors"
	"fmt"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/lucy-seohyun/D2STGNN/npz"
	"github.com/lucy-seohyun/D2STGNN/scaler"
	"github.com/lucy-seohyun/D2STGNN/stats"
	"github.com/lucy-seohyun/D2STGNN/tensor"
	"github.com/lucy-seohyun/D2STGNN/window"
)

// DefaultScalerFile is the file name of the saved scaler.
const DefaultScalerFile = "scaler.json"

// Bundle entry names.
const (
	KeyX        = "x"
	KeyY        = "y"
	KeyXOffsets = "x_offsets"
	KeyYOffsets = "y_offsets"
)

// ErrNoTrainingSamples is returned when a scaler is requested but the train
// split is empty.
var ErrNoTrainingSamples = errors.New("train split has no samples to fit the scaler")

// Pipeline splits windowed samples, normalizes the primary channel and
// writes one bundle per split.
type Pipeline struct {
	// OutputDir receives <split>.npz and the scaler file. It must exist.
	OutputDir string
	// Scaler, when set, is fitted on the train inputs' primary channel and
	// applied to the primary channel of every split.
	Scaler scaler.Scaler
	// ScalerFile is the scaler file name inside OutputDir.
	ScalerFile string
	// Compress deflates bundle entries.
	Compress bool
}

// SplitResult describes one written split.
type SplitResult struct {
	Name    Split         `json:"name"`
	Range   Range         `json:"range"`
	Path    string        `json:"path"`
	XShape  []int         `json:"x_shape"`
	YShape  []int         `json:"y_shape"`
	Primary stats.Summary `json:"primary"`
}

// Result describes a finished run.
type Result struct {
	Splits     []SplitResult `json:"splits"`
	ScalerKind string        `json:"scaler,omitempty"`
	ScalerPath string        `json:"scaler_path,omitempty"`
	// Pairs holds the written arrays, keyed by split.
	Pairs map[Split]Pair `json:"-"`
}

// Run partitions inputs and targets, normalizes and persists them. A
// failure aborts the run; bundles already written are left in place.
func (p *Pipeline) Run(inputs, targets *tensor.Dense, x, y window.Offsets) (*Result, error) {
	pairs, err := SplitSamples(inputs, targets)
	if err != nil {
		return nil, err
	}
	ranges := Ranges(inputs.Len())

	if p.Scaler != nil {
		if err := Normalize(p.Scaler, pairs); err != nil {
			return nil, err
		}
	}

	res := &Result{Pairs: pairs}
	for _, name := range Splits {
		pair := pairs[name]
		klog.InfoS("Split shapes", "split", name, "x", pair.X.Shape(), "y", pair.Y.Shape())

		path := filepath.Join(p.OutputDir, string(name)+".npz")
		if err := WriteBundle(path, pair, x, y, p.Compress); err != nil {
			return nil, fmt.Errorf("write %s bundle: %w", name, err)
		}

		summary, err := stats.Summarize(pair.X.Channel(0))
		if err != nil {
			return nil, err
		}
		res.Splits = append(res.Splits, SplitResult{
			Name:    name,
			Range:   ranges[name],
			Path:    path,
			XShape:  pair.X.Shape(),
			YShape:  pair.Y.Shape(),
			Primary: summary,
		})
	}

	if p.Scaler != nil {
		file := p.ScalerFile
		if file == "" {
			file = DefaultScalerFile
		}
		path := filepath.Join(p.OutputDir, file)
		if err := scaler.Save(path, p.Scaler); err != nil {
			return nil, fmt.Errorf("save scaler: %w", err)
		}
		klog.InfoS("Saved scaler", "kind", p.Scaler.Kind(), "path", path, "params", p.Scaler.Params())
		res.ScalerKind, res.ScalerPath = p.Scaler.Kind(), path
	}

	return res, nil
}

// Normalize fits s on the primary channel of the train inputs and applies
// it to the primary channel of every split's inputs and targets. Other
// channels are left untouched.
func Normalize(s scaler.Scaler, pairs map[Split]Pair) error {
	train, ok := pairs[Train]
	if !ok || train.X.Len() == 0 {
		return ErrNoTrainingSamples
	}
	if err := s.Fit(train.X.Channel(0)); err != nil {
		return fmt.Errorf("fit %s scaler: %w", s.Kind(), err)
	}

	for _, name := range Splits {
		pair, ok := pairs[name]
		if !ok {
			continue
		}
		for _, d := range []*tensor.Dense{pair.X, pair.Y} {
			if d.Size() == 0 {
				continue
			}
			scaled, err := s.Transform(d.Channel(0))
			if err != nil {
				return fmt.Errorf("transform %s: %w", name, err)
			}
			if err := d.SetChannel(0, scaled); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteBundle writes one split with its offsets to path.
func WriteBundle(path string, pair Pair, x, y window.Offsets, compress bool) error {
	w, err := npz.Create(path, compress)
	if err != nil {
		return err
	}

	xOff, xShape := x.Column()
	yOff, yShape := y.Column()
	entries := []struct {
		key string
		arr npz.Array
	}{
		{KeyX, npz.NewFloat64(pair.X.Shape(), pair.X.Data())},
		{KeyY, npz.NewFloat64(pair.Y.Shape(), pair.Y.Data())},
		{KeyXOffsets, npz.NewInt64(xShape, xOff)},
		{KeyYOffsets, npz.NewInt64(yShape, yOff)},
	}
	for _, e := range entries {
		if err := w.Write(e.key, e.arr); err != nil {
			return errors.Join(err, w.Close())
		}
	}
	return w.Close()
}
