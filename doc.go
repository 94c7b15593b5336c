// Package d2stgnn prepares training data for spatio-temporal traffic
// forecasting models such as D2STGNN.
//
// The module turns a table of per-node readings (one timestamp column and
// one column per spatial node) into sliding-window samples, splits them
// chronologically into train, val and test, normalizes the primary channel
// with a scaler fitted on the training inputs only, and writes one .npz
// bundle per split that numpy.load reads directly.
//
// # Features
//
//   - Sliding windows over arbitrary input and output offset sets
//   - Calendar channels: time of day, time slot index and day of week
//   - Chronological 70/10/20 split of the windowed samples
//   - Min-max and standard scalers persisted as JSON
//   - Numpy .npy and .npz reading and writing without cgo
//   - Run manifest and an HTML chart of the split series
//
// # Quick Start
//
// Generate the bundles from the command line:
//
//	gen-training-data --traffic-df-filename=readings.csv \
//	    --output-dir=datasets/CHUNGNAM --seq-length-x=6 --seq-length-y=6
//
// Or from Go:
//
//	table, _ := timeseries.LoadTable("readings.csv", nil)
//	x, y := window.InputOffsets(6), window.OutputOffsets(1, 6)
//	inputs, targets, _ := window.Build(table, x, y, features.DefaultOptions())
//	s, _ := scaler.New(scaler.KindMinMax)
//	p := &dataset.Pipeline{OutputDir: "out", Scaler: s, Compress: true}
//	res, _ := p.Run(inputs, targets, x, y)
//
// # Packages
//
//   - timeseries: reading table, per-node series and CSV loading
//   - tensor: dense N-dimensional float64 arrays
//   - features: calendar channel augmentation
//   - window: offset sets and the window builder
//   - scaler: primary channel normalizers
//   - dataset: split, normalization, bundle writing and manifest
//   - npz: numpy array and archive codec
//   - stats: summary statistics and autocorrelation
//   - cmd/gen-training-data: the command line tool
package d2stgnn
