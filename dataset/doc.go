// Package dataset partitions windowed samples into train, validation and
// test splits, normalizes the primary channel and writes the bundles.
//
// # Splits
//
// Out of n samples, test gets round(0.2n), train round(0.7n) and val the
// remainder. Train is the head of the sample axis, val follows it and test
// is the tail:
//
//	train, val, test := dataset.Sizes(100) // 70, 10, 20
//
// # Pipeline
//
//	p := &dataset.Pipeline{OutputDir: dir, Scaler: s, Compress: true}
//	res, err := p.Run(inputs, targets, xOffsets, yOffsets)
//
// The scaler is fitted once, on channel 0 of the train inputs, and applied
// to channel 0 of the inputs and targets of every split. Values of val and
// test outside the train range are kept as is.
//
// Each split is written to <split>.npz with the entries x, y, x_offsets and
// y_offsets. The offsets are stored as (n, 1) int64 columns. The fitted
// scaler is written last, to scaler.json by default.
package dataset
