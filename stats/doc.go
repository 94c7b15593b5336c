// Package stats provides summary statistics and autocorrelation
// diagnostics for reading tables and sample splits.
//
// # Summaries
//
// Summarize skips missing readings:
//
//	s, err := stats.Summarize(table.Node(0).Values)
//	fmt.Printf("min=%.2f max=%.2f missing=%d\n", s.Min, s.Max, s.Missing)
//
// # Autocorrelation
//
// ACF fills missing readings forward before computing:
//
//	acf := stats.ACFWithConfidence(table.Node(0), 28)
//	daily := acf.At(4) // four readings a day
//	lags := stats.SignificantLags(acf.Values, acf.ConfBounds)
package stats
