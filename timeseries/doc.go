// Package timeseries provides the reading table loaded from disk and the
// per-node series extracted from it.
//
// # Reading Table
//
// A Table is a time index, an ordered list of node names and a
// rows-by-nodes matrix of readings:
//
//	table, err := timeseries.NewTable(index, []string{"n1", "n2"}, rows)
//	fmt.Println(table.Rows(), table.NumNodes())
//
// The index must be strictly increasing. Missing readings are NaN.
//
// # Loading from CSV
//
// The first column (or DateColumn) is the timestamp, every other column is
// one node:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.Location = time.Local
//	table, err := timeseries.LoadTable("readings.csv", opts)
//
// Cells reading "", "NA", "NaN" or "null" are loaded as NaN. Any other
// unparsable cell fails the load.
//
// # Node series
//
//	s := table.Node(0)
//	fmt.Println(s.Name, s.Len(), s.Missing())
package timeseries
