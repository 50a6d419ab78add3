// Package volume cross-checks total traded quantity per symbol between
// independent sources: the converted standard ticks, the exchanges' L2
// snapshots and the reference data warehouse. Reconciliation validates the
// conversion, it is not part of the conversion's success contract.
package volume

import (
	"fmt"

	"stdtick/pkg/csvio"
	"stdtick/pkg/xlog"
)

var logger = xlog.GetLogger()

// Diff is one symbol whose source quantity strictly exceeds the target's.
// Only that direction is actionable: ticks claiming more volume than the
// reference means the conversion invented or double-counted trades.
type Diff struct {
	Symbol     string
	Source     int64
	Target     int64
	Difference int64
}

type pair struct {
	Symbol   string
	Quantity int64
}

// Check joins two symbol/quantity CSVs on symbol and keeps the symbols where
// source is greater than target, in source file order.
func Check(sourceFile, targetFile string) (diffs []Diff, err error) {
	source, err := readPairs(sourceFile)
	if err != nil {
		return
	}
	target, err := readPairs(targetFile)
	if err != nil {
		return
	}

	targetBySymbol := make(map[string]int64, len(target))
	for _, p := range target {
		targetBySymbol[p.Symbol] = p.Quantity
	}

	for _, p := range source {
		tq, ok := targetBySymbol[p.Symbol]
		if !ok {
			continue
		}
		if p.Quantity > tq {
			diffs = append(diffs, Diff{
				Symbol:     p.Symbol,
				Source:     p.Quantity,
				Target:     tq,
				Difference: p.Quantity - tq,
			})
		}
	}

	return
}

// readPairs reads the first two columns of a CSV as symbol and quantity,
// whatever the file calls them.
func readPairs(path string) (pairs []pair, err error) {
	tbl, err := csvio.ReadFile(path, false)
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		if len(row) < 2 {
			err = fmt.Errorf("row with %d columns in %s", len(row), path)
			return
		}

		qty, perr := csvio.ParseInt(row[1])
		if perr != nil {
			err = fmt.Errorf("bad quantity in %s: %s", path, perr)
			return
		}

		pairs = append(pairs, pair{Symbol: row[0], Quantity: qty})
	}

	return
}
