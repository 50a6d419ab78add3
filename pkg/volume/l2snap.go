package volume

import (
	"sort"
	"strconv"
	"strings"

	"stdtick/pkg/csvio"
	"stdtick/pkg/tick"
)

// The snapshot volume field is cumulative-to-date, so multiple rows per
// symbol reduce by max, not sum. Snapshot volume is share-scaled per
// exchange: SSE × 1000, SZSE × 100.
const (
	sseSnapDiv  = 1000
	szseSnapDiv = 100
)

// FromL2Snapshots aggregates traded volume per symbol from both exchanges'
// L2 snapshot files and writes one symbol/quantity CSV, equity classes only.
func FromL2Snapshots(sseFile, szseFile, outputFile string) (err error) {
	logger.Infof("loading sse l2 snap file: %s", sseFile)
	sse, err := snapMax(sseFile, "symbol_id", "trade_volume")
	if err != nil {
		return
	}

	logger.Infof("loading szse l2 snap file: %s", szseFile)
	szse, err := snapMax(szseFile, "symbol", "total_quantity_trade")
	if err != nil {
		return
	}

	totals := map[string]int64{}
	for symbol, qty := range sse {
		totals[padSnapSymbol(symbol)] = qty / sseSnapDiv
	}
	for symbol, qty := range szse {
		totals[padSnapSymbol(symbol)] = qty / szseSnapDiv
	}

	symbols := make([]string, 0, len(totals))
	for symbol := range totals {
		if tick.ExcludedClass(symbol) {
			continue
		}
		if totals[symbol] <= 0 {
			continue
		}
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	rows := make([][]string, 0, len(symbols))
	for _, symbol := range symbols {
		rows = append(rows, []string{symbol, strconv.FormatInt(totals[symbol], 10)})
	}

	err = csvio.WriteFile(outputFile, []string{"symbol", "quantity"}, rows)

	return
}

// snapMax reduces one snapshot file to the maximum cumulative volume seen
// per symbol.
func snapMax(path, symbolCol, volumeCol string) (totals map[string]int64, err error) {
	tbl, err := csvio.ReadFile(path, false)
	if err != nil {
		return
	}

	symIdx, err := tbl.Col(symbolCol)
	if err != nil {
		return
	}
	volIdx, err := tbl.Col(volumeCol)
	if err != nil {
		return
	}

	totals = map[string]int64{}
	for _, row := range tbl.Rows() {
		symbol := tbl.Cell(row, symIdx)
		qty, perr := csvio.ParseInt(tbl.Cell(row, volIdx))
		if perr != nil {
			err = perr
			return
		}
		if qty > totals[symbol] {
			totals[symbol] = qty
		}
	}

	return
}

// padSnapSymbol zero-pads symbols that snapshots store as bare integers.
func padSnapSymbol(s string) string {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tick.PadSymbol(v)
	}
	if len(s) < 6 {
		return strings.Repeat("0", 6-len(s)) + s
	}
	return s
}
