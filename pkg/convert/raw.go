package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"stdtick/pkg/csvio"
	"stdtick/pkg/tick"
)

// Bulk raw-feed batch layout: one merged SSE tick file plus separate SZSE
// order and trade files, recorded per exchange for a whole day.
const (
	rawSSETickFile   = "sse-tick.csv"
	rawSZSEOrderFile = "szse-order-tick.csv"
	rawSZSETradeFile = "szse-trade-tick.csv"

	qtyFromStdTicksFile = "quantity_from_std_ticks.csv"
)

// ConvertRaw converts one raw-feed batch folder. The batch is a single unit
// of work: loading and grouping are sequential, only the independent
// per-symbol output writes run on the pool.
func ConvertRaw(inputDir, outputDir string) (sum Summary, err error) {
	o := Outcome{Unit: inputDir}

	cerr := doConvertRaw(inputDir, outputDir)
	o.Status = classify(cerr)
	o.Err = cerr

	switch o.Status {
	case NoData:
		logger.Warningf("no data in %s, skipped: %s", inputDir, cerr)
	case BadData:
		logger.Errorf("failed to convert %s: %s", inputDir, cerr)
	}

	sum.Add(o)

	return
}

func doConvertRaw(inputDir, outputDir string) (err error) {
	fi, serr := os.Stat(inputDir)
	if serr != nil || !fi.IsDir() {
		err = fmt.Errorf("%w: %s", ErrInputMissing, inputDir)
		return
	}

	err = os.MkdirAll(outputDir, 0755)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrOutputWrite, err)
		return
	}

	sseTicks, err := convertRawSSE(filepath.Join(inputDir, rawSSETickFile))
	if err != nil {
		return
	}

	szseTicks, err := convertRawSZSE(
		filepath.Join(inputDir, rawSZSEOrderFile),
		filepath.Join(inputDir, rawSZSETradeFile),
	)
	if err != nil {
		return
	}

	err = writeGrouped(outputDir, sseTicks)
	if err != nil {
		return
	}
	err = writeGrouped(outputDir, szseTicks)
	if err != nil {
		return
	}

	err = writeTradedQuantity(outputDir, sseTicks, szseTicks)

	return
}

// loadRawTable opens one raw CSV and applies the small-table guard.
func loadRawTable(path string) (tbl *csvio.Table, err error) {
	if _, serr := os.Stat(path); os.IsNotExist(serr) {
		err = fmt.Errorf("%w: %s", ErrInputMissing, path)
		return
	}

	tbl, err = csvio.ReadFile(path, false)
	if err != nil {
		err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
		return
	}

	if tbl.Len() <= minRows {
		err = fmt.Errorf("%w: %s has %d rows", ErrInputEmpty, path, tbl.Len())
	}

	return
}

// convertRawSSE maps the merged SSE tick file. Orders and trades share one
// stream already in feed-index order, so no join is needed.
func convertRawSSE(path string) (ticks []tick.StandardTick, err error) {
	logger.Infof("loading sse data from file %s", path)

	tbl, err := loadRawTable(path)
	if err != nil {
		return
	}

	cols, err := histCols(tbl,
		"tick_index", "symbol_id", "sell_order_no", "buy_order_no",
		"tick_type", "order_price", "qty", "tick_time",
		"data_year", "data_month", "data_day",
	)
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		orderType, ok := tick.MapOrderType(tick.SSE, tick.Raw, tick.MergedFeed, tbl.Cell(row, cols["tick_type"]))
		if !ok {
			// Unmapped codes null the order type and the row is dropped.
			continue
		}

		nums, perr := parseCells(tbl, row, cols,
			"tick_index", "sell_order_no", "buy_order_no", "symbol_id",
			"order_price", "qty", "data_year", "data_month", "data_day", "tick_time",
		)
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}

		t := tick.StandardTick{
			Index:       nums["tick_index"],
			Symbol:      tick.PadSymbol(nums["symbol_id"]),
			AskUniqueID: nums["sell_order_no"],
			BidUniqueID: nums["buy_order_no"],
			OrderType:   orderType,
			Price:       tick.Price(tick.SSE, tick.Raw, nums["order_price"]),
			Quantity:    tick.Quantity(tick.SSE, tick.Raw, nums["qty"]),
			Time:        tick.RawTime(nums["data_year"], nums["data_month"], nums["data_day"], nums["tick_time"]),
		}

		ticks = append(ticks, t)
	}

	return
}

func convertRawSZSE(orderPath, tradePath string) (ticks []tick.StandardTick, err error) {
	logger.Infof("loading szse order data from file %s", orderPath)
	orders, err := convertRawSZSEOrders(orderPath)
	if err != nil {
		return
	}

	logger.Infof("loading szse trade data from file %s", tradePath)
	trades, err := convertRawSZSETrades(tradePath)
	if err != nil {
		return
	}

	ticks = tick.Join(orders, trades, true)

	return
}

func convertRawSZSEOrders(path string) (ticks []tick.StandardTick, err error) {
	tbl, err := loadRawTable(path)
	if err != nil {
		return
	}

	cols, err := histCols(tbl, "sequence", "symbol", "side", "sequence_num", "order_type", "px", "qty", "quote_update_time")
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		orderType, ok := tick.MapOrderType(tick.SZSE, tick.Raw, tick.OrderFeed, tbl.Cell(row, cols["order_type"]))
		if !ok {
			continue
		}

		sideNum, perr := csvio.ParseInt(tbl.Cell(row, cols["side"]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}
		side := tick.SideFromNum(sideNum)
		if side == tick.SideUnknown {
			continue
		}

		seq, perr := csvio.ParseInt(tbl.Cell(row, cols["sequence_num"]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}

		var t tick.StandardTick
		t.OrderType = orderType
		t.AskUniqueID, t.BidUniqueID = tick.SideIDs(side, seq)

		t, err = fillRawSZSE(t, tbl, row, cols, path, "px", "qty")
		if err != nil {
			return
		}

		ticks = append(ticks, t)
	}

	return
}

func convertRawSZSETrades(path string) (ticks []tick.StandardTick, err error) {
	tbl, err := loadRawTable(path)
	if err != nil {
		return
	}

	cols, err := histCols(tbl, "sequence", "symbol", "ask_app_seq_num", "bid_app_seq_num", "exe_type", "exe_px", "exe_qty", "quote_update_time")
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		orderType, ok := tick.MapOrderType(tick.SZSE, tick.Raw, tick.TradeFeed, tbl.Cell(row, cols["exe_type"]))
		if !ok {
			continue
		}

		var t tick.StandardTick
		t.OrderType = orderType

		var perr error
		t.AskUniqueID, perr = csvio.ParseInt(tbl.Cell(row, cols["ask_app_seq_num"]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}
		t.BidUniqueID, perr = csvio.ParseInt(tbl.Cell(row, cols["bid_app_seq_num"]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}

		t, err = fillRawSZSE(t, tbl, row, cols, path, "exe_px", "exe_qty")
		if err != nil {
			return
		}

		ticks = append(ticks, t)
	}

	return
}

// parseCells parses a set of integer cells by column name.
func parseCells(tbl *csvio.Table, row []string, cols map[string]int, names ...string) (nums map[string]int64, err error) {
	nums = make(map[string]int64, len(names))
	for _, name := range names {
		nums[name], err = csvio.ParseInt(tbl.Cell(row, cols[name]))
		if err != nil {
			return
		}
	}
	return
}

// fillRawSZSE parses the fields shared by SZSE raw order and trade rows.
func fillRawSZSE(t tick.StandardTick, tbl *csvio.Table, row []string, cols map[string]int, path, priceCol, qtyCol string) (tick.StandardTick, error) {
	seq, err := csvio.ParseInt(tbl.Cell(row, cols["sequence"]))
	if err != nil {
		return t, fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
	}
	t.Index = seq

	symID, err := csvio.ParseInt(tbl.Cell(row, cols["symbol"]))
	if err != nil {
		return t, fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
	}
	t.Symbol = tick.PadSymbol(symID)

	rawPrice, err := csvio.ParseInt(tbl.Cell(row, cols[priceCol]))
	if err != nil {
		return t, fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
	}
	t.Price = tick.Price(tick.SZSE, tick.Raw, rawPrice)

	rawQty, err := csvio.ParseInt(tbl.Cell(row, cols[qtyCol]))
	if err != nil {
		return t, fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
	}
	t.Quantity = tick.Quantity(tick.SZSE, tick.Raw, rawQty)

	t.Time = tbl.Cell(row, cols["quote_update_time"])

	return t, nil
}

// writeGrouped splits a converted stream by symbol and writes each symbol's
// file on the pool. Writes target distinct paths, so they are independent.
func writeGrouped(outputDir string, ticks []tick.StandardTick) (err error) {
	groups := map[string][]tick.StandardTick{}
	for _, t := range ticks {
		groups[t.Symbol] = append(groups[t.Symbol], t)
	}

	symbols := make([]string, 0, len(groups))
	for symbol := range groups {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	pool, err := ants.NewPool(poolSize())
	if err != nil {
		return
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	for _, symbol := range symbols {
		group := groups[symbol]
		outPath := filepath.Join(outputDir, symbol+"-std-tick.csv")

		wg.Add(1)
		serr := pool.Submit(func() {
			defer wg.Done()
			werr := writeStdTicks(outPath, group, true)
			if werr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = werr
				}
				mu.Unlock()
				return
			}
			logger.Infof("saved std tick in file %s", outPath)
		})
		if serr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = serr
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	err = firstErr

	return
}

// writeTradedQuantity sums trade quantity per symbol over the converted
// streams, drops the excluded security classes and writes the totals used
// by the volume checker.
func writeTradedQuantity(outputDir string, streams ...[]tick.StandardTick) (err error) {
	totals := map[string]int64{}
	for _, stream := range streams {
		for _, t := range stream {
			if t.OrderType != tick.Trade {
				continue
			}
			totals[t.Symbol] += t.Quantity
		}
	}

	symbols := make([]string, 0, len(totals))
	for symbol := range totals {
		if tick.ExcludedClass(symbol) {
			continue
		}
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	rows := make([][]string, 0, len(symbols))
	for _, symbol := range symbols {
		rows = append(rows, []string{symbol, strconv.FormatInt(totals[symbol], 10)})
	}

	outPath := filepath.Join(outputDir, qtyFromStdTicksFile)
	err = csvio.WriteFile(outPath, []string{"symbol", "quantity"}, rows)
	if err != nil {
		err = fmt.Errorf("%w: %s: %s", ErrOutputWrite, outPath, err)
	}

	return
}
