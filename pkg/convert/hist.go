package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"stdtick/pkg/config"
	"stdtick/pkg/csvio"
	"stdtick/pkg/tick"
)

// Historical per-symbol export layout: one folder per symbol holding the
// order file and the trade file, GBK-encoded with Chinese headers.
const (
	histOrderFile = "逐笔委托.csv"
	histTradeFile = "逐笔成交.csv"
)

// Historical export column names.
const (
	colSymbol     = "交易所代码"
	colDate       = "自然日"
	colTime       = "时间"
	colSeqNum     = "交易所委托号"
	colOrderType  = "委托类型"
	colSide       = "委托代码"
	colOrderPrice = "委托价格"
	colOrderQty   = "委托数量"
	colTradeNo    = "成交编号"
	colTradeType  = "成交代码"
	colTradePrice = "成交价格"
	colTradeQty   = "成交数量"
	colAskSeq     = "叫卖序号"
	colBidSeq     = "叫买序号"
)

// minRows is the row-count floor below which a file is a header-only export.
const minRows = 2

// ConvertHistorical converts every symbol folder under inputDir and writes
// one <symbol>-std-tick.csv per symbol into outputDir.
//
// Symbols are independent, so they are scattered over a bounded worker pool
// and their outcomes gathered into the summary. A failed symbol never aborts
// the others.
func ConvertHistorical(inputDir, outputDir string, skipConverted bool) (sum Summary, err error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrInputMissing, inputDir)
		return
	}

	err = os.MkdirAll(outputDir, 0755)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrOutputWrite, err)
		return
	}

	pool, err := ants.NewPool(poolSize())
	if err != nil {
		return
	}
	defer pool.Release()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		symbol := entry.Name()

		wg.Add(1)
		serr := pool.Submit(func() {
			defer wg.Done()
			o := convertSymbol(inputDir, symbol, outputDir, skipConverted)
			mu.Lock()
			sum.Add(o)
			mu.Unlock()
		})
		if serr != nil {
			wg.Done()
			mu.Lock()
			sum.Add(Outcome{Unit: symbol, Status: BadData, Err: serr})
			mu.Unlock()
		}
	}

	wg.Wait()

	return
}

func poolSize() int {
	if config.Shared != nil && config.Shared.Workers > 0 {
		return config.Shared.Workers
	}
	return runtime.NumCPU()
}

// convertSymbol runs one symbol folder and classifies its outcome.
func convertSymbol(inputDir, symbol, outputDir string, skipConverted bool) (o Outcome) {
	o.Unit = symbol

	outPath := filepath.Join(outputDir, symbol+"-std-tick.csv")
	if skipConverted {
		if _, err := os.Stat(outPath); err == nil {
			logger.Infof("skipping converted symbol %s", symbol)
			o.Status = NoData
			return
		}
	}

	err := doConvertSymbol(filepath.Join(inputDir, symbol), symbol, outPath)
	o.Status = classify(err)
	o.Err = err

	switch o.Status {
	case Converted:
		logger.Infof("saved %s's std tick in file %s", symbol, outPath)
	case NoData:
		logger.Warningf("no data for symbol %s, skipped: %s", symbol, err)
	case BadData:
		logger.Errorf("failed to convert symbol %s: %s", symbol, err)
	}

	return
}

func doConvertSymbol(symbolDir, symbol, outPath string) (err error) {
	ex, err := tick.ExchangeOf(symbol)
	if err != nil {
		return
	}

	logger.Infof("loading %s's data from folder %s", symbol, symbolDir)

	orders, err := loadHistOrders(symbolDir, ex)
	if err != nil {
		return
	}
	trades, err := loadHistTrades(symbolDir, ex)
	if err != nil {
		return
	}

	joined := tick.Join(orders, trades, false)

	err = writeStdTicks(outPath, joined, false)

	return
}

// loadHistTable opens one historical CSV and applies the small-table guard.
func loadHistTable(path string) (tbl *csvio.Table, err error) {
	if _, serr := os.Stat(path); os.IsNotExist(serr) {
		err = fmt.Errorf("%w: %s", ErrInputMissing, path)
		return
	}

	tbl, err = csvio.ReadFile(path, true)
	if err != nil {
		err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
		return
	}

	if tbl.Len() <= minRows {
		err = fmt.Errorf("%w: %s has %d rows", ErrInputEmpty, path, tbl.Len())
	}

	return
}

func loadHistOrders(symbolDir string, ex tick.Exchange) (ticks []tick.StandardTick, err error) {
	path := filepath.Join(symbolDir, histOrderFile)
	tbl, err := loadHistTable(path)
	if err != nil {
		return
	}

	cols, err := histCols(tbl, colSymbol, colDate, colTime, colSeqNum, colOrderType, colSide, colOrderPrice, colOrderQty)
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		side := tick.SideFromBS(tbl.Cell(row, cols[colSide]))
		if side == tick.SideUnknown {
			continue
		}

		orderType, ok := tick.MapOrderType(ex, tick.Historical, tick.OrderFeed, tbl.Cell(row, cols[colOrderType]))
		if !ok {
			continue
		}

		var t tick.StandardTick
		t.OrderType = orderType

		t, err = fillHistCommon(t, tbl, row, cols, ex, colOrderPrice, colOrderQty)
		if err != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
			return
		}

		seq, perr := csvio.ParseInt(tbl.Cell(row, cols[colSeqNum]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}
		t.AskUniqueID, t.BidUniqueID = tick.SideIDs(side, seq)

		ticks = append(ticks, t)
	}

	return
}

func loadHistTrades(symbolDir string, ex tick.Exchange) (ticks []tick.StandardTick, err error) {
	path := filepath.Join(symbolDir, histTradeFile)
	tbl, err := loadHistTable(path)
	if err != nil {
		return
	}

	names := []string{colSymbol, colDate, colTime, colTradeNo, colTradePrice, colTradeQty, colAskSeq, colBidSeq}
	if ex == tick.SZSE {
		names = append(names, colTradeType)
	}
	cols, err := histCols(tbl, names...)
	if err != nil {
		return
	}

	for _, row := range tbl.Rows() {
		// A zero trade number marks a filler row, not a real trade.
		tradeNo, perr := csvio.ParseInt(tbl.Cell(row, cols[colTradeNo]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}
		if tradeNo == 0 {
			continue
		}

		var t tick.StandardTick
		t.OrderType = tick.Trade
		if ex == tick.SZSE {
			// SZSE publishes cancels in the trade feed.
			orderType, ok := tick.MapOrderType(ex, tick.Historical, tick.TradeFeed, tbl.Cell(row, cols[colTradeType]))
			if !ok {
				continue
			}
			t.OrderType = orderType
		}

		t, err = fillHistCommon(t, tbl, row, cols, ex, colTradePrice, colTradeQty)
		if err != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, err)
			return
		}

		t.AskUniqueID, perr = csvio.ParseInt(tbl.Cell(row, cols[colAskSeq]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}
		t.BidUniqueID, perr = csvio.ParseInt(tbl.Cell(row, cols[colBidSeq]))
		if perr != nil {
			err = fmt.Errorf("%w: %s: %s", ErrInputMalformed, path, perr)
			return
		}

		ticks = append(ticks, t)
	}

	return
}

// fillHistCommon parses the fields shared by order and trade rows: symbol,
// price, quantity and the composite time key.
func fillHistCommon(t tick.StandardTick, tbl *csvio.Table, row []string, cols map[string]int, ex tick.Exchange, priceCol, qtyCol string) (tick.StandardTick, error) {
	symID, err := csvio.ParseInt(tbl.Cell(row, cols[colSymbol]))
	if err != nil {
		return t, err
	}
	t.Symbol = tick.PadSymbol(symID)

	rawPrice, err := csvio.ParseInt(tbl.Cell(row, cols[priceCol]))
	if err != nil {
		return t, err
	}
	t.Price = tick.Price(ex, tick.Historical, rawPrice)

	rawQty, err := csvio.ParseInt(tbl.Cell(row, cols[qtyCol]))
	if err != nil {
		return t, err
	}
	t.Quantity = tick.Quantity(ex, tick.Historical, rawQty)

	date, err := csvio.ParseInt(tbl.Cell(row, cols[colDate]))
	if err != nil {
		return t, err
	}
	timeOfDay, err := csvio.ParseInt(tbl.Cell(row, cols[colTime]))
	if err != nil {
		return t, err
	}
	t.Time = tick.HistTime(date, timeOfDay)

	return t, nil
}

// histCols resolves required columns, any missing one is malformed input.
func histCols(tbl *csvio.Table, names ...string) (cols map[string]int, err error) {
	cols = make(map[string]int, len(names))
	for _, name := range names {
		idx, cerr := tbl.Col(name)
		if cerr != nil {
			err = fmt.Errorf("%w: %s", ErrInputMalformed, cerr)
			return
		}
		cols[name] = idx
	}
	return
}
