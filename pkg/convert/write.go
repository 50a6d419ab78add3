package convert

import (
	"fmt"
	"strconv"

	"stdtick/pkg/csvio"
	"stdtick/pkg/tick"
)

// Standard tick field order is fixed. The raw path prepends the feed index.
var stdHeader = []string{"symbol", "ask_unique_id", "bid_unique_id", "order_type", "price", "quantity", "time"}

// writeStdTicks persists one symbol's joined stream, written once.
func writeStdTicks(path string, ticks []tick.StandardTick, withIndex bool) (err error) {
	header := stdHeader
	if withIndex {
		header = append([]string{"index"}, stdHeader...)
	}

	rows := make([][]string, 0, len(ticks))
	for _, t := range ticks {
		row := []string{
			t.Symbol,
			strconv.FormatInt(t.AskUniqueID, 10),
			strconv.FormatInt(t.BidUniqueID, 10),
			string(t.OrderType),
			t.Price.String(),
			strconv.FormatInt(t.Quantity, 10),
			t.Time,
		}
		if withIndex {
			row = append([]string{strconv.FormatInt(t.Index, 10)}, row...)
		}
		rows = append(rows, row)
	}

	err = csvio.WriteFile(path, header, rows)
	if err != nil {
		err = fmt.Errorf("%w: %s: %s", ErrOutputWrite, path, err)
	}

	return
}
