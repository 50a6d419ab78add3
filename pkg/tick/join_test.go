package tick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stdtick/pkg/tick"
)

func TestJoinByTime(t *testing.T) {
	orders := []tick.StandardTick{
		{BidUniqueID: 1, OrderType: tick.Limit, Time: "20240105093000000"},
		{BidUniqueID: 2, OrderType: tick.Limit, Time: "20240105093000500"},
	}
	trades := []tick.StandardTick{
		{BidUniqueID: 1, OrderType: tick.Trade, Time: "20240105093000200"},
	}

	joined := tick.Join(orders, trades, false)

	assert.Len(t, joined, 3)
	assert.Equal(t, tick.Limit, joined[0].OrderType)
	assert.Equal(t, tick.Trade, joined[1].OrderType)
	assert.Equal(t, tick.Limit, joined[2].OrderType)
	assert.Equal(t, int64(2), joined[2].BidUniqueID)
}

func TestJoinStableOnTies(t *testing.T) {
	// Equal keys keep concatenation order: orders before trades.
	orders := []tick.StandardTick{
		{BidUniqueID: 1, OrderType: tick.Limit, Time: "20240105093000000"},
		{BidUniqueID: 2, OrderType: tick.Cancel, Time: "20240105093000000"},
	}
	trades := []tick.StandardTick{
		{BidUniqueID: 1, OrderType: tick.Trade, Time: "20240105093000000"},
	}

	joined := tick.Join(orders, trades, false)

	assert.Equal(t, tick.Limit, joined[0].OrderType)
	assert.Equal(t, tick.Cancel, joined[1].OrderType)
	assert.Equal(t, tick.Trade, joined[2].OrderType)
}

func TestJoinByIndex(t *testing.T) {
	// The feed index is authoritative over time, which may tie.
	orders := []tick.StandardTick{
		{Index: 10, OrderType: tick.Limit, Time: "20240105093000000"},
		{Index: 14, OrderType: tick.Cancel, Time: "20240105093000000"},
	}
	trades := []tick.StandardTick{
		{Index: 12, OrderType: tick.Trade, Time: "20240105093000000"},
	}

	joined := tick.Join(orders, trades, true)

	assert.Equal(t, []int64{10, 12, 14}, []int64{joined[0].Index, joined[1].Index, joined[2].Index})
	assert.Equal(t, tick.Trade, joined[1].OrderType)
}
