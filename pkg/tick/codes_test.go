package tick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stdtick/pkg/tick"
)

func TestMapOrderType(t *testing.T) {
	cases := []struct {
		ex   tick.Exchange
		v    tick.Vintage
		f    tick.Feed
		code string
		want tick.OrderType
	}{
		{tick.SSE, tick.Historical, tick.OrderFeed, "A", tick.Limit},
		{tick.SSE, tick.Historical, tick.OrderFeed, "D", tick.Cancel},
		{tick.SZSE, tick.Historical, tick.OrderFeed, "0", tick.Limit},
		{tick.SZSE, tick.Historical, tick.OrderFeed, "1", tick.MarketOpposite},
		{tick.SZSE, tick.Historical, tick.OrderFeed, "U", tick.MarketOwn},
		{tick.SZSE, tick.Historical, tick.TradeFeed, "0", tick.Trade},
		{tick.SZSE, tick.Historical, tick.TradeFeed, "C", tick.Cancel},
		{tick.SSE, tick.Raw, tick.MergedFeed, "A", tick.Limit},
		{tick.SSE, tick.Raw, tick.MergedFeed, "D", tick.Cancel},
		{tick.SSE, tick.Raw, tick.MergedFeed, "T", tick.Trade},
		{tick.SZSE, tick.Raw, tick.OrderFeed, "2", tick.Limit},
		{tick.SZSE, tick.Raw, tick.OrderFeed, "1", tick.MarketOpposite},
		{tick.SZSE, tick.Raw, tick.OrderFeed, "U", tick.MarketOwn},
		{tick.SZSE, tick.Raw, tick.TradeFeed, "F", tick.Trade},
		{tick.SZSE, tick.Raw, tick.TradeFeed, "4", tick.Cancel},
	}

	for _, c := range cases {
		got, ok := tick.MapOrderType(c.ex, c.v, c.f, c.code)
		assert.True(t, ok, "code %s", c.code)
		assert.Equal(t, c.want, got)
	}
}

func TestMapOrderTypeUnmapped(t *testing.T) {
	_, ok := tick.MapOrderType(tick.SSE, tick.Historical, tick.OrderFeed, "T")
	assert.False(t, ok)

	// The SZSE historical order feed has no cancel entry, cancels arrive
	// through the trade feed only.
	_, ok = tick.MapOrderType(tick.SZSE, tick.Historical, tick.OrderFeed, "D")
	assert.False(t, ok)
	_, ok = tick.MapOrderType(tick.SZSE, tick.Historical, tick.OrderFeed, "C")
	assert.False(t, ok)

	_, ok = tick.MapOrderType(tick.SSE, tick.Historical, tick.TradeFeed, "A")
	assert.False(t, ok)
}

func TestSideIDs(t *testing.T) {
	ask, bid := tick.SideIDs(tick.Sell, 42)
	assert.Equal(t, int64(42), ask)
	assert.Equal(t, int64(0), bid)

	ask, bid = tick.SideIDs(tick.Buy, 42)
	assert.Equal(t, int64(0), ask)
	assert.Equal(t, int64(42), bid)

	ask, bid = tick.SideIDs(tick.SideUnknown, 42)
	assert.Equal(t, int64(0), ask)
	assert.Equal(t, int64(0), bid)
}

func TestExchangeOf(t *testing.T) {
	ex, err := tick.ExchangeOf("600000.SH")
	assert.Nil(t, err)
	assert.Equal(t, tick.SSE, ex)

	ex, err = tick.ExchangeOf("000001.SZ")
	assert.Nil(t, err)
	assert.Equal(t, tick.SZSE, ex)

	_, err = tick.ExchangeOf("600000.XX")
	assert.ErrorIs(t, err, tick.ErrUnknownExchange)
}

func TestPadSymbol(t *testing.T) {
	assert.Equal(t, "000001", tick.PadSymbol(1))
	assert.Equal(t, "600000", tick.PadSymbol(600000))
}

func TestExcludedClass(t *testing.T) {
	assert.True(t, tick.ExcludedClass("159915"))
	assert.True(t, tick.ExcludedClass("204001"))
	assert.True(t, tick.ExcludedClass("510050"))
	assert.False(t, tick.ExcludedClass("600000"))
	assert.False(t, tick.ExcludedClass("000001"))
	assert.False(t, tick.ExcludedClass("300750"))
}
