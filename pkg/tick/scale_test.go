package tick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stdtick/pkg/tick"
)

func TestPrice(t *testing.T) {
	assert.Equal(t, "10", tick.Price(tick.SSE, tick.Historical, 100000).String())
	assert.Equal(t, "10", tick.Price(tick.SZSE, tick.Historical, 100000).String())
	assert.Equal(t, "10", tick.Price(tick.SSE, tick.Raw, 10000).String())
	assert.Equal(t, "12.345", tick.Price(tick.SZSE, tick.Raw, 123450).String())
	assert.Equal(t, "0", tick.Price(tick.SZSE, tick.Raw, 0).String())
}

func TestQuantity(t *testing.T) {
	// Historical feeds carry native share counts.
	assert.Equal(t, int64(100), tick.Quantity(tick.SSE, tick.Historical, 100))
	assert.Equal(t, int64(100), tick.Quantity(tick.SZSE, tick.Historical, 100))

	// Raw feed quantities rescale with truncation toward zero.
	assert.Equal(t, int64(2), tick.Quantity(tick.SSE, tick.Raw, 2000))
	assert.Equal(t, int64(1), tick.Quantity(tick.SSE, tick.Raw, 1999))
	assert.Equal(t, int64(3), tick.Quantity(tick.SZSE, tick.Raw, 300))
	assert.Equal(t, int64(1), tick.Quantity(tick.SZSE, tick.Raw, 199))
}

func TestHistTime(t *testing.T) {
	// An 8-digit time-of-day lost its leading zero.
	assert.Equal(t, "20240105093000120", tick.HistTime(20240105, 93000120))
	// A 9-digit one is taken as printed.
	assert.Equal(t, "20240105103000120", tick.HistTime(20240105, 103000120))
}

func TestRawTime(t *testing.T) {
	assert.Equal(t, "2024010593000010", tick.RawTime(2024, 1, 5, 93000010))
	assert.Equal(t, "2024121000000123", tick.RawTime(2024, 12, 10, 123))
}
