package tick

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Price and quantity divisors are fixed per exchange and vintage.
// They are protocol constants, never inferred from the data.
var (
	// Raw price = actual price × 10^exp.
	priceExp = map[Exchange]map[Vintage]int32{
		SSE:  {Historical: 4, Raw: 3},
		SZSE: {Historical: 4, Raw: 4},
	}

	// Raw quantity = canonical lot count × divisor.
	quantityDiv = map[Exchange]map[Vintage]int64{
		SSE:  {Historical: 1, Raw: 1000},
		SZSE: {Historical: 1, Raw: 100},
	}
)

// Price rescales an exchange-scaled integer price to currency units.
// The shift is exact, no float rounding is involved.
func Price(ex Exchange, v Vintage, raw int64) decimal.Decimal {
	return decimal.New(raw, -priceExp[ex][v])
}

// Quantity rescales a raw quantity to the canonical lot count.
// Division truncates toward zero, fractional remainders are discarded.
func Quantity(ex Exchange, v Vintage, raw int64) int64 {
	return raw / quantityDiv[ex][v]
}

// HistTime joins the natural date with the time-of-day digits.
// The export prints HHMMSSmmm without a leading zero, so an 8-digit value
// means the leading digit was dropped and is restored here.
func HistTime(date, timeOfDay int64) string {
	t := strconv.FormatInt(timeOfDay, 10)
	if len(t) == 8 {
		t = "0" + t
	}
	return strconv.FormatInt(date, 10) + t
}

// RawTime joins raw-feed year/month/day components with an 8-digit
// zero-padded time-of-day.
func RawTime(year, month, day, timeOfDay int64) string {
	return fmt.Sprintf("%d%02d%02d%08d", year, month, day, timeOfDay)
}
