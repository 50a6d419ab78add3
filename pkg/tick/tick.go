// Package tick defines the standard tick record and the per-exchange code
// tables and scaling rules used to produce it from raw feed rows.
//
// A standard tick file holds every order and trade event of one symbol for
// one day. Replaying it through a matching engine reproduces the day's
// tick-by-tick book, which is what the volume reconciliation validates.
package tick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderType is the canonical event code of a standard tick.
type OrderType string

const (
	Limit          OrderType = "L" // limit order
	MarketOpposite OrderType = "M" // market order at opposite side's best
	MarketOwn      OrderType = "B" // market order at own side's best
	Cancel         OrderType = "C"
	Trade          OrderType = "T"
)

type Exchange string

const (
	SSE  Exchange = "SSE"
	SZSE Exchange = "SZSE"
)

// Vintage distinguishes the two encodings of the same exchange feed:
// the per-symbol historical export and the bulk raw recorder output.
type Vintage int

const (
	Historical Vintage = iota
	Raw
)

// Side of an order row. Rows with any other side code are discarded.
type Side int

const (
	SideUnknown Side = iota
	Buy
	Sell
)

var ErrUnknownExchange = errors.New("unknown exchange")

// StandardTick is the canonical, exchange-agnostic representation of one
// order or trade event.
type StandardTick struct {
	Index       int64 // feed sequence number, authoritative ordering key when present
	Symbol      string
	AskUniqueID int64
	BidUniqueID int64
	OrderType   OrderType
	Price       decimal.Decimal
	Quantity    int64
	Time        string // natural date digits + time-of-day digits
}

// ExchangeOf resolves the exchange from a symbol's market suffix.
func ExchangeOf(symbol string) (ex Exchange, err error) {
	switch {
	case strings.HasSuffix(symbol, ".SH"):
		ex = SSE
	case strings.HasSuffix(symbol, ".SZ"):
		ex = SZSE
	default:
		err = fmt.Errorf("%w for symbol %s", ErrUnknownExchange, symbol)
	}
	return
}

// PadSymbol renders a numeric symbol id as the fixed 6-digit code.
// Some feeds store the symbol as a bare integer and lose leading zeros.
func PadSymbol(id int64) string {
	return fmt.Sprintf("%06d", id)
}

// SideFromBS maps the historical B/S side code.
func SideFromBS(code string) Side {
	switch code {
	case "B":
		return Buy
	case "S":
		return Sell
	}
	return SideUnknown
}

// SideFromNum maps the raw-feed numeric side code (1 buy, 2 sell).
func SideFromNum(v int64) Side {
	switch v {
	case 1:
		return Buy
	case 2:
		return Sell
	}
	return SideUnknown
}

// SideIDs places an order's own sequence number on the side it rests on.
// Exactly one of the two ids is non-zero for a valid order row.
func SideIDs(side Side, seq int64) (askID, bidID int64) {
	switch side {
	case Sell:
		askID = seq
	case Buy:
		bidID = seq
	}
	return
}

// ExcludedClass reports whether the symbol belongs to the index/fund/bond
// classes that are left out of equity volume comparison.
func ExcludedClass(symbol string) bool {
	return strings.HasPrefix(symbol, "1") ||
		strings.HasPrefix(symbol, "2") ||
		strings.HasPrefix(symbol, "5")
}
