package tick

// Feed identifies which raw file of an exchange a row came from. The SSE raw
// recorder writes orders and trades into one merged tick file.
type Feed int

const (
	OrderFeed Feed = iota
	TradeFeed
	MergedFeed
)

type feedKey struct {
	Exchange Exchange
	Vintage  Vintage
	Feed     Feed
}

// codeTables holds the raw order-type code of every exchange, vintage and
// feed. Adding an exchange or vintage is a table entry, not new control flow.
//
// The SZSE historical order feed carries no cancel code on purpose: the
// exchange publishes cancels only in the trade feed, so cancels surface via
// the trade-feed table alone.
var codeTables = map[feedKey]map[string]OrderType{
	{SSE, Historical, OrderFeed}:  {"A": Limit, "D": Cancel},
	{SZSE, Historical, OrderFeed}: {"0": Limit, "1": MarketOpposite, "U": MarketOwn},
	{SZSE, Historical, TradeFeed}: {"0": Trade, "C": Cancel},
	{SSE, Raw, MergedFeed}:        {"A": Limit, "D": Cancel, "T": Trade},
	{SZSE, Raw, OrderFeed}:        {"2": Limit, "1": MarketOpposite, "U": MarketOwn},
	{SZSE, Raw, TradeFeed}:        {"F": Trade, "4": Cancel},
}

// MapOrderType translates a raw order-type code into the canonical code.
// ok is false for codes outside the applicable table; callers drop such rows.
func MapOrderType(ex Exchange, v Vintage, f Feed, code string) (ot OrderType, ok bool) {
	table, ok := codeTables[feedKey{ex, v, f}]
	if !ok {
		return
	}
	ot, ok = table[code]
	return
}
