package tick

import "sort"

// Join concatenates one symbol's order stream and trade stream and sorts the
// result by the authoritative ordering key: the explicit feed index when the
// vintage supplies one, else the composite time key.
//
// The sort must be stable. Rows with equal keys keep their concatenation
// order (orders before trades), otherwise an order and a trade sharing a
// timestamp could swap and misrepresent cause and effect.
func Join(orders, trades []StandardTick, byIndex bool) []StandardTick {
	joined := make([]StandardTick, 0, len(orders)+len(trades))
	joined = append(joined, orders...)
	joined = append(joined, trades...)

	if byIndex {
		sort.SliceStable(joined, func(i, j int) bool {
			return joined[i].Index < joined[j].Index
		})
	} else {
		sort.SliceStable(joined, func(i, j int) bool {
			return joined[i].Time < joined[j].Time
		})
	}

	return joined
}
