// Package convert turns raw exchange feed files into standard tick files.
// It holds the historical per-symbol driver, the bulk raw-feed driver and
// the per-unit outcome bookkeeping.
package convert

import (
	"errors"

	"stdtick/pkg/xlog"
)

var logger = xlog.GetLogger()

// Error kinds recognized at the unit-of-work boundary.
var (
	ErrInputMissing   = errors.New("input missing")
	ErrInputEmpty     = errors.New("input empty")
	ErrInputMalformed = errors.New("input malformed")
	ErrOutputWrite    = errors.New("output write failed")
)

// Status classifies one unit of work (a symbol folder or a raw batch).
type Status int

const (
	Converted Status = iota
	NoData
	BadData
)

// Outcome is the result of one unit of work.
type Outcome struct {
	Unit   string
	Status Status
	Err    error
}

// Summary aggregates outcomes into three disjoint lists.
type Summary struct {
	Converted []string
	NoData    []string
	BadData   []string
}

func (s *Summary) Add(o Outcome) {
	switch o.Status {
	case Converted:
		s.Converted = append(s.Converted, o.Unit)
	case NoData:
		s.NoData = append(s.NoData, o.Unit)
	case BadData:
		s.BadData = append(s.BadData, o.Unit)
	}
}

// classify maps a conversion error to the unit's status. Missing or empty
// inputs are recoverable, everything else is bad data.
func classify(err error) Status {
	switch {
	case err == nil:
		return Converted
	case errors.Is(err, ErrInputMissing), errors.Is(err, ErrInputEmpty):
		return NoData
	default:
		return BadData
	}
}
