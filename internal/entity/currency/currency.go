package currency

import "time"

type Code = string

const (
	AUD Code = "AUD"
	CAD Code = "CAD"
	CHF Code = "CHF"
	CNY Code = "CNY"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	USD Code = "USD"
)

// Currencies is the catalog used when the config does not list any.
var Currencies = []Code{AUD, CAD, CHF, CNY, EUR, GBP, JPY, USD}

// Snapshot holds rates relative to Base as they were at FetchedAt.
type Snapshot struct {
	Base      Code
	Rates     map[Code]float64
	FetchedAt time.Time
}

// Rate returns the rate of code against the snapshot base.
// The base itself is always 1.
func (s Snapshot) Rate(code Code) (float64, bool) {
	if code == s.Base {
		return 1, true
	}
	rate, ok := s.Rates[code]
	return rate, ok
}
