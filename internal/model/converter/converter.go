package converter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/model/customerr"
)

// Converter computes conversions from one immutable rate snapshot.
// It is safe for concurrent use.
type Converter struct {
	snapshot currency.Snapshot
}

func New(snapshot currency.Snapshot) (*Converter, error) {
	if snapshot.Base == "" {
		return nil, errors.New("snapshot has no base currency")
	}

	rates := make(map[currency.Code]float64, len(snapshot.Rates))
	for code, rate := range snapshot.Rates {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, errors.Errorf("rate %s = %v is not positive", code, rate)
		}
		rates[code] = rate
	}
	rates[snapshot.Base] = 1

	return &Converter{
		snapshot: currency.Snapshot{
			Base:      snapshot.Base,
			Rates:     rates,
			FetchedAt: snapshot.FetchedAt,
		},
	}, nil
}

// Convert returns amount expressed in to, amount * rate[to] / rate[from].
func (c *Converter) Convert(from, to currency.Code, amount float64) (float64, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.Wrapf(customerr.ErrInvalidAmount, "convert %v", amount)
	}

	fromRate, err := c.rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := c.rate(to)
	if err != nil {
		return 0, err
	}
	if from == to {
		return amount, nil
	}

	res, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(toRate)).
		Div(decimal.NewFromFloat(fromRate)).
		Float64()
	return res, nil
}

func (c *Converter) rate(code currency.Code) (float64, error) {
	rate, ok := c.snapshot.Rates[code]
	if !ok {
		return 0, &customerr.MissingRateError{Currency: code}
	}
	return rate, nil
}

func (c *Converter) Base() currency.Code {
	return c.snapshot.Base
}

func (c *Converter) FetchedAt() time.Time {
	return c.snapshot.FetchedAt
}

// Has reports whether the snapshot carries a rate for code.
func (c *Converter) Has(code currency.Code) bool {
	_, ok := c.snapshot.Rates[code]
	return ok
}

// Missing lists the catalog codes the snapshot has no rate for.
func (c *Converter) Missing(catalog *currency.Catalog) []currency.Code {
	var res []currency.Code
	for _, code := range catalog.Codes() {
		if !c.Has(code) {
			res = append(res, code)
		}
	}
	return res
}

// ParseAmount reads a user supplied amount. Both "." and "," are accepted
// as the decimal separator.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.Wrap(customerr.ErrInvalidAmount, "empty amount")
	}
	amount, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.Wrapf(customerr.ErrInvalidAmount, "parse %q", text)
	}
	return amount, nil
}
