package user

import "max.ks1230/converter-bot/internal/entity/currency"

// Record is the pair of currencies a chat has picked.
type Record struct {
	From currency.Code
	To   currency.Code
}

func (r Record) IsSet() bool {
	return r.From != "" && r.To != ""
}

// WithDefaults fills the unset side from the given pair, moving it to the
// next catalog code if it would equal the other side.
func (r Record) WithDefaults(catalog *currency.Catalog, from, to currency.Code) Record {
	if r.From == "" || !catalog.Contains(r.From) {
		r.From = from
		if !catalog.Contains(r.From) {
			r.From, _ = catalog.At(0)
		}
	}
	if r.To == "" || !catalog.Contains(r.To) {
		r.To = to
		if !catalog.Contains(r.To) {
			r.To = catalog.Next(r.From)
		}
	}
	if r.To == r.From && catalog.Len() > 1 {
		r.To = catalog.Next(r.From)
	}
	return r
}

// SelectFrom picks the source currency. Picking the current target moves
// the source to the code following it in the catalog.
func (r *Record) SelectFrom(catalog *currency.Catalog, code currency.Code) currency.Code {
	if code == r.To {
		code = catalog.Next(code)
	}
	r.From = code
	return code
}

// SelectTo is SelectFrom for the target side.
func (r *Record) SelectTo(catalog *currency.Catalog, code currency.Code) currency.Code {
	if code == r.From {
		code = catalog.Next(code)
	}
	r.To = code
	return code
}
