package currency

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Catalog is the fixed ordered set of supported currency codes.
// Positions are stable and are used as picker indexes.
type Catalog struct {
	codes []Code
	index map[Code]int
}

func NewCatalog(codes []Code) (*Catalog, error) {
	if len(codes) == 0 {
		return nil, errors.New("catalog is empty")
	}

	c := &Catalog{
		codes: make([]Code, 0, len(codes)),
		index: make(map[Code]int, len(codes)),
	}

	var result *multierror.Error
	for i, code := range codes {
		if !validCode(code) {
			result = multierror.Append(result, fmt.Errorf("code %q at %d is not an ISO 4217 code", code, i))
			continue
		}
		if prev, ok := c.index[code]; ok {
			result = multierror.Append(result, fmt.Errorf("code %s at %d duplicates position %d", code, i, prev))
			continue
		}
		c.index[code] = len(c.codes)
		c.codes = append(c.codes, code)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return c, nil
}

// DefaultCatalog wraps Currencies.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Currencies)
	if err != nil {
		panic(err)
	}
	return c
}

func validCode(code Code) bool {
	if len(code) != 3 {
		return false
	}
	return strings.IndexFunc(code, func(r rune) bool {
		return r < 'A' || r > 'Z'
	}) < 0
}

func (c *Catalog) Len() int {
	return len(c.codes)
}

// Codes returns a copy of the catalog in order.
func (c *Catalog) Codes() []Code {
	res := make([]Code, len(c.codes))
	copy(res, c.codes)
	return res
}

func (c *Catalog) At(i int) (Code, bool) {
	if i < 0 || i >= len(c.codes) {
		return "", false
	}
	return c.codes[i], true
}

func (c *Catalog) IndexOf(code Code) (int, bool) {
	i, ok := c.index[code]
	return i, ok
}

func (c *Catalog) Contains(code Code) bool {
	_, ok := c.index[code]
	return ok
}

// NextIndex wraps around to 0 after the last position.
func (c *Catalog) NextIndex(after int) int {
	return (after + 1) % len(c.codes)
}

// Next returns the code following code, used to keep two pickers from
// resolving to the same currency.
func (c *Catalog) Next(code Code) Code {
	i, ok := c.index[code]
	if !ok {
		return c.codes[0]
	}
	return c.codes[c.NextIndex(i)]
}

// Without returns the codes except skip, in catalog order.
func (c *Catalog) Without(skip Code) []Code {
	res := make([]Code, 0, len(c.codes))
	for _, code := range c.codes {
		if code != skip {
			res = append(res, code)
		}
	}
	return res
}
