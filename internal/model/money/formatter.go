package money

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown instead of values that cannot be displayed.
const Placeholder = "n/a"

const defaultPrecision = 2

// Formatter renders amounts with a fixed number of decimals and the
// separators of its locale.
type Formatter struct {
	printer *message.Printer
	format  string
}

func NewFormatter(locale string, precision int) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(err, "parse locale %q", locale)
	}
	if precision < 0 {
		precision = defaultPrecision
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		format:  fmt.Sprintf("%%.%df", precision),
	}, nil
}

func (f *Formatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	return f.printer.Sprintf(f.format, v)
}

// FormatWithCode appends the currency code, "1,234.50 USD".
func (f *Formatter) FormatWithCode(v float64, code string) string {
	return f.Format(v) + " " + code
}
