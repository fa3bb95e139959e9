package customerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fetch-time failures of the rates service.
var (
	ErrNoData          = errors.New("no data received")
	ErrWrongStatusCode = errors.New("wrong status code")
	ErrDecoding        = errors.New("cannot decode rates")
)

// Conversion failures.
var (
	ErrMissingRate   = errors.New("missing rate")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNoConverter   = errors.New("rates are not loaded yet")
)

// StatusCodeError is returned when the rates endpoint answers with a
// non-success status. It matches ErrWrongStatusCode.
type StatusCodeError struct {
	Code int
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("%s: %d", ErrWrongStatusCode, e.Code)
}

func (e *StatusCodeError) Is(target error) bool {
	return target == ErrWrongStatusCode
}

// MissingRateError names the currency absent from a rate snapshot.
// It matches ErrMissingRate.
type MissingRateError struct {
	Currency string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("%s for %s", ErrMissingRate, e.Currency)
}

func (e *MissingRateError) Is(target error) bool {
	return target == ErrMissingRate
}
