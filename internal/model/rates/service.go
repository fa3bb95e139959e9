package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/logger"
	"max.ks1230/converter-bot/internal/model/converter"
	"max.ks1230/converter-bot/internal/model/customerr"
)

type ratesProvider interface {
	GetRates(ctx context.Context, base string, relatives []string) (currency.Snapshot, error)
}

type config interface {
	BaseCurrency() string
	RequestTimeout() time.Duration
}

// Result is what a single GetCurrencyConverter call resolves with.
// Seq grows with every call, so a completion carrying a lower Seq than
// one already applied is stale.
type Result struct {
	Seq       uint64
	Converter *converter.Converter
	Err       error
}

// Dispatcher runs completions, e.g. on the goroutine owning the UI state.
type Dispatcher func(func())

type Option func(*Service)

func WithDispatcher(d Dispatcher) Option {
	return func(s *Service) {
		s.dispatch = d
	}
}

// Service fetches a fresh snapshot on every call and wraps it into a
// converter. It keeps no snapshot between calls.
type Service struct {
	provider     ratesProvider
	catalog      *currency.Catalog
	baseCurrency string
	timeout      time.Duration
	seq          atomic.Uint64
	dispatch     Dispatcher
}

func NewService(provider ratesProvider, catalog *currency.Catalog, config config, opts ...Option) (*Service, error) {
	s := &Service{
		provider:     provider,
		catalog:      catalog,
		baseCurrency: config.BaseCurrency(),
		timeout:      config.RequestTimeout(),
		dispatch:     func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if !catalog.Contains(s.baseCurrency) {
		return nil, fmt.Errorf("unknown currency %s", s.baseCurrency)
	}
	return s, nil
}

// GetCurrencyConverter starts one fetch and returns its sequence number
// without blocking. completion is called exactly once through the
// dispatcher.
func (s *Service) GetCurrencyConverter(ctx context.Context, completion func(Result)) uint64 {
	seq := s.seq.Inc()

	go func() {
		conv, err := s.Fetch(ctx)
		res := Result{Seq: seq, Converter: conv, Err: err}
		s.dispatch(func() {
			completion(res)
		})
	}()

	return seq
}

// Fetch performs one request synchronously. Errors always match one of
// customerr.ErrNoData, customerr.ErrWrongStatusCode, customerr.ErrDecoding.
func (s *Service) Fetch(ctx context.Context) (*converter.Converter, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "fetchRates")
	defer span.Finish()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	conv, err := s.fetch(ctx)
	observeFetch(time.Since(start), err)

	if err != nil {
		ext.Error.Set(span, true)
		return nil, err
	}
	return conv, nil
}

func (s *Service) fetch(ctx context.Context) (*converter.Converter, error) {
	logger.Info("Pulling current rates...", zap.String("base", s.baseCurrency))

	snapshot, err := s.provider.GetRates(ctx, s.baseCurrency, s.catalog.Without(s.baseCurrency))
	if err != nil {
		return nil, classify(err)
	}

	conv, err := converter.New(snapshot)
	if err != nil {
		return nil, errors.Wrap(customerr.ErrDecoding, err.Error())
	}

	if missing := conv.Missing(s.catalog); len(missing) > 0 {
		logger.Warn("snapshot lacks catalog currencies", zap.Strings("missing", missing))
	}

	logger.Info("Successfully pulled current rates", zap.String("base", conv.Base()))
	return conv, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, customerr.ErrNoData),
		errors.Is(err, customerr.ErrWrongStatusCode),
		errors.Is(err, customerr.ErrDecoding):
		return errors.Wrap(err, "get rates")
	default:
		return errors.Wrap(customerr.ErrNoData, err.Error())
	}
}
