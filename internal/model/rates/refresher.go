package rates

import (
	"context"
	"time"

	"go.uber.org/zap"
	"max.ks1230/converter-bot/internal/logger"
	"max.ks1230/converter-bot/internal/model/converter"
)

type converterFetcher interface {
	GetCurrencyConverter(ctx context.Context, completion func(Result)) uint64
}

type converterHolder interface {
	Offer(seq uint64, conv *converter.Converter) bool
}

type refresherConfig interface {
	RefreshInterval() time.Duration
}

// Refresher owns the current converter of the host: it fetches on a
// ticker and on demand, and hands results to the holder, which drops
// completions that arrive after a newer one.
type Refresher struct {
	fetcher  converterFetcher
	holder   converterHolder
	interval time.Duration
}

func NewRefresher(fetcher converterFetcher, holder converterHolder, config refresherConfig) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		holder:   holder,
		interval: config.RefreshInterval(),
	}
}

// Run refreshes immediately and then on every tick until ctx is done.
// A zero interval means a single refresh.
func (r *Refresher) Run(ctx context.Context) {
	r.Trigger(ctx)
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	logger.Info("Start refreshing rates", zap.Duration("interval", r.interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop refreshing rates")
			return
		case <-ticker.C:
			r.Trigger(ctx)
		}
	}
}

// Trigger starts a fetch without waiting for it.
func (r *Refresher) Trigger(ctx context.Context) {
	r.fetcher.GetCurrencyConverter(ctx, func(res Result) {
		_ = r.apply(res)
	})
}

// Refresh starts a fetch and waits for its completion.
func (r *Refresher) Refresh(ctx context.Context) error {
	done := make(chan error, 1)
	r.fetcher.GetCurrencyConverter(ctx, func(res Result) {
		done <- r.apply(res)
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) apply(res Result) error {
	if res.Err != nil {
		logger.Error("refresh failed", zap.Uint64("seq", res.Seq), zap.Error(res.Err))
		return res.Err
	}
	if !r.holder.Offer(res.Seq, res.Converter) {
		counterStaleResults.Inc()
		logger.Info("dropped stale rates", zap.Uint64("seq", res.Seq))
		return nil
	}
	logger.Info("rates updated", zap.Uint64("seq", res.Seq), zap.Time("fetchedAt", res.Converter.FetchedAt()))
	return nil
}
