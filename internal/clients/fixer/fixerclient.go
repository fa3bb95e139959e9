package fixer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/logger"
	"max.ks1230/converter-bot/internal/model/customerr"
)

const (
	baseParam      = "base"
	relativesParam = "symbols"
	apiKeyHeader   = "apikey"
)

type config interface {
	ApiKey() string
	URL() string
	Timeout() time.Duration
}

type Client struct {
	apiKey string
	url    string
	client *http.Client
}

type ratesResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Success   *bool              `json:"success"`
	Timestamp int64              `json:"timestamp"`
	Error     *struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func New(cfg config) *Client {
	return &Client{
		apiKey: cfg.ApiKey(),
		url:    cfg.URL(),
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// GetRates loads the latest rates of relatives against base.
func (c *Client) GetRates(ctx context.Context, base string, relatives []string) (currency.Snapshot, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "fixer.GetRates")
	defer span.Finish()
	span.SetTag(baseParam, base)

	snapshot, err := c.getRates(ctx, span, base, relatives)
	if err != nil {
		ext.Error.Set(span, true)
		return currency.Snapshot{}, err
	}
	return snapshot, nil
}

func (c *Client) getRates(ctx context.Context, span opentracing.Span, base string, relatives []string) (currency.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return currency.Snapshot{}, errors.Wrap(err, "building request")
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	q := req.URL.Query()
	q.Add(baseParam, base)
	if len(relatives) > 0 {
		q.Add(relativesParam, strings.Join(relatives, ","))
	}
	req.URL.RawQuery = q.Encode()

	res, err := c.client.Do(req)
	if err != nil {
		return currency.Snapshot{}, errors.Wrap(customerr.ErrNoData, err.Error())
	}
	defer res.Body.Close()

	ext.HTTPStatusCode.Set(span, uint16(res.StatusCode))
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return currency.Snapshot{}, errors.WithStack(&customerr.StatusCodeError{Code: res.StatusCode})
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return currency.Snapshot{}, errors.Wrap(customerr.ErrNoData, err.Error())
	}
	logger.Debug("new response from fixer", zap.ByteString("body", body))

	if len(bytes.TrimSpace(body)) == 0 {
		return currency.Snapshot{}, errors.Wrap(customerr.ErrNoData, "empty body")
	}

	return decodeRates(body, base)
}

func decodeRates(body []byte, base string) (currency.Snapshot, error) {
	rates := ratesResponse{}
	if err := json.Unmarshal(body, &rates); err != nil {
		return currency.Snapshot{}, errors.Wrap(customerr.ErrDecoding, err.Error())
	}

	if rates.Success != nil && !*rates.Success {
		msg := "error from fixer (success = false)"
		if rates.Error != nil {
			msg = rates.Error.Info
		}
		return currency.Snapshot{}, errors.Wrap(customerr.ErrWrongStatusCode, msg)
	}
	if rates.Rates == nil {
		return currency.Snapshot{}, errors.Wrap(customerr.ErrDecoding, "no rates in response")
	}

	snapshot := currency.Snapshot{
		Base:      rates.Base,
		Rates:     rates.Rates,
		FetchedAt: time.Now(),
	}
	if snapshot.Base == "" {
		snapshot.Base = base
	}
	if rates.Timestamp > 0 {
		snapshot.FetchedAt = time.Unix(rates.Timestamp, 0)
	}
	return snapshot, nil
}
