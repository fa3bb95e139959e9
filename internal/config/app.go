package config

import (
	"fmt"
	"time"

	"max.ks1230/converter-bot/internal/entity/currency"
)

const (
	defaultBaseCurrency   = currency.EUR
	defaultFromCurrency   = currency.EUR
	defaultToCurrency     = currency.USD
	defaultLocale         = "fr"
	defaultPrecision      = 2
	defaultRefreshMinutes = 60
	defaultRequestSeconds = 15
)

type AppConfig struct {
	BaseCurrencyName   string   `yaml:"base-currency"`
	CurrencyList       []string `yaml:"currencies"`
	DefaultFromName    string   `yaml:"default-from"`
	DefaultToName      string   `yaml:"default-to"`
	LocaleName         string   `yaml:"locale"`
	Decimals           *int     `yaml:"precision"`
	RatesRefreshMinute int64    `yaml:"rates-refresh-minutes"`
	RequestSeconds     int64    `yaml:"request-timeout-seconds"`
}

func (s *AppConfig) setDefaults() {
	if s.BaseCurrencyName == "" {
		s.BaseCurrencyName = defaultBaseCurrency
	}
	if len(s.CurrencyList) == 0 {
		s.CurrencyList = currency.Currencies
	}
	if s.DefaultFromName == "" {
		s.DefaultFromName = defaultFromCurrency
	}
	if s.DefaultToName == "" {
		s.DefaultToName = defaultToCurrency
	}
	if s.LocaleName == "" {
		s.LocaleName = defaultLocale
	}
	if s.Decimals == nil {
		d := defaultPrecision
		s.Decimals = &d
	}
	if s.RatesRefreshMinute == 0 {
		s.RatesRefreshMinute = defaultRefreshMinutes
	}
	if s.RequestSeconds <= 0 {
		s.RequestSeconds = defaultRequestSeconds
	}
}

func (s *AppConfig) validate() []error {
	var errs []error
	catalog, err := currency.NewCatalog(s.CurrencyList)
	if err != nil {
		return append(errs, err)
	}
	if !catalog.Contains(s.BaseCurrencyName) {
		errs = append(errs, fmt.Errorf("base currency %s is not in the catalog", s.BaseCurrencyName))
	}
	if *s.Decimals < 0 {
		errs = append(errs, fmt.Errorf("precision %d is negative", *s.Decimals))
	}
	if s.RatesRefreshMinute < 0 {
		errs = append(errs, fmt.Errorf("rates-refresh-minutes %d is negative", s.RatesRefreshMinute))
	}
	return errs
}

func (s *AppConfig) BaseCurrency() string {
	return s.BaseCurrencyName
}

func (s *AppConfig) Currencies() []string {
	return s.CurrencyList
}

// DefaultPair is the selection of a chat that has not picked anything.
func (s *AppConfig) DefaultPair() (from, to string) {
	return s.DefaultFromName, s.DefaultToName
}

func (s *AppConfig) Locale() string {
	return s.LocaleName
}

func (s *AppConfig) Precision() int {
	return *s.Decimals
}

func (s *AppConfig) RefreshInterval() time.Duration {
	return time.Duration(s.RatesRefreshMinute) * time.Minute
}

// RequestTimeout bounds one whole fetch of the rates.
func (s *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestSeconds) * time.Second
}
