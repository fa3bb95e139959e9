package config

import "time"

const (
	defaultFixerURL            = "https://api.apilayer.com/fixer/latest"
	defaultFixerTimeoutSeconds = 10
)

type FixerConfig struct {
	FixerApiKey    string `yaml:"api-key"`
	LatestRatesURL string `yaml:"url"`
	TimeoutSeconds int64  `yaml:"timeout-seconds"`
}

func (f *FixerConfig) setDefaults() {
	if f.LatestRatesURL == "" {
		f.LatestRatesURL = defaultFixerURL
	}
	if f.TimeoutSeconds <= 0 {
		f.TimeoutSeconds = defaultFixerTimeoutSeconds
	}
}

func (f *FixerConfig) ApiKey() string {
	return f.FixerApiKey
}

func (f *FixerConfig) URL() string {
	return f.LatestRatesURL
}

func (f *FixerConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}
