package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
telegram:
  token: tg-token
fixer:
  api-key: fixer-key
  url: http://localhost:9999/latest
  timeout-seconds: 3
app:
  base-currency: USD
  currencies: [USD, EUR, GBP]
  default-from: GBP
  default-to: EUR
  locale: en
  precision: 0
  rates-refresh-minutes: 5
server:
  addr: ":9090"
tracing:
  service-name: test-bot
  agent: localhost:6831
`

func clearEnv(t *testing.T) {
	t.Setenv(telegramTokenEnv, "")
	t.Setenv(fixerApiKeyEnv, "")
}

func Test_OnParse_ShouldReadAllSections(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.Telegram().Token())
	assert.Equal(t, "fixer-key", cfg.Fixer().ApiKey())
	assert.Equal(t, "http://localhost:9999/latest", cfg.Fixer().URL())
	assert.Equal(t, 3*time.Second, cfg.Fixer().Timeout())

	app := cfg.App()
	assert.Equal(t, "USD", app.BaseCurrency())
	assert.Equal(t, []string{"USD", "EUR", "GBP"}, app.Currencies())
	from, to := app.DefaultPair()
	assert.Equal(t, "GBP", from)
	assert.Equal(t, "EUR", to)
	assert.Equal(t, "en", app.Locale())
	assert.Equal(t, 0, app.Precision())
	assert.Equal(t, 5*time.Minute, app.RefreshInterval())

	assert.Equal(t, ":9090", cfg.Server().Addr())
	assert.Equal(t, "test-bot", cfg.Tracing().ServiceName())
	assert.Equal(t, "localhost:6831", cfg.Tracing().Agent())
	assert.True(t, cfg.Tracing().Enabled())
}

func Test_OnParse_ShouldApplyDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse([]byte("telegram:\n  token: t\nfixer:\n  api-key: k\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultFixerURL, cfg.Fixer().URL())
	assert.Equal(t, "EUR", cfg.App().BaseCurrency())
	assert.NotEmpty(t, cfg.App().Currencies())
	assert.Equal(t, 2, cfg.App().Precision())
	assert.Equal(t, "fr", cfg.App().Locale())
	assert.Equal(t, time.Hour, cfg.App().RefreshInterval())
	assert.Equal(t, 15*time.Second, cfg.App().RequestTimeout())
	assert.Equal(t, 60, cfg.Telegram().PollTimeoutSeconds())
	assert.Equal(t, defaultServerAddr, cfg.Server().Addr())
	assert.Equal(t, defaultServiceName, cfg.Tracing().ServiceName())
}

func Test_OnParse_ShouldPreferEnvSecrets(t *testing.T) {
	t.Setenv(telegramTokenEnv, "env-token")
	t.Setenv(fixerApiKeyEnv, "env-key")

	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram().Token())
	assert.Equal(t, "env-key", cfg.Fixer().ApiKey())
}

func Test_OnParse_ShouldReportEveryProblem(t *testing.T) {
	clearEnv(t)

	_, err := Parse([]byte("app:\n  base-currency: RUB\n  currencies: [USD, EUR]\n  precision: -1\n"))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "telegram.token is required")
	assert.Contains(t, err.Error(), "fixer.api-key is required")
	assert.Contains(t, err.Error(), "base currency RUB is not in the catalog")
	assert.Contains(t, err.Error(), "precision -1 is negative")
}

func Test_OnParse_ShouldRejectBrokenCatalog(t *testing.T) {
	clearEnv(t)

	_, err := Parse([]byte("telegram:\n  token: t\nfixer:\n  api-key: k\napp:\n  currencies: [USD, USD]\n"))
	assert.Error(t, err)
}

func Test_OnParse_ShouldRejectInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("telegram: [unclosed"))
	assert.Error(t, err)
}
