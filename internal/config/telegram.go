package config

const defaultUpdatesTimeoutSeconds = 60

type TelegramConfig struct {
	ApiToken       string `yaml:"token"`
	UpdatesTimeout int    `yaml:"updates-timeout-seconds"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

// PollTimeoutSeconds is the long polling timeout of getUpdates.
func (t *TelegramConfig) PollTimeoutSeconds() int {
	if t.UpdatesTimeout <= 0 {
		return defaultUpdatesTimeoutSeconds
	}
	return t.UpdatesTimeout
}
