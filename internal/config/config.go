package config

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "data/config.yaml"

	configFileEnv    = "CONFIG_FILE"
	telegramTokenEnv = "TELEGRAM_TOKEN"
	fixerApiKeyEnv   = "FIXER_API_KEY"
)

type config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Fixer    FixerConfig    `yaml:"fixer"`
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type Service struct {
	config config
}

// New loads .env if present, then the YAML file named by CONFIG_FILE
// (data/config.yaml by default).
func New() (*Service, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}

	path := os.Getenv(configFileEnv)
	if path == "" {
		path = defaultConfigFile
	}

	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(rawYAML)
}

// Parse builds the config from raw YAML, applies env overrides and
// defaults, and validates the result.
func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{}

	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	if token := os.Getenv(telegramTokenEnv); token != "" {
		s.config.Telegram.ApiToken = token
	}
	if key := os.Getenv(fixerApiKeyEnv); key != "" {
		s.config.Fixer.FixerApiKey = key
	}

	s.config.Fixer.setDefaults()
	s.config.App.setDefaults()
	s.config.Server.setDefaults()
	s.config.Tracing.setDefaults()

	if err = s.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return s, nil
}

func (s *Service) validate() error {
	var result *multierror.Error
	if s.config.Telegram.ApiToken == "" {
		result = multierror.Append(result, errors.New("telegram.token is required"))
	}
	if s.config.Fixer.FixerApiKey == "" {
		result = multierror.Append(result, errors.New("fixer.api-key is required"))
	}
	result = multierror.Append(result, s.config.App.validate()...)
	return result.ErrorOrNil()
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Fixer() *FixerConfig {
	return &s.config.Fixer
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Server() *ServerConfig {
	return &s.config.Server
}

func (s *Service) Tracing() *TracingConfig {
	return &s.config.Tracing
}
