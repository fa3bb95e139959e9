package config

const defaultServerAddr = ":8080"

// ServerConfig configures the ops endpoint serving metrics and health.
type ServerConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (s *ServerConfig) setDefaults() {
	if s.ListenAddr == "" {
		s.ListenAddr = defaultServerAddr
	}
}

func (s *ServerConfig) Addr() string {
	return s.ListenAddr
}
