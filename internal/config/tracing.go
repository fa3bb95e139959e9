package config

const defaultServiceName = "converter-bot"

type TracingConfig struct {
	Service       string `yaml:"service-name"`
	AgentHostPort string `yaml:"agent"`
	Disabled      bool   `yaml:"disabled"`
}

func (t *TracingConfig) setDefaults() {
	if t.Service == "" {
		t.Service = defaultServiceName
	}
}

func (t *TracingConfig) ServiceName() string {
	return t.Service
}

func (t *TracingConfig) Agent() string {
	return t.AgentHostPort
}

func (t *TracingConfig) Enabled() bool {
	return !t.Disabled
}
