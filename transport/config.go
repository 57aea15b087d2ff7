package transport

import "time"

// Config holds outbound HTTP client configuration.
type Config struct {
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	UserAgent         string        `yaml:"user_agent"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 10
	}
	if c.Burst <= 0 {
		c.Burst = 5
	}
	if c.UserAgent == "" {
		c.UserAgent = "bastion/1.0"
	}
}
