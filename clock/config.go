package clock

import "time"

// Config holds clock configuration. An empty NTPServer keeps the
// system clock.
type Config struct {
	NTPServer    string        `yaml:"ntp_server"`
	SyncInterval time.Duration `yaml:"sync_interval"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.SyncInterval <= 0 {
		c.SyncInterval = defaultInterval
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}
