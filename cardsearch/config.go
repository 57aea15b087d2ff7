package cardsearch

const defaultUserAgent = "bastion/1.0"

// Config holds card-data service configuration. The HTTP client is
// injected through Params.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}
