package client

const (
	defaultBaseURL   = "https://ygoprodeck.com"
	defaultUserAgent = "bastion/1.0"
)

// Config holds YGOPRODECK client configuration. The HTTP client is
// injected through Params.
type Config struct {
	BaseURL   string `yaml:"base_url"`
	UserAgent string `yaml:"user_agent"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}
