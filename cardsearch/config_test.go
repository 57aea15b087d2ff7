package cardsearch

import "testing"

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()
	if cfg.UserAgent != "bastion/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}

	cfg = Config{UserAgent: "custom/2.0"}
	cfg.Defaults()
	if cfg.UserAgent != "custom/2.0" {
		t.Errorf("Defaults() overrode UserAgent: %q", cfg.UserAgent)
	}
}
