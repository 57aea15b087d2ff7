package config

import (
	"os"
	"strings"

	"go.uber.org/config"

	"github.com/bastionbot/bastion/cardsearch"
	"github.com/bastionbot/bastion/clock"
	"github.com/bastionbot/bastion/discord"
	"github.com/bastionbot/bastion/logger"
	metaClient "github.com/bastionbot/bastion/metagame/client"
	"github.com/bastionbot/bastion/ops"
	"github.com/bastionbot/bastion/transport"
)

// Environment variables that override values from YAML.
const (
	EnvDiscordToken   = "DISCORD_TOKEN"
	EnvDiscordGuildID = "DISCORD_GUILD_ID"
	EnvSearchAPI      = "SEARCH_API"
)

// AppConfig holds all application configuration.
type AppConfig struct {
	Logger     logger.Config     `yaml:"logger"`
	Discord    discord.Config    `yaml:"discord"`
	CardSearch cardsearch.Config `yaml:"cardsearch"`
	Metagame   metaClient.Config `yaml:"metagame"`
	Transport  transport.Config  `yaml:"transport"`
	Ops        ops.Config        `yaml:"ops"`
	Clock      clock.Config      `yaml:"clock"`
}

// Load reads configuration from the specified YAML files.
// Files are merged in order, with later files overriding earlier ones.
// Missing files are silently ignored.
func Load(files ...string) (*AppConfig, error) {
	opts := make([]config.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			opts = append(opts, config.File(f))
		}
	}

	if len(opts) == 0 {
		return nil, os.ErrNotExist
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration, applies environment overrides
// and fills in defaults. Without any config file it starts from an empty
// config so the bot can run from the environment alone.
func LoadWithDefaults(files ...string) (*AppConfig, error) {
	cfg, err := Load(files...)
	if os.IsNotExist(err) {
		cfg, err = &AppConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.Getenv)

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if len(cfg.Logger.OutputPaths) == 0 {
		cfg.Logger.OutputPaths = []string{"stdout"}
	}
	cfg.Transport.Defaults()
	if cfg.CardSearch.UserAgent == "" {
		cfg.CardSearch.UserAgent = cfg.Transport.UserAgent
	}
	if cfg.Metagame.UserAgent == "" {
		cfg.Metagame.UserAgent = cfg.Transport.UserAgent
	}
	cfg.CardSearch.Defaults()
	cfg.Metagame.Defaults()
	cfg.Clock.Defaults()

	return cfg, nil
}

// ApplyEnv overrides secrets and endpoints with non-empty values from
// getenv.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvDiscordToken)); v != "" {
		c.Discord.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvDiscordGuildID)); v != "" {
		c.Discord.GuildID = v
	}
	if v := strings.TrimSpace(getenv(EnvSearchAPI)); v != "" {
		c.CardSearch.BaseURL = v
	}
}
