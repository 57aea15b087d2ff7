package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bastionbot/bastion/cardsearch"
	"github.com/bastionbot/bastion/clock"
	"github.com/bastionbot/bastion/config"
	"github.com/bastionbot/bastion/discord"
	"github.com/bastionbot/bastion/logger"
	"github.com/bastionbot/bastion/metagame"
	metaClient "github.com/bastionbot/bastion/metagame/client"
	"github.com/bastionbot/bastion/transport"
)

var defaultConfigFiles = []string{"config/config.yaml", "config/secrets.yaml"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "bastion",
		Short:         "Yu-Gi-Oh! card and metagame Discord bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&opts.configFiles, "config", defaultConfigFiles,
		"YAML config files, merged in order; missing files are skipped")

	root.AddCommand(
		newRunCmd(opts),
		newRegisterCmd(opts),
		newLookupCmd(opts),
		newMetagameCmd(opts),
		newTopCardsCmd(opts),
	)
	return root
}

// app holds the components shared by every subcommand.
type app struct {
	Config  *config.AppConfig
	Logger  logger.Logger
	Handler *discord.Handler
	NTP     *clock.NTPClock
}

func build(opts *rootOptions) (*app, error) {
	cfg, err := config.LoadWithDefaults(opts.configFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	httpClient := transport.New(cfg.Transport)

	cards := cardsearch.New(cardsearch.Params{
		BaseURL:    cfg.CardSearch.BaseURL,
		UserAgent:  cfg.CardSearch.UserAgent,
		HTTPClient: httpClient,
	})
	meta := metaClient.New(metaClient.Params{
		BaseURL:    cfg.Metagame.BaseURL,
		UserAgent:  cfg.Metagame.UserAgent,
		HTTPClient: httpClient,
	})

	var (
		replyClock clock.Clock = clock.System()
		ntpClock   *clock.NTPClock
	)
	if cfg.Clock.NTPServer != "" {
		ntpClock = clock.NewNTP(clock.NTPParams{Config: cfg.Clock, Logger: appLogger})
		replyClock = ntpClock
	}

	handler := discord.NewHandler(discord.HandlerParams{
		Cards:    cards,
		Metagame: meta,
		Links:    metagame.DefaultLinks(),
		Clock:    replyClock,
	})

	return &app{
		Config:  cfg,
		Logger:  appLogger,
		Handler: handler,
		NTP:     ntpClock,
	}, nil
}

func requireDiscord(cfg *config.AppConfig) error {
	if cfg.Discord.Token == "" {
		return fmt.Errorf("%s environment variable or discord.token config required", config.EnvDiscordToken)
	}
	return nil
}

func requireCardSearch(cfg *config.AppConfig) error {
	if cfg.CardSearch.BaseURL == "" {
		return fmt.Errorf("%s environment variable or cardsearch.base_url config required", config.EnvSearchAPI)
	}
	return nil
}
