package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bastionbot/bastion/discord"
	"github.com/bastionbot/bastion/ops"
)

const shutdownTimeout = 30 * time.Second

func newRunCmd(opts *rootOptions) *cobra.Command {
	var register bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve slash commands until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build(opts)
			if err != nil {
				return err
			}
			defer a.Logger.Sync()
			return run(cmd.Context(), a, register)
		},
	}
	cmd.Flags().BoolVar(&register, "register", true, "overwrite slash commands on startup")
	return cmd
}

// run starts all components and runs the application until ctx is done.
func run(ctx context.Context, a *app, register bool) error {
	if err := requireDiscord(a.Config); err != nil {
		return err
	}
	if err := requireCardSearch(a.Config); err != nil {
		return err
	}

	bot, err := discord.New(discord.Params{
		Config:  a.Config.Discord,
		Handler: a.Handler,
		Logger:  a.Logger,
	})
	if err != nil {
		return err
	}

	if a.NTP != nil {
		if err := a.NTP.Start(ctx); err != nil {
			return fmt.Errorf("start ntp clock: %w", err)
		}
		defer a.NTP.Stop()
	}

	var opsServer *ops.Server
	if a.Config.Ops.Addr != "" {
		opsServer = ops.New(ops.Params{Config: a.Config.Ops, Logger: a.Logger})
		opsServer.Start()
	}

	if err := bot.Start(ctx); err != nil {
		return fmt.Errorf("start discord client: %w", err)
	}
	if register {
		if err := bot.RegisterCommands(); err != nil {
			a.Logger.ErrorW("register commands", "error", err)
		}
	}
	a.Logger.InfoW("bastion running")

	<-ctx.Done()
	a.Logger.InfoW("shutting down")

	if err := bot.Stop(); err != nil {
		a.Logger.ErrorW("stop discord client", "error", err)
	}

	if opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown ops server: %w", err)
		}
	}
	return nil
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Overwrite the bot's slash commands and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := build(opts)
			if err != nil {
				return err
			}
			defer a.Logger.Sync()
			if err := requireDiscord(a.Config); err != nil {
				return err
			}

			bot, err := discord.New(discord.Params{
				Config:  a.Config.Discord,
				Handler: a.Handler,
				Logger:  a.Logger,
			})
			if err != nil {
				return err
			}
			return bot.RegisterCommands()
		},
	}
}
