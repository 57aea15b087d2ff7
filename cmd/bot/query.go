package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bastionbot/bastion/discord"
	metaClient "github.com/bastionbot/bastion/metagame/client"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "lookup <input>",
		Short: "Identify a card by password, Konami ID, or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(opts)
			if err != nil {
				return err
			}
			defer a.Logger.Sync()
			if err := requireCardSearch(a.Config); err != nil {
				return err
			}

			reply, _, err := a.Handler.Lookup(cmd.Context(), strings.Join(args, " "), kind)
			return printReply(cmd, reply, err)
		},
	}
	cmd.Flags().StringVar(&kind, "type", "", "lookup kind: password, kid, or name")
	return cmd
}

func newMetagameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metagame <region>",
		Short: "Show competitive strategies for TCG, OCG, OCG-AE, MD-CU, or MD-TL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(opts)
			if err != nil {
				return err
			}
			defer a.Logger.Sync()

			reply, _, err := a.Handler.Metagame(cmd.Context(), strings.ToUpper(args[0]))
			return printReply(cmd, reply, err)
		},
	}
}

func newTopCardsCmd(opts *rootOptions) *cobra.Command {
	var window string
	cmd := &cobra.Command{
		Use:   "topcards <format>",
		Short: "Show the most played cards in a deck pool",
		Long:  "Show the most played cards in a deck pool. Formats: " + formatList(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(opts)
			if err != nil {
				return err
			}
			defer a.Logger.Sync()

			reply, _, err := a.Handler.TopCards(cmd.Context(), strings.Join(args, " "), window)
			return printReply(cmd, reply, err)
		},
	}
	cmd.Flags().StringVar(&window, "window", string(metaClient.WindowFormat), `date window: format, banlist, or "<n> day"`)
	return cmd
}

func printReply(cmd *cobra.Command, reply discord.Reply, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), reply.Text())
	return err
}

func formatList() string {
	names := make([]string, 0, len(metaClient.Formats))
	for _, f := range metaClient.Formats {
		names = append(names, fmt.Sprintf("%q", string(f)))
	}
	return strings.Join(names, ", ")
}
