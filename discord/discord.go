package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/bastionbot/bastion/logger"
	"github.com/bastionbot/bastion/metrics"
)

var _ Discord = (*DefaultDiscord)(nil)

// commandTimeout bounds upstream work for one interaction. Discord keeps
// deferred interactions editable for 15 minutes.
const commandTimeout = 30 * time.Second

type DefaultDiscord struct {
	session       *discordgo.Session
	guildID       string
	handler       *Handler
	logger        logger.Logger
	ctx           context.Context
	removeHandler func()
}

type Params struct {
	Config  Config
	Handler *Handler
	Logger  logger.Logger
}

func New(p Params) (*DefaultDiscord, error) {
	cfg := p.Config

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &DefaultDiscord{
		session: session,
		guildID: cfg.GuildID,
		handler: p.Handler,
		logger:  log,
		ctx:     context.Background(),
	}, nil
}

// RegisterCommands overwrites the application's slash commands. An empty
// guild ID registers them globally.
func (c *DefaultDiscord) RegisterCommands() error {
	me, err := c.session.User("@me")
	if err != nil {
		return fmt.Errorf("fetch application user: %w", err)
	}
	registered, err := c.session.ApplicationCommandBulkOverwrite(me.ID, c.guildID, Commands())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	c.logger.InfoW("registered commands", "count", len(registered), "guild_id", c.guildID)
	return nil
}

func (c *DefaultDiscord) Start(ctx context.Context) error {
	c.ctx = ctx
	c.removeHandler = c.session.AddHandler(c.onInteraction)
	c.session.AddHandlerOnce(func(_ *discordgo.Session, r *discordgo.Ready) {
		c.logger.InfoW("discord ready", "user", r.User.String(), "guilds", len(r.Guilds))
	})

	if err := c.session.Open(); err != nil {
		c.removeHandler()
		c.removeHandler = nil
		return fmt.Errorf("open discord connection: %w", err)
	}
	return nil
}

func (c *DefaultDiscord) Stop() error {
	if c.removeHandler != nil {
		c.removeHandler()
		c.removeHandler = nil
	}
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("close discord connection: %w", err)
	}
	return nil
}

func (c *DefaultDiscord) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	req := requestFromInteraction(i)
	log := c.logger.With("command", req.Command, "user", req.User, "interaction_id", i.ID)
	log.DebugW("handling command", "options", req.Options)

	ctx, cancel := context.WithTimeout(c.ctx, commandTimeout)
	defer cancel()

	result, err := c.handler.Handle(ctx, req, &interactionResponder{session: s, interaction: i.Interaction})
	metrics.ObserveCommand(req.Command, result.Outcome, result.LatencyMS)
	if err != nil {
		log.ErrorW("command failed", "outcome", result.Outcome, "error", err)
		return
	}
	log.InfoW("command handled", "outcome", result.Outcome, "latency_ms", result.LatencyMS)
}

// requestFromInteraction flattens a slash command interaction. The
// request time is decoded from the interaction snowflake.
func requestFromInteraction(i *discordgo.InteractionCreate) Request {
	data := i.ApplicationCommandData()

	req := Request{
		Command: data.Name,
		Options: make(map[string]string, len(data.Options)),
	}
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			req.Options[opt.Name] = opt.StringValue()
		}
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		req.User = i.Member.User.ID
	case i.User != nil:
		req.User = i.User.ID
	}

	if created, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		req.CreatedAt = created
	}
	return req
}

// interactionResponder replies to one interaction through its webhook.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *interactionResponder) Defer(ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return r.session.InteractionRespond(r.interaction, resp)
}

func (r *interactionResponder) Edit(reply Reply) error {
	content := reply.Content
	embeds := []*discordgo.MessageEmbed{}
	if reply.HasEmbed() {
		embeds = append(embeds, reply.Embed())
	}
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	})
	return err
}
