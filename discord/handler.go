package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bastionbot/bastion/cardsearch"
	"github.com/bastionbot/bastion/clock"
	"github.com/bastionbot/bastion/metagame"
	metaClient "github.com/bastionbot/bastion/metagame/client"
	"github.com/bastionbot/bastion/metrics"
	"github.com/bastionbot/bastion/query"
)

// ErrUnknownCommand is returned for commands the handler does not serve.
var ErrUnknownCommand = errors.New("unknown command")

// Handler turns command requests into replies.
type Handler struct {
	cards    cardsearch.Client
	metagame metaClient.Client
	links    metagame.Links
	clock    clock.Clock
}

type HandlerParams struct {
	Cards    cardsearch.Client
	Metagame metaClient.Client
	Links    metagame.Links
	Clock    clock.Clock
}

func NewHandler(p HandlerParams) *Handler {
	c := p.Clock
	if c == nil {
		c = clock.System()
	}
	links := p.Links
	if links == (metagame.Links{}) {
		links = metagame.DefaultLinks()
	}
	return &Handler{
		cards:    p.Cards,
		metagame: p.Metagame,
		links:    links,
		clock:    c,
	}
}

// Handle defers the interaction, builds the reply and edits it in.
// Upstream failures are shown to the user as a generic failure and
// returned alongside any transport error.
func (h *Handler) Handle(ctx context.Context, req Request, r Responder) (Result, error) {
	if err := r.Defer(req.Command == commandID); err != nil {
		return Result{Outcome: metrics.OutcomeError}, fmt.Errorf("defer %s: %w", req.Command, err)
	}

	reply, outcome, buildErr := h.Build(ctx, req)
	if buildErr != nil {
		reply = FailureReply()
		reply.Ephemeral = req.Command == commandID
		outcome = metrics.OutcomeError
	}

	replied := h.clock.Now()
	editErr := r.Edit(reply)
	if editErr != nil {
		editErr = fmt.Errorf("edit %s reply: %w", req.Command, editErr)
		outcome = metrics.OutcomeError
	}

	return Result{
		LatencyMS: Latency(req.CreatedAt, replied),
		Outcome:   outcome,
	}, errors.Join(buildErr, editErr)
}

// Build produces the reply for req without touching Discord.
func (h *Handler) Build(ctx context.Context, req Request) (Reply, string, error) {
	switch req.Command {
	case commandID:
		return h.Lookup(ctx, req.Options[optionInput], req.Options[optionType])
	case commandMetagame:
		return h.Metagame(ctx, req.Options[optionRegion])
	case commandTopCards:
		return h.TopCards(ctx, req.Options[optionFormat], req.Options[optionWindow])
	default:
		return Reply{}, metrics.OutcomeError, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
}

// Lookup identifies a card. kind may be empty to classify input.
func (h *Handler) Lookup(ctx context.Context, input, kind string) (Reply, string, error) {
	var explicit query.LookupKind
	if kind != "" {
		k, err := query.ParseLookupKind(kind)
		if err != nil {
			return Reply{}, metrics.OutcomeError, err
		}
		explicit = k
	}

	q := query.Resolve(input, explicit)
	card, err := h.cards.Lookup(ctx, q.Kind, q.Key)
	if err != nil {
		return Reply{}, metrics.OutcomeError, fmt.Errorf("lookup %s %q: %w", q.Kind, q.Key, err)
	}
	if card == nil {
		return NotFoundReply(q.Key), metrics.OutcomeNotFound, nil
	}
	return CardReply(*card), metrics.OutcomeOK, nil
}

// Metagame reports tournament or ranked statistics for region.
func (h *Handler) Metagame(ctx context.Context, region string) (Reply, string, error) {
	switch region {
	case regionRankedUsage:
		usage, err := h.metagame.RankedCardUsage(ctx)
		if err != nil {
			return Reply{}, metrics.OutcomeError, fmt.Errorf("ranked card usage: %w", err)
		}
		return RankedUsageReply(h.links, usage), metrics.OutcomeOK, nil
	case regionRankedTiers:
		tiers, err := h.metagame.RankedTierList(ctx)
		if err != nil {
			return Reply{}, metrics.OutcomeError, fmt.Errorf("ranked tier list: %w", err)
		}
		return TierListReply(h.links, tiers, metagame.GroupTiers(tiers)), metrics.OutcomeOK, nil
	case "":
		return Reply{}, metrics.OutcomeError, errors.New("metagame: region is required")
	}

	tops, err := h.metagame.TournamentTops(ctx, region)
	if err != nil {
		return Reply{}, metrics.OutcomeError, fmt.Errorf("tournament tops %s: %w", region, err)
	}
	shares, err := metagame.BucketLongTail(*tops, h.links.Page)
	if err != nil {
		return Reply{}, metrics.OutcomeError, fmt.Errorf("tournament tops %s: %w", region, err)
	}
	return TopsReply(h.links, region, *tops, shares), metrics.OutcomeOK, nil
}

// TopCards reports card usage for a format. window defaults to the
// current format.
func (h *Handler) TopCards(ctx context.Context, format, window string) (Reply, string, error) {
	f, err := metaClient.ParseTopCardsFormat(format)
	if err != nil {
		return Reply{}, metrics.OutcomeError, err
	}
	w := metaClient.WindowFormat
	if window != "" {
		if w, err = metaClient.ParseDateWindow(window); err != nil {
			return Reply{}, metrics.OutcomeError, err
		}
	}

	cards, err := h.metagame.CardUsageByFormat(ctx, f, w)
	if err != nil {
		return Reply{}, metrics.OutcomeError, fmt.Errorf("top cards %s: %w", f, err)
	}
	return TopCardsReply(h.links, *cards), metrics.OutcomeOK, nil
}
