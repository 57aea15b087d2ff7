package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bastionbot/bastion/apierror"
	"github.com/bastionbot/bastion/clock"
	"github.com/bastionbot/bastion/metagame"
	metaClient "github.com/bastionbot/bastion/metagame/client"
	"github.com/bastionbot/bastion/metrics"
	"github.com/bastionbot/bastion/models"
	"github.com/bastionbot/bastion/query"
)

type lookupCall struct {
	kind query.LookupKind
	key  string
}

type fakeCards struct {
	card  *models.Card
	err   error
	calls []lookupCall
}

func (f *fakeCards) Lookup(_ context.Context, kind query.LookupKind, key string) (*models.Card, error) {
	f.calls = append(f.calls, lookupCall{kind: kind, key: key})
	return f.card, f.err
}

type fakeMetagame struct {
	tops   *models.TopStrategies
	cards  *models.TopCards
	usage  []models.RankedCardUsage
	tiers  []models.RankedTier
	err    error
	region string
	format metaClient.TopCardsFormat
	window metaClient.DateWindow
}

func (f *fakeMetagame) TournamentTops(_ context.Context, region string) (*models.TopStrategies, error) {
	f.region = region
	return f.tops, f.err
}

func (f *fakeMetagame) CardUsageByFormat(_ context.Context, format metaClient.TopCardsFormat, window metaClient.DateWindow) (*models.TopCards, error) {
	f.format, f.window = format, window
	return f.cards, f.err
}

func (f *fakeMetagame) RankedCardUsage(context.Context) ([]models.RankedCardUsage, error) {
	return f.usage, f.err
}

func (f *fakeMetagame) RankedTierList(context.Context) ([]models.RankedTier, error) {
	return f.tiers, f.err
}

type fakeResponder struct {
	deferred  bool
	ephemeral bool
	edits     []Reply
	deferErr  error
	editErr   error
}

func (r *fakeResponder) Defer(ephemeral bool) error {
	r.deferred = true
	r.ephemeral = ephemeral
	return r.deferErr
}

func (r *fakeResponder) Edit(reply Reply) error {
	r.edits = append(r.edits, reply)
	return r.editErr
}

var requestedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(cards *fakeCards, meta *fakeMetagame) *Handler {
	return NewHandler(HandlerParams{
		Cards:    cards,
		Metagame: meta,
		Clock:    clock.Fixed(requestedAt.Add(250 * time.Millisecond)),
	})
}

func int64Ptr(v int64) *int64 { return &v }

func TestHandleLookupFound(t *testing.T) {
	cards := &fakeCards{card: &models.Card{
		Name:     models.LocalizedName{EN: "Dark Magician"},
		Password: int64Ptr(46986414),
		KonamiID: int64Ptr(4041),
	}}
	h := newTestHandler(cards, &fakeMetagame{})
	r := &fakeResponder{}

	result, err := h.Handle(context.Background(), Request{
		Command:   commandID,
		Options:   map[string]string{optionInput: "46986414"},
		CreatedAt: requestedAt,
	}, r)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if !r.deferred || !r.ephemeral {
		t.Errorf("expected ephemeral defer, got deferred=%v ephemeral=%v", r.deferred, r.ephemeral)
	}
	if diff := cmp.Diff([]lookupCall{{kind: query.Password, key: "46986414"}}, cards.calls, cmp.AllowUnexported(lookupCall{})); diff != "" {
		t.Errorf("lookup calls (-want +got):\n%s", diff)
	}
	want := Result{LatencyMS: 250, Outcome: metrics.OutcomeOK}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}
	if len(r.edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(r.edits))
	}
	if diff := cmp.Diff(CardReply(*cards.card), r.edits[0]); diff != "" {
		t.Errorf("reply (-want +got):\n%s", diff)
	}
}

func TestHandleLookupClassification(t *testing.T) {
	tests := []struct {
		name     string
		options  map[string]string
		wantCall lookupCall
	}{
		{
			name:     "konami id",
			options:  map[string]string{optionInput: "#4041"},
			wantCall: lookupCall{kind: query.KonamiID, key: "4041"},
		},
		{
			name:     "name",
			options:  map[string]string{optionInput: "Dark Magician"},
			wantCall: lookupCall{kind: query.Name, key: "Dark Magician"},
		},
		{
			name:     "explicit kind keeps input",
			options:  map[string]string{optionInput: "#4041", optionType: "name"},
			wantCall: lookupCall{kind: query.Name, key: "#4041"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := &fakeCards{}
			h := newTestHandler(cards, &fakeMetagame{})
			if _, _, err := h.Build(context.Background(), Request{Command: commandID, Options: tt.options}); err != nil {
				t.Fatalf("Build: %v", err)
			}
			if len(cards.calls) != 1 || cards.calls[0] != tt.wantCall {
				t.Errorf("calls = %+v, want [%+v]", cards.calls, tt.wantCall)
			}
		})
	}
}

func TestHandleLookupNotFound(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{})
	r := &fakeResponder{}

	result, err := h.Handle(context.Background(), Request{
		Command:   commandID,
		Options:   map[string]string{optionInput: "Nonexistent"},
		CreatedAt: requestedAt,
	}, r)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if result.Outcome != metrics.OutcomeNotFound {
		t.Errorf("outcome = %q, want %q", result.Outcome, metrics.OutcomeNotFound)
	}
	if got := r.edits[0].Content; got != "Could not find a card matching `Nonexistent`!" {
		t.Errorf("content = %q", got)
	}
}

func TestHandleLookupNotFoundShowsKonamiID(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{})

	reply, outcome, err := h.Lookup(context.Background(), "#4007", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if outcome != metrics.OutcomeNotFound {
		t.Errorf("outcome = %q", outcome)
	}
	if want := "Could not find a card matching `4007`!"; reply.Content != want {
		t.Errorf("content = %q, want %q", reply.Content, want)
	}
}

func TestHandleUpstreamFailure(t *testing.T) {
	upstream := &apierror.Error{Kind: apierror.KindService, Service: "cardsearch", StatusCode: 500, Message: "boom"}
	h := newTestHandler(&fakeCards{err: upstream}, &fakeMetagame{})
	r := &fakeResponder{}

	result, err := h.Handle(context.Background(), Request{
		Command:   commandID,
		Options:   map[string]string{optionInput: "1"},
		CreatedAt: requestedAt,
	}, r)
	if !apierror.IsService(err) {
		t.Fatalf("expected service error, got %v", err)
	}
	if result.Outcome != metrics.OutcomeError {
		t.Errorf("outcome = %q, want %q", result.Outcome, metrics.OutcomeError)
	}
	if len(r.edits) != 1 || r.edits[0].Content != FailureReply().Content {
		t.Errorf("expected failure reply, got %+v", r.edits)
	}
	if strings.Contains(r.edits[0].Content, "boom") {
		t.Error("failure reply leaks upstream message")
	}
}

func TestHandleDeferFailure(t *testing.T) {
	cards := &fakeCards{}
	h := newTestHandler(cards, &fakeMetagame{})
	r := &fakeResponder{deferErr: errors.New("unknown interaction")}

	result, err := h.Handle(context.Background(), Request{Command: commandID, Options: map[string]string{optionInput: "1"}}, r)
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Outcome != metrics.OutcomeError {
		t.Errorf("outcome = %q", result.Outcome)
	}
	if len(cards.calls) != 0 || len(r.edits) != 0 {
		t.Error("expected no work after failed defer")
	}
}

func TestHandleEditFailure(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{})
	r := &fakeResponder{editErr: errors.New("rate limited")}

	result, err := h.Handle(context.Background(), Request{
		Command:   commandID,
		Options:   map[string]string{optionInput: "1"},
		CreatedAt: requestedAt,
	}, r)
	if err == nil {
		t.Fatal("expected error")
	}
	if result.Outcome != metrics.OutcomeError || result.LatencyMS != 250 {
		t.Errorf("result = %+v", result)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{})
	_, err := h.Handle(context.Background(), Request{Command: "nope"}, &fakeResponder{})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestHandleMetagameTops(t *testing.T) {
	meta := &fakeMetagame{tops: &models.TopStrategies{
		Archetypes: []models.Archetype{
			{Name: "Snake-Eye", Quantity: 50, TierPage: "/snake-eye"},
			{Name: "Tenpai Dragon", Quantity: 40, TierPage: "/tenpai"},
			{Name: "Rare", Quantity: 3, TierPage: "/rare"},
		},
		Format:          "TCG",
		DateCutoffStart: "2024-01-01",
		DateCutoffEnd:   "2024-03-01",
		Total:           100,
	}}
	h := newTestHandler(&fakeCards{}, meta)
	r := &fakeResponder{}

	result, err := h.Handle(context.Background(), Request{
		Command:   commandMetagame,
		Options:   map[string]string{optionRegion: "TCG"},
		CreatedAt: requestedAt,
	}, r)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if r.ephemeral {
		t.Error("metagame replies should be public")
	}
	if meta.region != "TCG" {
		t.Errorf("region = %q", meta.region)
	}
	if result.Outcome != metrics.OutcomeOK {
		t.Errorf("outcome = %q", result.Outcome)
	}

	want := Reply{
		Title: "Top TCG strategies",
		Description: "50.00% [Snake-Eye](https://ygoprodeck.com/snake-eye?utm_source=bastion)\n" +
			"40.00% [Tenpai Dragon](https://ygoprodeck.com/tenpai?utm_source=bastion)\n" +
			"3.00% Other",
		URL:    "https://ygoprodeck.com/tournaments/top-archetypes/?utm_source=bastion#TCG/All/Format/NA/",
		Footer: "YGOPRODECK data 2024-01-01 to 2024-03-01",
		Image:  "https://dawnbrandbots.github.io/ygoprodeck-e2e-test/top-chart-tcg.png",
	}
	if diff := cmp.Diff(want, r.edits[0]); diff != "" {
		t.Errorf("reply (-want +got):\n%s", diff)
	}
}

func TestHandleMetagameZeroTotal(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{tops: &models.TopStrategies{Format: "OCG"}})
	r := &fakeResponder{}

	_, err := h.Handle(context.Background(), Request{Command: commandMetagame, Options: map[string]string{optionRegion: "OCG"}}, r)
	if !errors.Is(err, metagame.ErrZeroTotal) {
		t.Errorf("expected ErrZeroTotal, got %v", err)
	}
	if r.edits[0].Content != FailureReply().Content {
		t.Errorf("expected failure reply, got %+v", r.edits[0])
	}
}

func TestHandleMetagameRanked(t *testing.T) {
	meta := &fakeMetagame{
		usage: []models.RankedCardUsage{{Name: "Ash Blossom", WinRatio: 0.5123, DuelCount: 900, Season: 30}},
		tiers: []models.RankedTier{
			{Tier: 1, Season: 30, ArchetypeName: "Snake-Eye", WinRatio: "0.55", RankWeightedScore: 12.5, AverageTurnCount: "7.1", MedianTurnCount: "7"},
			{Tier: 2, Season: 30, ArchetypeName: "Labrynth", WinRatio: "0.51", RankWeightedScore: 8},
		},
	}
	h := newTestHandler(&fakeCards{}, meta)

	usage, _, err := h.Build(context.Background(), Request{Command: commandMetagame, Options: map[string]string{optionRegion: regionRankedUsage}})
	if err != nil {
		t.Fatalf("ranked usage: %v", err)
	}
	if diff := cmp.Diff([]Field{{Name: "Ash Blossom", Value: "51.23% wins in 900 duels"}}, usage.Fields); diff != "" {
		t.Errorf("usage fields (-want +got):\n%s", diff)
	}
	if usage.Footer != "YGOPRODECK data for season 30" {
		t.Errorf("usage footer = %q", usage.Footer)
	}

	tiers, _, err := h.Build(context.Background(), Request{Command: commandMetagame, Options: map[string]string{optionRegion: regionRankedTiers}})
	if err != nil {
		t.Fatalf("tier list: %v", err)
	}
	wantFields := []Field{
		{Name: "Tier 1", Value: "- Snake-Eye WR: 0.55 (WS: 12.5)\n"},
		{Name: "Tier 2", Value: "- Labrynth WR: 0.51 (WS: 8)\n"},
	}
	if diff := cmp.Diff(wantFields, tiers.Fields); diff != "" {
		t.Errorf("tier fields (-want +got):\n%s", diff)
	}
	if tiers.Footer != "YGOPRODECK weighted scores for season 30.\nMean turns: 7.1. Median turns: 7" {
		t.Errorf("tier footer = %q", tiers.Footer)
	}
	if tiers.URL != "https://ygoprodeck.com/master-duel/tier-list/?utm_source=bastion" {
		t.Errorf("tier url = %q", tiers.URL)
	}
}

func TestHandleMetagameEmptyTierList(t *testing.T) {
	h := newTestHandler(&fakeCards{}, &fakeMetagame{})
	reply, outcome, err := h.Build(context.Background(), Request{Command: commandMetagame, Options: map[string]string{optionRegion: regionRankedTiers}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if outcome != metrics.OutcomeOK || reply.Footer != "" || len(reply.Fields) != 0 {
		t.Errorf("unexpected reply %+v (%s)", reply, outcome)
	}
}

func TestHandleTopCards(t *testing.T) {
	meta := &fakeMetagame{cards: &models.TopCards{
		Keys: models.TopCardsKeys{Format: "Tournament Meta Decks", DateStart: "2024-01-01", DateEnd: "2024-03-01"},
		Results: []models.TopCard{
			{Name: "Ash Blossom & Joyous Spring", PrettyURL: "Ash-Blossom-&-Joyous-Spring", DeckCount: 120, AvgCardPerDeck: "2.8", Percentage: "91.5"},
		},
	}}
	h := newTestHandler(&fakeCards{}, meta)

	reply, _, err := h.Build(context.Background(), Request{
		Command: commandTopCards,
		Options: map[string]string{optionFormat: "tournament meta decks", optionWindow: "banlist"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if meta.format != metaClient.FormatTCG || meta.window != metaClient.WindowBanlist {
		t.Errorf("queried %q / %q", meta.format, meta.window)
	}
	want := "91.5% [Ash Blossom & Joyous Spring](https://ygoprodeck.com/card/Ash-Blossom-&-Joyous-Spring?utm_source=bastion) (2.8 per deck in 120 decks)"
	if reply.Description != want {
		t.Errorf("description = %q, want %q", reply.Description, want)
	}
}

func TestHandleTopCardsDefaultsAndValidation(t *testing.T) {
	meta := &fakeMetagame{cards: &models.TopCards{}}
	h := newTestHandler(&fakeCards{}, meta)

	if _, _, err := h.TopCards(context.Background(), string(metaClient.FormatMasterDuel), ""); err != nil {
		t.Fatalf("TopCards: %v", err)
	}
	if meta.window != metaClient.WindowFormat {
		t.Errorf("window = %q, want %q", meta.window, metaClient.WindowFormat)
	}

	if _, _, err := h.TopCards(context.Background(), "Goat", ""); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, _, err := h.TopCards(context.Background(), string(metaClient.FormatTCG), "0 day"); err == nil {
		t.Error("expected error for invalid window")
	}
}
