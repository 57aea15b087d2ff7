package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bastionbot/bastion/cardsearch"
	"github.com/bastionbot/bastion/metagame"
	"github.com/bastionbot/bastion/models"
	"github.com/bastionbot/bastion/timeutil"
)

// maxTopCards caps how many cards a top cards reply lists.
const maxTopCards = 20

// Latency is the reply latency in whole milliseconds, never negative.
func Latency(requested, replied time.Time) int64 {
	return timeutil.LatencyMS(requested, replied)
}

// CardReply describes a found card, with its Master Duel artwork as the
// thumbnail when the card has an English name.
func CardReply(card models.Card) Reply {
	return Reply{
		Title:     card.DisplayName(),
		Thumbnail: cardsearch.MasterDuelIllustrationURL(card),
		Fields: []Field{
			{Name: "Password", Value: card.PasswordString(), Inline: true},
			{Name: "Konami ID", Value: card.KonamiIDString(), Inline: true},
		},
		Ephemeral: true,
	}
}

// NotFoundReply tells the user nothing matched the looked-up key.
func NotFoundReply(key string) Reply {
	return Reply{
		Content:   fmt.Sprintf("Could not find a card matching `%s`!", key),
		Ephemeral: true,
	}
}

// FailureReply is shown when an upstream service misbehaves. Details stay
// in the logs.
func FailureReply() Reply {
	return Reply{
		Content: "Something went wrong while fetching that. Please try again later.",
	}
}

// TopsReply renders the tournament breakdown for region.
func TopsReply(links metagame.Links, region string, tops models.TopStrategies, shares []metagame.Share) Reply {
	lines := make([]string, 0, len(shares))
	for _, share := range shares {
		if share.Link != "" {
			lines = append(lines, fmt.Sprintf("%.2f%% [%s](%s)", share.Percentage, share.Label, share.Link))
		} else {
			lines = append(lines, fmt.Sprintf("%.2f%% %s", share.Percentage, share.Label))
		}
	}

	return Reply{
		Title:       fmt.Sprintf("Top %s strategies", tops.Format),
		Description: strings.Join(lines, "\n"),
		URL:         links.TopArchetypes(region),
		Footer:      fmt.Sprintf("YGOPRODECK data %s to %s", tops.DateCutoffStart, tops.DateCutoffEnd),
		Image:       links.TopChart(region),
	}
}

// TierListReply renders grouped ranked tiers, one field per tier.
func TierListReply(links metagame.Links, tiers []models.RankedTier, groups []metagame.TierGroup) Reply {
	reply := Reply{
		Title: "Master Duel Diamond+ tier list",
		URL:   links.RankedTierList(),
	}
	for _, group := range groups {
		var sb strings.Builder
		for _, s := range group.Members {
			fmt.Fprintf(&sb, "- %s WR: %s (WS: %s)\n", s.ArchetypeName, s.WinRatio, formatScore(s.RankWeightedScore))
		}
		reply.Fields = append(reply.Fields, Field{Name: fmt.Sprintf("Tier %d", group.Tier), Value: sb.String()})
	}
	if len(tiers) > 0 {
		first := tiers[0]
		reply.Footer = fmt.Sprintf("YGOPRODECK weighted scores for season %d.\nMean turns: %s. Median turns: %s",
			first.Season, first.AverageTurnCount, first.MedianTurnCount)
	}
	return reply
}

// RankedUsageReply renders Master Duel ranked card usage.
func RankedUsageReply(links metagame.Links, usage []models.RankedCardUsage) Reply {
	reply := Reply{
		Title: "Master Duel Diamond+ ranked card usage",
		URL:   links.RankedCardUsage(),
	}
	for _, card := range usage {
		reply.Fields = append(reply.Fields, Field{
			Name:  card.Name,
			Value: fmt.Sprintf("%.2f%% wins in %d duels", card.WinRatio*100, card.DuelCount),
		})
	}
	if len(usage) > 0 {
		reply.Footer = fmt.Sprintf("YGOPRODECK data for season %d", usage[0].Season)
	}
	return reply
}

// TopCardsReply lists the most played cards of a format, up to maxTopCards.
func TopCardsReply(links metagame.Links, cards models.TopCards) Reply {
	results := cards.Results
	if len(results) > maxTopCards {
		results = results[:maxTopCards]
	}

	lines := make([]string, 0, len(results))
	for _, card := range results {
		name := card.Name
		if link := links.Card(card.PrettyURL); link != "" {
			name = fmt.Sprintf("[%s](%s)", card.Name, link)
		}
		lines = append(lines, fmt.Sprintf("%s%% %s (%s per deck in %d decks)", card.Percentage, name, card.AvgCardPerDeck, card.DeckCount))
	}
	if len(lines) == 0 {
		lines = append(lines, "No decks recorded in this window.")
	}

	return Reply{
		Title:       fmt.Sprintf("Top cards in %s", cards.Keys.Format),
		Description: strings.Join(lines, "\n"),
		URL:         links.TopCards(),
		Footer:      fmt.Sprintf("YGOPRODECK data %s to %s", cards.Keys.DateStart, cards.Keys.DateEnd),
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
