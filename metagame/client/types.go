package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bastionbot/bastion/models"
	"github.com/bastionbot/bastion/timeutil"
)

// Client reads tournament and ranked statistics from YGOPRODECK.
type Client interface {
	TournamentTops(ctx context.Context, region string) (*models.TopStrategies, error)
	CardUsageByFormat(ctx context.Context, format TopCardsFormat, window DateWindow) (*models.TopCards, error)
	RankedCardUsage(ctx context.Context) ([]models.RankedCardUsage, error)
	RankedTierList(ctx context.Context) ([]models.RankedTier, error)
}

// TopCardsFormat names a deck pool for card usage statistics.
type TopCardsFormat string

const (
	FormatTCG        TopCardsFormat = "Tournament Meta Decks"
	FormatOCG        TopCardsFormat = "Tournament Meta Decks OCG"
	FormatOCGAsian   TopCardsFormat = "Tournament Meta Decks OCG (Asian-English)"
	FormatMasterDuel TopCardsFormat = "Master Duel Decks"
)

// Formats lists every TopCardsFormat in display order.
var Formats = []TopCardsFormat{FormatTCG, FormatOCG, FormatOCGAsian, FormatMasterDuel}

// ParseTopCardsFormat matches s against the known formats, ignoring case.
func ParseTopCardsFormat(s string) (TopCardsFormat, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("metagame: unknown format %q", s)
}

// DateWindow is the dateStart parameter: "format", "banlist" or "<n> day".
type DateWindow string

const (
	WindowFormat  DateWindow = "format"
	WindowBanlist DateWindow = "banlist"
)

// ParseDateWindow validates a date window string.
func ParseDateWindow(s string) (DateWindow, error) {
	s = strings.TrimSpace(s)
	switch DateWindow(s) {
	case WindowFormat, WindowBanlist:
		return DateWindow(s), nil
	}
	if days, ok := strings.CutSuffix(s, " day"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return DateWindow(s), nil
		}
	}
	return "", fmt.Errorf("metagame: invalid date window %q", s)
}

// Days builds a rolling window covering the last n days.
func Days(n int) DateWindow {
	return DateWindow(timeutil.DaysWindow(time.Duration(n) * 24 * time.Hour))
}
