// Package metagame turns YGOPRODECK statistics into display groupings.
package metagame

import (
	"errors"
	"fmt"
	"math"

	"github.com/bastionbot/bastion/models"
)

// OtherLabel names the share that absorbs the long tail.
const OtherLabel = "Other"

// tailDivisor: an archetype keeps its own line iff quantity*tailDivisor >= total,
// i.e. a share of at least 1/32.
const tailDivisor = 32

// ErrZeroTotal is returned when shares are requested against a zero total.
var ErrZeroTotal = errors.New("metagame: total is zero")

// Share is one line of a tournament breakdown.
type Share struct {
	Label      string
	Percentage float64
	Link       string
}

// TierGroup holds the ranked entries that share a tier.
type TierGroup struct {
	Tier    int
	Members []models.RankedTier
}

// BucketLongTail converts archetype quantities into percentage shares.
// Archetypes at or above the 1/32 threshold keep their input order; the
// rest are summed into a trailing Other share, which is always present.
// link resolves an archetype tier page to a URL and may be nil.
func BucketLongTail(tops models.TopStrategies, link func(path string) string) ([]Share, error) {
	if tops.Total == 0 {
		return nil, fmt.Errorf("bucket %d archetypes: %w", len(tops.Archetypes), ErrZeroTotal)
	}

	shares := make([]Share, 0, len(tops.Archetypes)+1)
	other := 0
	for _, arch := range tops.Archetypes {
		if arch.Quantity*tailDivisor < tops.Total {
			other += arch.Quantity
			continue
		}
		share := Share{
			Label:      arch.Name,
			Percentage: percentage(arch.Quantity, tops.Total),
		}
		if link != nil {
			share.Link = link(arch.TierPage)
		}
		shares = append(shares, share)
	}

	shares = append(shares, Share{
		Label:      OtherLabel,
		Percentage: percentage(other, tops.Total),
	})
	return shares, nil
}

// GroupTiers groups entries by tier. Groups appear in order of each
// tier's first appearance and members keep their relative order.
func GroupTiers(entries []models.RankedTier) []TierGroup {
	groups := make([]TierGroup, 0)
	index := make(map[int]int)
	for _, entry := range entries {
		i, ok := index[entry.Tier]
		if !ok {
			i = len(groups)
			index[entry.Tier] = i
			groups = append(groups, TierGroup{Tier: entry.Tier})
		}
		groups[i].Members = append(groups[i].Members, entry)
	}
	return groups
}

// percentage is part/total*100 rounded to two decimals.
func percentage(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
