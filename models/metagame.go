package models

// Archetype is one row of the tournament top-archetypes report.
type Archetype struct {
	Name     string `json:"arch_1"`
	Quantity int    `json:"quantity"`
	ImageID  int64  `json:"arch_1_img"`
	TierPage string `json:"archetypeTierPage"`
}

// TopStrategies is the tournament top-archetypes report for a region.
// Total counts every topping deck and may exceed the sum of quantities.
type TopStrategies struct {
	Archetypes      []Archetype `json:"archetypes"`
	Format          string      `json:"format"`
	DateCutoffStart string      `json:"dateCutoffStart"`
	DateCutoffEnd   string      `json:"dateCutoffEnd"`
	TierMin         int         `json:"tierMin"`
	TierMax         int         `json:"tierMax"`
	Total           int         `json:"total"`
}

// TopCardsKeys echoes the query a TopCards report was computed for.
type TopCardsKeys struct {
	Format    string `json:"format"`
	DateStart string `json:"dateStart"`
	DateEnd   string `json:"dateEnd"`
}

// TopCard is card usage across decks of a format. Numeric fields are
// served as strings and kept that way.
type TopCard struct {
	Name             string `json:"name"`
	CardNumber       int64  `json:"card_number"`
	PrettyURL        string `json:"pretty_url"`
	TotalCardCount   string `json:"total_card_count"`
	DeckCount        int    `json:"deck_count"`
	AvgCardPerDeck   string `json:"avg_card_per_deck"`
	Percentage       string `json:"percentage"`
	PercentPlayedAt1 string `json:"percent_played_at_1"`
	PercentPlayedAt2 string `json:"percent_played_at_2"`
	PercentPlayedAt3 string `json:"percent_played_at_3"`
}

// TopCards is the card usage report for a format and date window.
type TopCards struct {
	Keys    TopCardsKeys `json:"keys"`
	Results []TopCard    `json:"results"`
}

// RankedCardUsage is one card from the Master Duel ranked usage report.
type RankedCardUsage struct {
	Name      string  `json:"name"`
	ID        int64   `json:"id"`
	WinCount  int     `json:"win_count"`
	LossCount int     `json:"loss_count"`
	WinRatio  float64 `json:"win_ratio"`
	DuelCount int     `json:"duel_count"`
	Placement int     `json:"placement"`
	Season    int     `json:"season"`
	GameMode  string  `json:"game_mode"`
	PrettyURL string  `json:"pretty_url"`
	Rarity    string  `json:"rarity"`
}

// RankedTier is one archetype from the Master Duel ranked tier list.
// Entries of one response share a season.
type RankedTier struct {
	Tier              int     `json:"tier"`
	Season            int     `json:"season"`
	GameMode          string  `json:"game_mode"`
	ArchetypeName     string  `json:"archetype_name"`
	WinCount          int     `json:"win_count"`
	LossCount         int     `json:"loss_count"`
	WinRatio          string  `json:"win_ratio"`
	DuelCount         int     `json:"duel_count"`
	RankWeightedScore float64 `json:"rank_weighted_score"`
	AverageTurnCount  string  `json:"average_turn_count"`
	MedianTurnCount   string  `json:"median_turn_count"`
}
