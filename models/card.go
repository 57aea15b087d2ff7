package models

import "strconv"

// LocalizedName holds a card name per language code.
type LocalizedName struct {
	EN string `json:"en"`
	JA string `json:"ja,omitempty"`
	KO string `json:"ko,omitempty"`
	DE string `json:"de,omitempty"`
	FR string `json:"fr,omitempty"`
	IT string `json:"it,omitempty"`
	PT string `json:"pt,omitempty"`
}

// Card is the record served by the card-data service.
type Card struct {
	Name     LocalizedName `json:"name"`
	Password *int64        `json:"password"`
	KonamiID *int64        `json:"konami_id"`
}

// DisplayName prefers the English name and falls back to Japanese.
func (c Card) DisplayName() string {
	if c.Name.EN != "" {
		return c.Name.EN
	}
	return c.Name.JA
}

// PasswordString renders the password, or "none" for cards without one.
func (c Card) PasswordString() string {
	return optionalID(c.Password)
}

// KonamiIDString renders the Konami ID, or "none" when unassigned.
func (c Card) KonamiIDString() string {
	return optionalID(c.KonamiID)
}

func optionalID(id *int64) string {
	if id == nil {
		return "none"
	}
	return strconv.FormatInt(*id, 10)
}
