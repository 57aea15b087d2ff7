// Package query decides how a free-text card query should be looked up.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupKind selects the card-data endpoint used for a query.
type LookupKind string

const (
	Password LookupKind = "password"
	KonamiID LookupKind = "kid"
	Name     LookupKind = "name"
)

// konamiIDPrefix marks a query as a Konami ID when followed by digits.
const konamiIDPrefix = "#"

// nanToken never counts as numeric, whatever the parser says.
const nanToken = "NaN"

// ClassifiedQuery is the lookup strategy derived from one user input.
type ClassifiedQuery struct {
	Kind LookupKind
	Key  string
}

func (k LookupKind) String() string {
	switch k {
	case Password:
		return "Password"
	case KonamiID:
		return "Konami ID"
	case Name:
		return "Name"
	default:
		return string(k)
	}
}

// ParseLookupKind validates an explicit kind supplied by a user.
func ParseLookupKind(s string) (LookupKind, error) {
	switch k := LookupKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Password, KonamiID, Name:
		return k, nil
	default:
		return "", fmt.Errorf("query: unknown lookup kind %q", s)
	}
}

// Classify picks a lookup kind for raw. Canonical integers are passwords,
// "#" followed by a canonical integer is a Konami ID, and anything else
// is searched by name with the input left untouched.
func Classify(raw string) ClassifiedQuery {
	if isCanonicalInteger(raw) {
		return ClassifiedQuery{Kind: Password, Key: raw}
	}
	if rest, ok := strings.CutPrefix(raw, konamiIDPrefix); ok && isCanonicalInteger(rest) {
		return ClassifiedQuery{Kind: KonamiID, Key: rest}
	}
	return ClassifiedQuery{Kind: Name, Key: raw}
}

// Resolve uses explicit verbatim when set and falls back to Classify.
func Resolve(raw string, explicit LookupKind) ClassifiedQuery {
	if explicit != "" {
		return ClassifiedQuery{Kind: explicit, Key: raw}
	}
	return Classify(raw)
}

// isCanonicalInteger reports whether s survives an integer parse and
// re-serialization unchanged. Signs, whitespace and leading zeros fail.
// The parse is exact over the whole int64 range, so digit strings past
// 2^53 still qualify; anything above math.MaxInt64 does not.
func isCanonicalInteger(s string) bool {
	if s == "" || s == nanToken {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatInt(n, 10) == s
}
