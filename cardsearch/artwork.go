package cardsearch

import (
	"net/url"
	"strings"

	"github.com/bastionbot/bastion/models"
)

const (
	yugipediaRedirectURL = "https://yugipedia.com/wiki/Special:Redirect/file/"
	masterDuelArtSuffix  = "-MADU-EN-VG-artwork.png"
	utmSource            = "bastion"
)

// YugipediaFileRedirect links a Yugipedia file through its redirect page.
func YugipediaFileRedirect(file string) string {
	return yugipediaRedirectURL + url.PathEscape(file) + "?utm_source=" + utmSource
}

// MasterDuelIllustration is the Yugipedia file name of the Master Duel
// artwork, built from the English name with everything but ASCII letters
// and digits removed. It is empty for cards without an English name.
func MasterDuelIllustration(card models.Card) string {
	var sb strings.Builder
	for _, r := range card.Name.EN {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return sb.String() + masterDuelArtSuffix
}

// MasterDuelIllustrationURL links the Master Duel artwork, or returns ""
// when no file name can be built.
func MasterDuelIllustrationURL(card models.Card) string {
	file := MasterDuelIllustration(card)
	if file == "" {
		return ""
	}
	return YugipediaFileRedirect(file)
}
