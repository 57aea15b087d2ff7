package metagame

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	defaultSiteURL  = "https://ygoprodeck.com"
	defaultChartURL = "https://dawnbrandbots.github.io/ygoprodeck-e2e-test"
	utmSource       = "bastion"
)

// Links builds attributed URLs to the YGOPRODECK site.
type Links struct {
	SiteURL  string
	ChartURL string
}

// DefaultLinks points at the public YGOPRODECK site.
func DefaultLinks() Links {
	return Links{SiteURL: defaultSiteURL, ChartURL: defaultChartURL}
}

// Page resolves path against the site and tags it with utm_source.
// Unparseable paths yield an empty string.
func (l Links) Page(path string) string {
	u, err := url.Parse(strings.TrimRight(l.siteURL(), "/") + path)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("utm_source", utmSource)
	u.RawQuery = q.Encode()
	return u.String()
}

// TopArchetypes links the tournament breakdown page for a region.
func (l Links) TopArchetypes(region string) string {
	return fmt.Sprintf("%s/tournaments/top-archetypes/?utm_source=%s#%s/All/Format/NA/",
		strings.TrimRight(l.siteURL(), "/"), utmSource, region)
}

// TopChart is the pie chart image rendered for a region.
func (l Links) TopChart(region string) string {
	chartURL := l.ChartURL
	if chartURL == "" {
		chartURL = defaultChartURL
	}
	return fmt.Sprintf("%s/top-chart-%s.png", strings.TrimRight(chartURL, "/"), strings.ToLower(region))
}

// RankedCardUsage links the Master Duel ranked card usage page.
func (l Links) RankedCardUsage() string {
	return l.Page("/master-duel/card-usage/")
}

// RankedTierList links the Master Duel ranked tier list page.
func (l Links) RankedTierList() string {
	return l.Page("/master-duel/tier-list/")
}

// TopCards links the top cards page.
func (l Links) TopCards() string {
	return l.Page("/top/")
}

// Card links a card page by its pretty URL slug.
func (l Links) Card(prettyURL string) string {
	if prettyURL == "" {
		return ""
	}
	return l.Page("/card/" + url.PathEscape(prettyURL))
}

func (l Links) siteURL() string {
	if l.SiteURL == "" {
		return defaultSiteURL
	}
	return l.SiteURL
}
