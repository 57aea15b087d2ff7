package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bastionbot/bastion/apierror"
	"github.com/bastionbot/bastion/models"
)

var _ Client = (*DefaultClient)(nil)

const (
	serviceName = "ygoprodeck"

	topArchetypesPath = "/api/tournament/getTopArchetypes.php"
	formatUsagePath   = "/api/top/getFormat.php"
	rankedUsagePath   = "/api/master-duel/card-usage.php"
	rankedTierPath    = "/api/master-duel/tier-list.php"
)

// DefaultClient is the YGOPRODECK statistics client. It holds no state
// between calls.
type DefaultClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

type Params struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// New creates a YGOPRODECK client from the given params.
func New(p Params) *DefaultClient {
	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DefaultClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: p.UserAgent,
		http:      p.HTTPClient,
	}
}

func (c *DefaultClient) TournamentTops(ctx context.Context, region string) (*models.TopStrategies, error) {
	form := url.Values{}
	form.Set("format", region)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+topArchetypesPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out models.TopStrategies
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *DefaultClient) CardUsageByFormat(ctx context.Context, format TopCardsFormat, window DateWindow) (*models.TopCards, error) {
	query := url.Values{}
	query.Set("format", string(format))
	query.Set("dateStart", string(window))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+formatUsagePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck: build request: %w", err)
	}

	var out models.TopCards
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *DefaultClient) RankedCardUsage(ctx context.Context) ([]models.RankedCardUsage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+rankedUsagePath, nil)
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck: build request: %w", err)
	}

	var out []models.RankedCardUsage
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DefaultClient) RankedTierList(ctx context.Context) ([]models.RankedTier, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+rankedTierPath, nil)
	if err != nil {
		return nil, fmt.Errorf("ygoprodeck: build request: %w", err)
	}

	var out []models.RankedTier
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do sends req once and decodes a 2xx JSON body into out.
func (c *DefaultClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ygoprodeck: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return apierror.Service(serviceName, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierror.Malformed(serviceName, "decode "+req.URL.Path, err)
	}
	return nil
}
