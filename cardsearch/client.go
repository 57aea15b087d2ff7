package cardsearch

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
	"github.com/bastionbot/bastion/query"
)

var _ Client = (*DefaultClient)(nil)

const serviceName = "cardsearch"

// DefaultClient talks to the card-data HTTP service.
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

// New creates a card-data client. The HTTP client is used as given.
func New(p Params) *DefaultClient {
	return &DefaultClient{
		baseURL:   strings.TrimRight(p.BaseURL, "/"),
		userAgent: p.UserAgent,
		http:      p.HTTPClient,
	}
}

func (c *DefaultClient) Lookup(ctx context.Context, kind query.LookupKind, key string) (*models.Card, error) {
	endpoint, err := c.endpoint(kind, key)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cardsearch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cardsearch: %s lookup: %w", kind, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound:
		// 400 is a key the service cannot parse, 404 a key it does not know.
		return nil, nil
	case http.StatusOK:
		var card models.Card
		if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
			return nil, apierror.Malformed(serviceName, "decode card", err)
		}
		return &card, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, apierror.Service(serviceName, resp.StatusCode, body)
	}
}

func (c *DefaultClient) endpoint(kind query.LookupKind, key string) (string, error) {
	switch kind {
	case query.Password:
		return c.baseURL + "/card/password/" + url.PathEscape(key), nil
	case query.KonamiID:
		return c.baseURL + "/card/kid/" + url.PathEscape(key), nil
	case query.Name:
		return c.baseURL + "/search?name=" + url.QueryEscape(key), nil
	default:
		return "", fmt.Errorf("cardsearch: unsupported lookup kind %q", kind)
	}
}
