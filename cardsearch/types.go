package cardsearch

import (
	"context"

	"github.com/bastionbot/bastion/models"
	"github.com/bastionbot/bastion/query"
)

// Client looks cards up in the card-data service.
type Client interface {
	// Lookup returns (nil, nil) when no card matches.
	Lookup(ctx context.Context, kind query.LookupKind, key string) (*models.Card, error)
}
