package discord

import (
	"context"
	"time"
)

// Discord defines the interface for the Discord client.
type Discord interface {
	RegisterCommands() error
	Start(ctx context.Context) error
	Stop() error
}

// Request is one slash command invocation.
type Request struct {
	Command   string
	Options   map[string]string
	User      string
	CreatedAt time.Time
}

// Result summarizes a handled request for observability.
type Result struct {
	LatencyMS int64
	Outcome   string
}

// Responder is the reply primitive of one interaction.
type Responder interface {
	Defer(ephemeral bool) error
	Edit(reply Reply) error
}
