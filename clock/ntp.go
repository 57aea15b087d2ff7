package clock

import (
	"context"
	"sync"
	"time"

	"github.com/beevik/ntp"

	"github.com/bastionbot/bastion/logger"
	"github.com/bastionbot/bastion/metrics"
)

const (
	defaultInterval = 30 * time.Minute
	defaultTimeout  = 5 * time.Second
)

// queryFunc matches ntp.QueryWithOptions so tests can stub the network.
type queryFunc func(host string, opt ntp.QueryOptions) (*ntp.Response, error)

// NTPClock corrects time.Now() by an offset refreshed from an NTP server.
// Discord stamps interactions with its own clock, so a drifting host
// clock would skew reply latency.
type NTPClock struct {
	server   string
	interval time.Duration
	timeout  time.Duration
	logger   logger.Logger
	query    queryFunc

	mu     sync.RWMutex
	offset time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

type NTPParams struct {
	Config Config
	Logger logger.Logger
}

// NewNTP creates an NTPClock. Call Start to begin syncing.
func NewNTP(p NTPParams) *NTPClock {
	p.Config.Defaults()

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &NTPClock{
		server:   p.Config.NTPServer,
		interval: p.Config.SyncInterval,
		timeout:  p.Config.Timeout,
		logger:   log,
		query:    ntp.QueryWithOptions,
	}
}

// Now returns the current time adjusted by the NTP offset.
func (c *NTPClock) Now() time.Time {
	c.mu.RLock()
	off := c.offset
	c.mu.RUnlock()
	return time.Now().Add(off)
}

// Offset returns the current NTP offset.
func (c *NTPClock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// Start syncs once and then re-syncs every interval until Stop.
func (c *NTPClock) Start(ctx context.Context) error {
	c.sync()

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx)
	return nil
}

// Stop shuts down the background sync goroutine.
func (c *NTPClock) Stop() {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
}

func (c *NTPClock) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sync()
		}
	}
}

func (c *NTPClock) sync() {
	resp, err := c.query(c.server, ntp.QueryOptions{Timeout: c.timeout})
	if err != nil {
		c.logger.WarnW("ntp sync failed, keeping last offset", "server", c.server, "error", err)
		return
	}
	if err := resp.Validate(); err != nil {
		c.logger.WarnW("ntp response rejected", "server", c.server, "error", err)
		return
	}

	c.mu.Lock()
	c.offset = resp.ClockOffset
	c.mu.Unlock()

	metrics.ClockOffsetSeconds.Set(resp.ClockOffset.Seconds())
	c.logger.DebugW("ntp sync", "server", c.server, "offset", resp.ClockOffset)
}
