package keepalive

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Pinger periodically GETs the service's own public URL so free-tier
// hosts don't idle the process out.
type Pinger struct {
	url      string
	interval time.Duration
	httpc    *http.Client
	log      *zerolog.Logger
}

// New builds a pinger. A zero interval falls back to 30s.
func New(url string, interval time.Duration, logger *zerolog.Logger) *Pinger {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Pinger{
		url:      url,
		interval: interval,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		log:      logger,
	}
}

// Run pings until the context is cancelled. Returns immediately when
// no URL is configured.
func (p *Pinger) Run(ctx context.Context) {
	if p.url == "" {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Warn().Err(err).Msg("keepalive request build failed")
		return
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Str("url", p.url).Msg("keepalive ping failed")
		return
	}
	resp.Body.Close()

	p.log.Debug().Str("url", p.url).Int("status", resp.StatusCode).Msg("keepalive ping")
}
