package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/economist-mcp/internal/diag"
	"github.com/hyperifyio/economist-mcp/internal/extract"
	"github.com/hyperifyio/economist-mcp/internal/fetch"
	"github.com/hyperifyio/economist-mcp/internal/page"
)

// Fetcher performs the single GET behind each tool call.
type Fetcher interface {
	Get(ctx context.Context, url string) (*fetch.Response, error)
}

// App runs the two fetch → parse → extract pipelines. It keeps no state
// between calls, so one App may serve concurrent callers.
type App struct {
	cfg     Config
	fetcher Fetcher
}

// New validates cfg and builds an App with a live HTTP fetcher.
func New(cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	f := &fetch.Client{
		HTTPClient: newHTTPClient(),
		UserAgent:  cfg.UserAgent,
		Cookie:     cfg.Cookie,
	}
	log.Debug().
		Str("base", cfg.BaseURL).
		Bool("cookie_set", cfg.Cookie != "").
		Msg("app configured")
	return &App{cfg: cfg, fetcher: f}, nil
}

// NewWithFetcher builds an App around an existing Fetcher.
func NewWithFetcher(cfg Config, f Fetcher) (*App, error) {
	ApplyDefaults(&cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, fetcher: f}, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config { return a.cfg }

// BriefURL is the fixed location of the daily digest.
func (a *App) BriefURL() string {
	return strings.TrimRight(a.cfg.BaseURL, "/") + a.cfg.BriefPath
}

// LatestBriefing fetches and renders "The World in Brief".
func (a *App) LatestBriefing(ctx context.Context) (string, error) {
	return a.run(ctx, diag.OpBriefing, a.BriefURL(), extract.Brief)
}

// ReadArticle fetches and renders the article at url.
func (a *App) ReadArticle(ctx context.Context, url string) (string, error) {
	return a.run(ctx, diag.OpArticle, url, extract.Article)
}

func (a *App) run(ctx context.Context, op diag.Op, target string, render func(*page.Document) (string, error)) (string, error) {
	logger := log.With().
		Str("call", xid.New().String()).
		Str("tool", string(op)).
		Str("url", target).
		Logger()

	logger.Debug().Msg("fetch start")
	resp, err := a.fetcher.Get(ctx, target)
	if err != nil {
		logger.Error().Err(err).Msg("fetch failed")
		return "", diag.Transport(op, fmt.Errorf("fetch %s: %w", target, err))
	}
	logger.Debug().
		Int("status", resp.Status).
		Int("bytes", len(resp.Body)).
		Str("final_url", resp.URL).
		Msg("fetched")

	text, err := render(page.Parse(resp.Body, resp.ContentType))
	if err != nil {
		logger.Warn().Err(err).Int("status", resp.Status).Msg("extraction failed")
		return "", err
	}
	logger.Info().
		Int("status", resp.Status).
		Int("chars", utf8.RuneCountInString(text)).
		Msg("extracted")
	return text, nil
}
