// Package fetch downloads upstream native databases and hands them to the
// matching parser.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saffronjam/nativedb/internal/common"
	"github.com/saffronjam/nativedb/internal/parser"
)

var (
	ErrUpstreamStatus = errors.New("upstream returned non-2xx status")
	ErrBodyTooLarge   = errors.New("upstream body exceeds size limit")
)

// DefaultMaxBody caps a download. The largest public databases are a few MiB.
const DefaultMaxBody = 64 << 20

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// Client downloads raw databases. The zero value uses http.DefaultClient,
// no timeout and DefaultMaxBody.
type Client struct {
	HTTP    *http.Client
	Timeout time.Duration
	// MaxBody is the largest accepted body in bytes. Larger bodies fail with
	// ErrBodyTooLarge instead of being truncated.
	MaxBody int64
}

func NewClient(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{}, Timeout: timeout}
}

// Fetch GETs url and returns the body. Non-2xx responses yield a
// *StatusError; nothing is retried.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	limit := c.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("read %s: %w (%d bytes)", url, ErrBodyTooLarge, limit)
	}
	return body, nil
}

// Loader resolves a game id to a parsed catalog. Every call downloads and
// parses afresh.
type Loader struct {
	Config *common.Config
	Client *Client
	Logger common.Logger
}

func NewLoader(cfg *common.Config, logger common.Logger) *Loader {
	if logger == nil {
		logger = common.DiscardLogger
	}
	return &Loader{Config: cfg, Client: NewClient(cfg.FetchTimeout), Logger: logger}
}

// Load fetches and parses the database of the given game.
func (l *Loader) Load(ctx context.Context, gameID string) (*common.Catalog, error) {
	game, err := l.Config.Game(gameID)
	if err != nil {
		return nil, err
	}

	client := l.Client
	if client == nil {
		client = &Client{}
	}

	start := time.Now()
	data, err := client.Fetch(ctx, game.URL)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", game.ID, err)
	}

	cat, stats, err := parser.ParseWithStats(game.Format, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", game.ID, err)
	}

	l.logger().Printf("loaded %s: %d natives in %d namespaces (%d bytes, %s)",
		game.ID, stats.Entries, len(cat.Namespaces), len(data), time.Since(start).Round(time.Millisecond))
	if dropped := stats.Skipped + stats.Unresolved; dropped > 0 {
		l.logger().Printf("loaded %s: dropped %d records", game.ID, dropped)
	}
	if stats.MissingHash > 0 {
		l.logger().Printf("loaded %s: %d natives without an invoke hash", game.ID, stats.MissingHash)
	}

	return cat, nil
}

func (l *Loader) logger() common.Logger {
	if l.Logger == nil {
		return common.DiscardLogger
	}
	return l.Logger
}
