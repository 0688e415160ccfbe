package proxy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"oakwood-site/internal/platform/httpclient"
)

// MaxAge is how long a stored upstream snapshot is served without refetching.
const MaxAge = time.Hour

// maxBodyBytes caps the upstream document size.
const maxBodyBytes = 4 << 20

// Fetch results reported to the Recorder.
const (
	ResultCacheHit = "cache_hit"
	ResultFetched  = "fetched"
	ResultFailed   = "failed"
)

var (
	// ErrUpstreamStatus is returned for a non-2xx upstream response.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrInvalidBody is returned when the upstream body is not valid JSON.
	ErrInvalidBody = errors.New("upstream body is not valid JSON")
)

// Recorder receives one result per Fetch. It may be nil.
type Recorder interface {
	IncUpstreamFetch(result string)
}

// Fetcher retrieves the upstream home content document, keeping the last
// good body in the upstream_snapshots table.
type Fetcher struct {
	url      string
	client   *httpclient.Client
	db       *sql.DB
	clock    clockwork.Clock
	maxAge   time.Duration
	log      *slog.Logger
	recorder Recorder
}

// FetcherOptions configures a Fetcher. Zero values select defaults; a nil DB
// disables the snapshot cache.
type FetcherOptions struct {
	Client   *httpclient.Client
	DB       *sql.DB
	Clock    clockwork.Clock
	MaxAge   time.Duration
	Logger   *slog.Logger
	Recorder Recorder
}

// NewFetcher returns a Fetcher for url.
func NewFetcher(url string, opts FetcherOptions) *Fetcher {
	f := &Fetcher{
		url:      url,
		client:   opts.Client,
		db:       opts.DB,
		clock:    opts.Clock,
		maxAge:   opts.MaxAge,
		log:      opts.Logger,
		recorder: opts.Recorder,
	}
	if f.client == nil {
		f.client = httpclient.New(httpclient.DefaultTimeout)
	}
	if f.clock == nil {
		f.clock = clockwork.NewRealClock()
	}
	if f.maxAge <= 0 {
		f.maxAge = MaxAge
	}
	if f.log == nil {
		f.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	f.log = f.log.With("component", "upstream", "url", url)
	return f
}

// URL returns the upstream address.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch returns the upstream JSON body, from the snapshot cache when fresh.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if body, ok := f.fresh(ctx); ok {
		f.record(ResultCacheHit)
		return body, nil
	}

	body, err := f.fetch(ctx)
	if err != nil {
		f.record(ResultFailed)
		f.log.Error("error fetching external content", "error", err)
		return nil, err
	}
	f.store(ctx, body)
	f.record(ResultFetched)
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]byte, error) {
	resp, err := f.client.Get(ctx, f.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if !json.Valid(body) {
		return nil, ErrInvalidBody
	}
	return body, nil
}

func (f *Fetcher) fresh(ctx context.Context) ([]byte, bool) {
	if f.db == nil {
		return nil, false
	}
	var (
		body      []byte
		fetchedAt int64
	)
	err := f.db.QueryRowContext(ctx,
		"SELECT body, fetched_at FROM upstream_snapshots WHERE url = ?", f.url,
	).Scan(&body, &fetchedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			f.log.Warn("snapshot lookup failed", "error", err)
		}
		return nil, false
	}
	if f.clock.Since(time.Unix(fetchedAt, 0)) >= f.maxAge {
		return nil, false
	}
	return body, true
}

func (f *Fetcher) store(ctx context.Context, body []byte) {
	if f.db == nil {
		return
	}
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO upstream_snapshots (url, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		f.url, body, f.clock.Now().Unix(),
	)
	if err != nil {
		f.log.Warn("snapshot store failed", "error", err)
	}
}

func (f *Fetcher) record(result string) {
	if f.recorder != nil {
		f.recorder.IncUpstreamFetch(result)
	}
}
