// Package news fetches, cleans and summarizes news headlines.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsdesk/newsdesk/internal/metrics"
)

const (
	// DefaultEndpoint is the NewsAPI "everything" search endpoint.
	DefaultEndpoint = "https://newsapi.org/v2/everything"
	// DefaultTimeout bounds a whole fetch, limiter wait included.
	DefaultTimeout = 5 * time.Second
	// DefaultPageSize is the number of articles requested per fetch.
	DefaultPageSize = 5

	maxResponseBytes = 1 << 20
)

// Outcome classifies how a fetch ended.
type Outcome string

// Fetch outcomes. Everything except OutcomeOK and OutcomeCached yields no headlines.
const (
	OutcomeOK             Outcome = "ok"
	OutcomeCached         Outcome = "cached"
	OutcomeNoCredential   Outcome = "no_credential"
	OutcomeRateLimited    Outcome = "rate_limited"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeBadStatus      Outcome = "bad_status"
	OutcomeBadResponse    Outcome = "bad_response"
)

// Result is the outcome of a fetch. Headlines is empty unless the fetch succeeded.
type Result struct {
	Headlines []string
	Outcome   Outcome
}

// HeadlineCache stores raw headlines per topic.
type HeadlineCache interface {
	GetHeadlines(ctx context.Context, topic string) ([]string, error)
	SetHeadlines(ctx context.Context, topic string, headlines []string, ttl time.Duration) error
}

// Config configures a Client.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	PageSize int
	// MinInterval spaces outbound requests; zero disables pacing.
	MinInterval time.Duration
	// CacheTTL is how long successful results stay cached.
	CacheTTL time.Duration
}

// Client queries the news search API. It never returns errors: every failure
// collapses into an empty Result with an explanatory Outcome.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      HeadlineCache
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables the headline cache.
func WithCache(cache HeadlineCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Client) { c.metrics = recorder }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	c := &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		metrics: metrics.NewNoop(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(cfg.Timeout)
	}

	return c
}

// NewHTTPClient creates an HTTP client for news API calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   4,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// Available returns true if an API key is configured.
func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

type searchResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title *string `json:"title"`
	} `json:"articles"`
}

// Fetch returns up to PageSize article titles for topic, newest first.
//
// The request runs under its own timeout and is not cancelled when ctx is:
// a slow upstream consumes the timeout budget and then yields no headlines.
func (c *Client) Fetch(ctx context.Context, topic string) Result {
	start := time.Now()
	res := c.fetch(ctx, topic)

	c.metrics.IncNewsFetch(string(res.Outcome))
	c.metrics.ObserveNewsFetchDuration(time.Since(start))

	if res.Outcome != OutcomeOK && res.Outcome != OutcomeCached {
		c.logger.Warn("news fetch returned no headlines",
			slog.String("topic", topic),
			slog.String("outcome", string(res.Outcome)),
			slog.Duration("elapsed", time.Since(start)),
		)
	}

	return res
}

func (c *Client) fetch(ctx context.Context, topic string) Result {
	if !c.Available() {
		return Result{Outcome: OutcomeNoCredential}
	}

	if c.cache != nil {
		headlines, err := c.cache.GetHeadlines(ctx, topic)
		if err == nil && len(headlines) > 0 {
			c.metrics.IncHeadlineCacheHit()
			return Result{Headlines: headlines, Outcome: OutcomeCached}
		}
		c.metrics.IncHeadlineCacheMiss()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return Result{Outcome: OutcomeRateLimited}
	}

	headlines, outcome := c.search(ctx, topic)
	if outcome != OutcomeOK {
		return Result{Outcome: outcome}
	}

	if c.cache != nil && len(headlines) > 0 {
		if err := c.cache.SetHeadlines(ctx, topic, headlines, c.cfg.CacheTTL); err != nil {
			c.logger.Debug("headline cache write failed", slog.String("topic", topic), slog.String("error", err.Error()))
		}
	}

	return Result{Headlines: headlines, Outcome: OutcomeOK}
}

func (c *Client) search(ctx context.Context, topic string) ([]string, Outcome) {
	endpoint, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, OutcomeTransportError
	}

	q := endpoint.Query()
	q.Set("q", topic)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	q.Set("apiKey", c.cfg.APIKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, OutcomeTransportError
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Newsdesk/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, OutcomeBadStatus
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		if ctx.Err() != nil {
			return nil, OutcomeTimeout
		}
		return nil, OutcomeBadResponse
	}

	titles := make([]string, 0, len(body.Articles))
	for _, a := range body.Articles {
		if a.Title == nil || *a.Title == "" {
			continue
		}
		titles = append(titles, *a.Title)
		if len(titles) == c.cfg.PageSize {
			break
		}
	}

	return titles, OutcomeOK
}

func classifyError(ctx context.Context, err error) Outcome {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return OutcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return OutcomeTimeout
	}
	return OutcomeTransportError
}
