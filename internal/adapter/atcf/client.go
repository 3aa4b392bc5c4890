package atcf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/observability"
)

// maxBodyBytes caps a single deck download. Long-lived storms accumulate
// large aid decks, but nothing legitimate approaches this.
const maxBodyBytes = 32 << 20

const (
	feedBest     = "best"
	feedForecast = "forecast"
)

// Client fetches ATCF best-track (b-deck) and aid (a-deck) files over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an ATCF feed client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchBestTrack downloads and parses the best-track deck for a storm.
// A missing deck is reported as domain.ErrStormNotFound.
func (c *Client) FetchBestTrack(ctx context.Context, id domain.StormID) ([]domain.Record, error) {
	return c.fetch(ctx, id.BestTrackFile(), feedBest)
}

// FetchForecast downloads and parses the aid deck for a storm.
func (c *Client) FetchForecast(ctx context.Context, id domain.StormID) ([]domain.Record, error) {
	return c.fetch(ctx, id.ForecastFile(), feedForecast)
}

func (c *Client) fetch(ctx context.Context, file, feed string) ([]domain.Record, error) {
	start := time.Now()
	body, err := c.doRequest(ctx, fmt.Sprintf("%s/%s", c.baseURL, file))
	c.metrics.FeedDuration.WithLabelValues(feed).Observe(time.Since(start).Seconds())
	c.metrics.FeedRequests.WithLabelValues(feed, outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", file, err)
	}

	records := domain.ParseFeed(body)
	c.logger.Debug("feed fetched", "file", file, "bytes", len(body), "records", len(records))
	return records, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", domain.ErrStormNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("atcf feed error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrStormNotFound):
		return "not_found"
	default:
		return "error"
	}
}
