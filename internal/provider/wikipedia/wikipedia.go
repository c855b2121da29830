// Package wikipedia fetches artist biography text from the Wikipedia REST
// page-summary endpoint. A missing or empty page is not an error; the
// biography is optional everywhere it is shown.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gatallah-de/Artist-Explorer/internal/cache"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
)

const defaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

// Summary is the page extract with its canonical link.
type Summary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url,omitempty"`
}

// summaryResponse is the raw REST page-summary payload.
type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	Type        string `json:"type"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Adapter is the Wikipedia REST client.
type Adapter struct {
	client  *http.Client
	limiter *provider.RateLimiterMap
	cache   *cache.TTL
	logger  *slog.Logger
	baseURL string
}

// New creates a Wikipedia adapter with the default base URL.
func New(limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, responses, logger, defaultBaseURL)
}

// NewWithBaseURL creates a Wikipedia adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		cache:   responses,
		logger:  logger.With(slog.String("provider", "wikipedia")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetSummary fetches the page summary for a title. Returns nil when no page
// exists, the page is a disambiguation page, or the extract is empty.
func (a *Adapter) GetSummary(ctx context.Context, title string) (*Summary, error) {
	reqURL := a.baseURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	body, err := a.cache.Fill(reqURL, func() ([]byte, error) {
		return a.doRequest(ctx, reqURL)
	})
	if err != nil {
		if _, notFound := err.(*provider.ErrNotFound); notFound {
			return nil, nil
		}
		return nil, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing summary response: %w", err)
	}
	if resp.Extract == "" || resp.Type == "disambiguation" {
		return nil, nil
	}
	return &Summary{
		Title:   resp.Title,
		Extract: resp.Extract,
		URL:     resp.ContentURLs.Desktop.Page,
	}, nil
}

func (a *Adapter) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := a.limiter.Wait(ctx, provider.NameWikipedia); err != nil {
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameWikipedia,
			Cause:    fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameWikipedia,
			Cause:    err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &provider.ErrNotFound{Provider: provider.NameWikipedia, ID: reqURL}
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameWikipedia,
			Cause:    fmt.Errorf("unexpected HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
