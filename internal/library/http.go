package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/citeguard/citeguard/internal/model"
	"github.com/citeguard/citeguard/internal/util"
)

// HTTPStore talks to the remote content store over its REST API. The base
// endpoint and client are injected at construction so tests can run against
// a fake store.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
}

// NewHTTPStore creates a content store client from configuration.
func NewHTTPStore(cfg model.StoreConfig) (*HTTPStore, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("content store base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 5_000_000
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &HTTPStore{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// sourceContentPayload is the content endpoint's wire shape.
type sourceContentPayload struct {
	SourceID    string `json:"source_id"`
	Title       string `json:"title"`
	FullText    string `json:"full_text"`
	Length      int    `json:"length"`
	ContentType string `json:"content_type,omitempty"`
}

// FetchSourceContent retrieves one source's full text. Sources ingested as
// HTML are normalized to visible text before matching.
func (s *HTTPStore) FetchSourceContent(ctx context.Context, sourceID string) (*model.SourceContent, error) {
	endpoint := fmt.Sprintf("%s/api/library/sources/%s/content", s.baseURL, url.PathEscape(sourceID))

	body, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload sourceContentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode source content: %w", err)
	}

	text := payload.FullText
	if strings.Contains(payload.ContentType, "html") || looksLikeHTML(text) {
		text = VisibleText(text)
	}

	id := payload.SourceID
	if id == "" {
		id = sourceID
	}

	return &model.SourceContent{
		SourceID: id,
		Title:    payload.Title,
		FullText: text,
		Length:   len(text),
	}, nil
}

// ListSources retrieves summaries of all stored sources.
func (s *HTTPStore) ListSources(ctx context.Context) ([]model.SourceSummary, error) {
	body, err := s.get(ctx, s.baseURL+"/api/library/sources")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Sources []model.SourceSummary `json:"sources"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode source list: %w", err)
	}
	return payload.Sources, nil
}

func (s *HTTPStore) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func looksLikeHTML(text string) bool {
	probe := text
	if len(probe) > 512 {
		probe = probe[:512]
	}
	probe = strings.ToLower(probe)
	return strings.Contains(probe, "<html") || strings.Contains(probe, "<body") || strings.Contains(probe, "<!doctype html")
}
