package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nonoumasy/bloodlines/pkg/types"
)

// Client is the knowledge-base surface the core consumes. Implementations
// must honour context cancellation on every call.
type Client interface {
	// SearchEntities performs a free-text search over item entities and
	// returns hits in relevance order.
	SearchEntities(ctx context.Context, query string, limit int) ([]types.SearchHit, error)

	// GetEntities fetches full records for the given ids in one batched
	// call. Ids absent from the knowledge base are omitted from the
	// returned map rather than reported as errors.
	GetEntities(ctx context.Context, ids []string) (map[string]types.RawEntity, error)
}

// Config holds configuration for the HTTP client.
type Config struct {
	// BaseURL is the MediaWiki API endpoint.
	BaseURL string
	// Language is the preferred label/description language for search.
	Language string
	// UserAgent identifies this client to the knowledge base.
	UserAgent string
	// Timeout bounds a single request.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://www.wikidata.org/w/api.php",
		Language:  "en",
		UserAgent: "bloodlines/1.0 (https://github.com/nonoumasy/bloodlines)",
		Timeout:   15 * time.Second,
	}
}

// HTTPClient talks to the Wikidata action API over plain HTTP.
type HTTPClient struct {
	config Config
	http   *http.Client
	logger *slog.Logger
}

// NewHTTPClient creates an HTTP knowledge-base client.
func NewHTTPClient(cfg Config, logger *slog.Logger) *HTTPClient {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// searchResponse is the wire shape of a wbsearchentities response.
type searchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"search"`
	Error *apiError `json:"error"`
}

// entitiesResponse is the wire shape of a wbgetentities response.
type entitiesResponse struct {
	Entities map[string]types.RawEntity `json:"entities"`
	Error    *apiError                  `json:"error"`
}

// apiError is the error payload the action API embeds in a 200 response.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// SearchEntities implements Client.
func (c *HTTPClient) SearchEntities(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", c.config.Language)
	params.Set("uselang", c.config.Language)
	params.Set("type", "item")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("format", "json")

	var resp searchResponse
	if err := c.do(ctx, "search", params, &resp); err != nil {
		return nil, err
	}

	hits := make([]types.SearchHit, 0, len(resp.Search))
	for _, s := range resp.Search {
		hits = append(hits, types.SearchHit{
			ID:          s.ID,
			Label:       s.Label,
			Description: s.Description,
		})
	}
	return hits, nil
}

// GetEntities implements Client. Missing ids come back from the API as
// tombstone records; those are dropped here so callers only ever see
// real entities.
func (c *HTTPClient) GetEntities(ctx context.Context, ids []string) (map[string]types.RawEntity, error) {
	if len(ids) == 0 {
		return map[string]types.RawEntity{}, nil
	}

	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", strings.Join(ids, "|"))
	params.Set("props", "labels|descriptions|claims|sitelinks")
	params.Set("format", "json")

	var resp entitiesResponse
	if err := c.do(ctx, "get entities", params, &resp); err != nil {
		return nil, err
	}

	entities := make(map[string]types.RawEntity, len(resp.Entities))
	for id, entity := range resp.Entities {
		if entity.IsMissing() {
			continue
		}
		entities[id] = entity
	}
	return entities, nil
}

// do issues one GET against the action API and decodes the JSON body
// into out. Context cancellation maps to ErrCancelled; everything else
// that goes wrong on the wire maps to TransportError.
func (c *HTTPClient) do(ctx context.Context, op string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", op, ErrCancelled)
		}
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", op, ErrCancelled)
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if apiErr := extractAPIError(out); apiErr != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("api error %s: %s", apiErr.Code, apiErr.Info)}
	}

	c.logger.Debug("knowledge base call", "op", op, "duration", time.Since(start))
	return nil
}

// extractAPIError pulls the embedded error payload out of a decoded
// response, if any.
func extractAPIError(out any) *apiError {
	switch r := out.(type) {
	case *searchResponse:
		return r.Error
	case *entitiesResponse:
		return r.Error
	default:
		return nil
	}
}
