package wikidata

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nonoumasy/bloodlines/pkg/config"
	"github.com/nonoumasy/bloodlines/pkg/types"
)

// CircuitBreakerClient wraps a Client with circuit breaking logic so a
// struggling knowledge base is not hammered by every branch of a tree
// expansion at once.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

// NewCircuitBreakerClient creates a new circuit breaker client.
// Cancellations and not-found results are not counted as failures;
// only transport errors move the breaker toward open.
func NewCircuitBreakerClient(client Client, cfg config.CircuitBreakerConfig, logger *slog.Logger, name string) *CircuitBreakerClient {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsCancelled(err) || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &CircuitBreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}
}

// SearchEntities implements Client.
func (c *CircuitBreakerClient) SearchEntities(ctx context.Context, query string, limit int) ([]types.SearchHit, error) {
	hits, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.SearchEntities(ctx, query, limit)
	})
	if err != nil {
		return nil, mapBreakerError("search", err)
	}
	return hits.([]types.SearchHit), nil
}

// GetEntities implements Client.
func (c *CircuitBreakerClient) GetEntities(ctx context.Context, ids []string) (map[string]types.RawEntity, error) {
	entities, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.GetEntities(ctx, ids)
	})
	if err != nil {
		return nil, mapBreakerError("get entities", err)
	}
	return entities.(map[string]types.RawEntity), nil
}

// mapBreakerError folds an open or saturated breaker into the transport
// error taxonomy so callers see one failure surface.
func mapBreakerError(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &TransportError{Op: op, Err: err}
	}
	return err
}
