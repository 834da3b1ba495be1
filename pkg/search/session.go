package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// DefaultSettleDelay is how long a submitted query waits before firing,
// so rapid successive submissions cost one request instead of one each.
const DefaultSettleDelay = 250 * time.Millisecond

// Session is a single-slot "latest request" register: submitting a query
// atomically cancels any prior pending one. A superseded query observes
// ErrCancelled, which callers discard silently.
type Session struct {
	searcher *PersonSearch
	settle   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSession creates a Session around searcher with the given settle
// delay (DefaultSettleDelay when non-positive).
func NewSession(searcher *PersonSearch, settle time.Duration) *Session {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Session{
		searcher: searcher,
		settle:   settle,
	}
}

// Submit registers query as the latest request, waits out the settle
// delay, then runs the search unless a newer submission superseded it.
func (s *Session) Submit(ctx context.Context, query string) ([]types.SearchHit, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	timer := time.NewTimer(s.settle)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return nil, fmt.Errorf("search %q: %w", query, wikidata.ErrCancelled)
	}

	hits, err := s.searcher.Search(ctx, query)
	if err != nil {
		if wikidata.IsCancelled(err) {
			return nil, fmt.Errorf("search %q: %w", query, wikidata.ErrCancelled)
		}
		return nil, err
	}
	return hits, nil
}

// Close cancels any pending submission.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
