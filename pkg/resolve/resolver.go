// Package resolve materializes Person records through a session-scoped
// cache. The cache is the only shared mutable state in the core.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nonoumasy/bloodlines/pkg/extract"
	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// entry is one cache slot: in-flight until done is closed, then terminal
// with either a Person or an error. Entries live for the session and are
// never evicted.
type entry struct {
	done   chan struct{}
	person *types.Person
	err    error
}

// Resolver fetches and normalizes entities, caching one entry per
// identifier. Concurrent resolutions of the same uncached id share a
// single fetch; all callers observe the same eventual result.
type Resolver struct {
	client wikidata.Client
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Resolver on top of the given knowledge-base client.
func New(client wikidata.Client, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:  client,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// Resolve returns the Person for id, fetching it at most once per
// session. It fails with wikidata.ErrNotFound when the knowledge base
// has no record, wikidata.ErrCancelled when ctx fires first, or a
// transport error.
//
// The fetch is bound to the context of the caller that started it. If
// that context is cancelled before completion, nothing is written to
// the cache and a later Resolve issues a fresh fetch; callers that were
// sharing the in-flight resolution observe ErrCancelled.
func (r *Resolver) Resolve(ctx context.Context, id string) (*types.Person, error) {
	if !extract.ValidID(id) {
		return nil, fmt.Errorf("resolve %q: %w", id, wikidata.ErrInvalidID)
	}

	r.mu.Lock()
	if e, ok := r.entries[id]; ok {
		r.mu.Unlock()
		return r.await(ctx, id, e)
	}

	e := &entry{done: make(chan struct{})}
	r.entries[id] = e
	r.mu.Unlock()

	person, err := r.fetch(ctx, id)

	r.mu.Lock()
	if wikidata.IsCancelled(err) || (err == nil && ctx.Err() != nil) {
		// The owning token fired: no cache write. The slot is removed so
		// the next resolution starts over.
		delete(r.entries, id)
		e.err = fmt.Errorf("resolve %s: %w", id, wikidata.ErrCancelled)
	} else {
		e.person, e.err = person, err
	}
	r.mu.Unlock()
	close(e.done)

	if e.err != nil {
		return nil, e.err
	}
	return e.person, nil
}

// await blocks on an existing entry until it is terminal or the caller's
// own context fires.
func (r *Resolver) await(ctx context.Context, id string, e *entry) (*types.Person, error) {
	select {
	case <-e.done:
		if e.err != nil {
			return nil, e.err
		}
		return e.person, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("resolve %s: %w", id, wikidata.ErrCancelled)
	}
}

// fetch issues the single network call for id and composes the Person.
func (r *Resolver) fetch(ctx context.Context, id string) (*types.Person, error) {
	entities, err := r.client.GetEntities(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	raw, ok := entities[id]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", id, wikidata.ErrNotFound)
	}

	bio := extract.Facts(raw)
	parentIDs, childIDs := extract.Relations(raw.Claims)

	person := &types.Person{
		ID:           id,
		Label:        bio.Label,
		Description:  bio.Description,
		WikipediaURL: bio.WikipediaURL,
		ImageURL:     bio.ImageURL,
		BirthYear:    bio.BirthYear,
		DeathYear:    bio.DeathYear,
		Age:          bio.Age,
		ParentIDs:    parentIDs,
		ChildIDs:     childIDs,
	}

	r.logger.Debug("resolved entity", "id", id, "parents", len(parentIDs), "children", len(childIDs))
	return person, nil
}

// Has reports whether the cache holds an entry for id, in-flight or
// terminal. Primarily useful to observe cancellation behaviour.
func (r *Resolver) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of cache entries held for the session.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
