// Package search finds person entities in the knowledge base via a
// two-phase query: free-text search, then a single batched fetch that
// keeps only hits carrying a human class-membership statement.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nonoumasy/bloodlines/pkg/extract"
	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// DefaultLimit bounds the free-text result count per query.
const DefaultLimit = 12

// PersonSearch performs the two-phase person search.
type PersonSearch struct {
	client wikidata.Client
	limit  int
	logger *slog.Logger
}

// NewPersonSearch creates a PersonSearch over the given client.
func NewPersonSearch(client wikidata.Client, limit int, logger *slog.Logger) *PersonSearch {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonSearch{
		client: client,
		limit:  limit,
		logger: logger,
	}
}

// Search returns the human hits for query in original relevance order.
// An empty result is a successful response, distinct from failure.
// Non-human hits are filtered out with no explanation surfaced.
func (s *PersonSearch) Search(ctx context.Context, query string) ([]types.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.SearchHit{}, nil
	}

	hits, err := s.client.SearchEntities(ctx, query, s.limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		// Nothing to classify; no second call.
		return []types.SearchHit{}, nil
	}

	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}
	ids = extract.SanitizeIDs(ids)
	if len(ids) == 0 {
		return []types.SearchHit{}, nil
	}

	entities, err := s.client.GetEntities(ctx, ids)
	if err != nil {
		return nil, err
	}

	humans := make([]types.SearchHit, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	dropped := 0
	for _, hit := range hits {
		if _, ok := seen[hit.ID]; ok {
			// Duplicate hit ids collapse to the first occurrence, matching
			// the deduplicated fetch.
			dropped++
			continue
		}
		seen[hit.ID] = struct{}{}

		raw, ok := entities[hit.ID]
		if !ok {
			// Absent from the bulk response: treated as non-human, not
			// as an error.
			dropped++
			continue
		}
		if isHuman(raw) {
			humans = append(humans, hit)
		} else {
			dropped++
		}
	}

	s.logger.Debug("person search", "query", query, "hits", len(hits), "humans", len(humans), "dropped", dropped)
	return humans, nil
}

// isHuman reports whether the entity carries a class-membership
// statement whose target is exactly the human class.
func isHuman(entity types.RawEntity) bool {
	for _, claim := range entity.Claims[types.PropertyInstanceOf] {
		if id, ok := claim.MainSnak.DataValue.AsEntityID(); ok && id == types.ClassHuman {
			return true
		}
	}
	return false
}
