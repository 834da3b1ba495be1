package extract

import (
	"regexp"

	"github.com/nonoumasy/bloodlines/pkg/types"
)

// idPattern is the identifier grammar: Q followed by one or more decimal
// digits. Anything else is discarded wherever identifiers are consumed.
var idPattern = regexp.MustCompile(`^Q[0-9]+$`)

// ValidID reports whether id matches the identifier grammar.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// SanitizeIDs drops malformed identifiers and deduplicates the rest,
// preserving first-seen order. It is idempotent and never returns nil.
func SanitizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !ValidID(id) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Relations extracts the deduplicated relation id lists from raw claims:
// parents as the order-preserving union of father and mother statement
// values, children from child statements. Malformed or missing ids are
// dropped silently.
func Relations(claims map[string][]types.Claim) (parentIDs, childIDs []string) {
	parents := claimTargets(claims[types.PropertyFather])
	parents = append(parents, claimTargets(claims[types.PropertyMother])...)

	parentIDs = SanitizeIDs(parents)
	childIDs = SanitizeIDs(claimTargets(claims[types.PropertyChild]))
	return parentIDs, childIDs
}

// claimTargets collects the entity-id values of a statement list,
// skipping somevalue/novalue snaks and non-entity values.
func claimTargets(claims []types.Claim) []string {
	targets := make([]string, 0, len(claims))
	for _, claim := range claims {
		if id, ok := claim.MainSnak.DataValue.AsEntityID(); ok {
			targets = append(targets, id)
		}
	}
	return targets
}
