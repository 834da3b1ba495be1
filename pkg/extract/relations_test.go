package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nonoumasy/bloodlines/pkg/types"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"Q5", true},
		{"Q3044", true},
		{"Q123456789", true},
		{"q5", false},
		{"Q", false},
		{"Q5x", false},
		{"P31", false},
		{"", false},
		{" Q5", false},
		{"Q-5", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidID(tt.id), "id %q", tt.id)
	}
}

func TestSanitizeIDs(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []string
	}{
		{
			name:     "drops duplicates keeping first occurrence",
			in:       []string{"Q1", "Q2", "Q1", "Q3", "Q2"},
			expected: []string{"Q1", "Q2", "Q3"},
		},
		{
			name:     "drops malformed identifiers",
			in:       []string{"Q1", "P31", "", "Q2", "q3"},
			expected: []string{"Q1", "Q2"},
		},
		{
			name:     "empty input yields empty slice",
			in:       nil,
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeIDs(tt.in))
		})
	}
}

func TestSanitizeIDsIdempotent(t *testing.T) {
	in := []string{"Q3", "bogus", "Q1", "Q3", "Q2"}
	once := SanitizeIDs(in)
	twice := SanitizeIDs(once)
	assert.Equal(t, once, twice)
}

func TestRelations(t *testing.T) {
	claims := map[string][]types.Claim{
		types.PropertyFather: {entityClaim("Q2")},
		types.PropertyMother: {entityClaim("Q3")},
		types.PropertyChild: {
			entityClaim("Q4"),
			entityClaim("Q5"),
			entityClaim("Q4"), // duplicate statement
		},
	}

	parents, children := Relations(claims)
	assert.Equal(t, []string{"Q2", "Q3"}, parents)
	assert.Equal(t, []string{"Q4", "Q5"}, children)
}

func TestRelationsFatherBeforeMother(t *testing.T) {
	// Mother listed first in the claim map must not reorder the output.
	claims := map[string][]types.Claim{
		types.PropertyMother: {entityClaim("Q3")},
		types.PropertyFather: {entityClaim("Q2")},
	}
	parents, _ := Relations(claims)
	assert.Equal(t, []string{"Q2", "Q3"}, parents)
}

func TestRelationsEmpty(t *testing.T) {
	parents, children := Relations(nil)
	assert.NotNil(t, parents)
	assert.NotNil(t, children)
	assert.Empty(t, parents)
	assert.Empty(t, children)
}

func TestRelationsSkipsValuelessSnaks(t *testing.T) {
	claims := map[string][]types.Claim{
		types.PropertyFather: {
			{MainSnak: types.Snak{SnakType: "somevalue"}},
		},
		types.PropertyChild: {
			{MainSnak: types.Snak{SnakType: "novalue"}},
			entityClaim("Q9"),
		},
	}
	parents, children := Relations(claims)
	assert.Empty(t, parents)
	assert.Equal(t, []string{"Q9"}, children)
}
