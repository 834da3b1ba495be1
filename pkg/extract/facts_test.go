package extract

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nonoumasy/bloodlines/pkg/types"
)

func timeClaim(value string, precision int) types.Claim {
	return types.Claim{
		MainSnak: types.Snak{
			SnakType: "value",
			DataValue: &types.DataValue{
				Type:  "time",
				Value: json.RawMessage(fmt.Sprintf(`{"time":%q,"precision":%d}`, value, precision)),
			},
		},
	}
}

func stringClaim(value string) types.Claim {
	raw, _ := json.Marshal(value)
	return types.Claim{
		MainSnak: types.Snak{
			SnakType: "value",
			DataValue: &types.DataValue{
				Type:  "string",
				Value: raw,
			},
		},
	}
}

func entityClaim(id string) types.Claim {
	return types.Claim{
		MainSnak: types.Snak{
			SnakType: "value",
			DataValue: &types.DataValue{
				Type:  "wikibase-entityid",
				Value: json.RawMessage(fmt.Sprintf(`{"entity-type":"item","id":%q}`, id)),
			},
		},
	}
}

func TestFactsLabelPreference(t *testing.T) {
	tests := []struct {
		name     string
		labels   map[string]types.Term
		expected string
	}{
		{
			name: "prefers english",
			labels: map[string]types.Term{
				"de": {Language: "de", Value: "Karl der Große"},
				"en": {Language: "en", Value: "Charlemagne"},
			},
			expected: "Charlemagne",
		},
		{
			name: "falls back to first available language",
			labels: map[string]types.Term{
				"fr": {Language: "fr", Value: "Charlemagne (fr)"},
				"de": {Language: "de", Value: "Karl der Große"},
			},
			expected: "Karl der Große",
		},
		{
			name:     "falls back to the identifier",
			labels:   map[string]types.Term{},
			expected: "Q3044",
		},
		{
			name: "skips empty english value",
			labels: map[string]types.Term{
				"en": {Language: "en", Value: ""},
				"it": {Language: "it", Value: "Carlo Magno"},
			},
			expected: "Carlo Magno",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bio := Facts(types.RawEntity{ID: "Q3044", Labels: tt.labels})
			assert.Equal(t, tt.expected, bio.Label)
		})
	}
}

func TestFactsWikipediaURL(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q3044",
		Sitelinks: map[string]types.Sitelink{
			"enwiki": {Site: "enwiki", Title: "Charlemagne"},
			"dewiki": {Site: "dewiki", Title: "Karl der Große"},
		},
	})
	assert.Equal(t, "https://en.wikipedia.org/wiki/Charlemagne", bio.WikipediaURL)

	// Only the English-site link counts; never guessed from the label.
	bio = Facts(types.RawEntity{
		ID:        "Q3044",
		Labels:    map[string]types.Term{"en": {Language: "en", Value: "Charlemagne"}},
		Sitelinks: map[string]types.Sitelink{"dewiki": {Site: "dewiki", Title: "Karl der Große"}},
	})
	assert.Empty(t, bio.WikipediaURL)
}

func TestFactsWikipediaURLSpaces(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q517",
		Sitelinks: map[string]types.Sitelink{
			"enwiki": {Site: "enwiki", Title: "Napoleon Bonaparte"},
		},
	})
	assert.Equal(t, "https://en.wikipedia.org/wiki/Napoleon_Bonaparte", bio.WikipediaURL)
}

func TestFactsImage(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q3044",
		Claims: map[string][]types.Claim{
			types.PropertyImage: {
				stringClaim("   "),
				stringClaim("  Charlemagne portrait.jpg "),
			},
		},
	})
	assert.Equal(t, "Charlemagne portrait.jpg", bio.ImageURL)
}

func TestFactsYears(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q3044",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {timeClaim("+0748-04-02T00:00:00Z", 11)},
			types.PropertyDateOfDeath: {timeClaim("+0814-01-28T00:00:00Z", 11)},
		},
	})
	require.NotNil(t, bio.BirthYear)
	require.NotNil(t, bio.DeathYear)
	require.NotNil(t, bio.Age)
	assert.Equal(t, 748, *bio.BirthYear)
	assert.Equal(t, 814, *bio.DeathYear)
	assert.Equal(t, 66, *bio.Age)
}

func TestFactsRejectsCoarsePrecision(t *testing.T) {
	// Century precision (7) carries a parseable year, but must be
	// rejected rather than approximated.
	bio := Facts(types.RawEntity{
		ID: "Q1",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {timeClaim("+0700-00-00T00:00:00Z", 7)},
		},
	})
	assert.Nil(t, bio.BirthYear)
	assert.Nil(t, bio.Age)
}

func TestFactsSkipsToFirstPreciseStatement(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q1",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {
				timeClaim("+0700-00-00T00:00:00Z", 8),
				timeClaim("+0748-00-00T00:00:00Z", 9),
			},
		},
	})
	require.NotNil(t, bio.BirthYear)
	assert.Equal(t, 748, *bio.BirthYear)
}

func TestFactsContradictoryYearsDiscarded(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q1",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {timeClaim("+0900-00-00T00:00:00Z", 9)},
			types.PropertyDateOfDeath: {timeClaim("+0800-00-00T00:00:00Z", 9)},
		},
	})
	assert.Nil(t, bio.BirthYear)
	assert.Nil(t, bio.DeathYear)
	assert.Nil(t, bio.Age)
}

func TestFactsBCEYears(t *testing.T) {
	// Julius Caesar: 100 BCE – 44 BCE, died at 56.
	bio := Facts(types.RawEntity{
		ID: "Q1048",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {timeClaim("-0100-07-12T00:00:00Z", 11)},
			types.PropertyDateOfDeath: {timeClaim("-0044-03-15T00:00:00Z", 11)},
		},
	})
	require.NotNil(t, bio.BirthYear)
	require.NotNil(t, bio.DeathYear)
	require.NotNil(t, bio.Age)
	assert.Equal(t, -100, *bio.BirthYear)
	assert.Equal(t, -44, *bio.DeathYear)
	assert.Equal(t, 56, *bio.Age)
}

func TestFactsNoAgeFromSingleYear(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q1",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {timeClaim("+1948-00-00T00:00:00Z", 9)},
		},
	})
	require.NotNil(t, bio.BirthYear)
	assert.Nil(t, bio.DeathYear)
	assert.Nil(t, bio.Age)
}

func TestFactsIgnoresValuelessSnaks(t *testing.T) {
	bio := Facts(types.RawEntity{
		ID: "Q1",
		Claims: map[string][]types.Claim{
			types.PropertyDateOfBirth: {
				{MainSnak: types.Snak{SnakType: "somevalue"}},
				timeClaim("+1900-00-00T00:00:00Z", 9),
			},
		},
	})
	require.NotNil(t, bio.BirthYear)
	assert.Equal(t, 1900, *bio.BirthYear)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		year int
		ok   bool
	}{
		{"+1948-05-12T00:00:00Z", 1948, true},
		{"-0100-00-00T00:00:00Z", -100, true},
		{"+0000-00-00T00:00:00Z", 0, true},
		{"-12000-00-00T00:00:00Z", -12000, true},
		{"1948-05-12", 0, false},
		{"", 0, false},
		{"+abcd-01-01", 0, false},
	}
	for _, tt := range tests {
		year, ok := parseYear(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.year, year, "input %q", tt.in)
		}
	}
}
