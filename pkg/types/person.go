package types

import (
	"fmt"
	"strconv"
)

// Person is the normalized unit the tree is built from. Optional fields
// are pointers so "unknown" is distinguishable from zero values.
type Person struct {
	// ID is the knowledge-base identifier, always matching Q<digits>.
	ID string `json:"id"`

	// Label is the display name: English when available, otherwise the
	// first available language, otherwise the identifier itself.
	Label string `json:"label"`

	// Description is a short free-text gloss, same language preference
	// as Label.
	Description string `json:"description,omitempty"`

	// WikipediaURL is derived from the English-site link title only;
	// it is never guessed from the label.
	WikipediaURL string `json:"wikipedia_url,omitempty"`

	// ImageURL is the first non-blank string-valued image statement.
	ImageURL string `json:"image_url,omitempty"`

	// BirthYear and DeathYear are signed years; zero and negative values
	// denote the era before year 1 and render as "<abs> BCE".
	BirthYear *int `json:"birth_year,omitempty"`
	DeathYear *int `json:"death_year,omitempty"`

	// Age is present only when both years are present and DeathYear is
	// not before BirthYear. It always equals DeathYear - BirthYear.
	Age *int `json:"age,omitempty"`

	// ParentIDs is the order-preserving deduplicated union of father and
	// mother statement values. ChildIDs likewise for child statements.
	// Every element matches Q<digits>.
	ParentIDs []string `json:"parent_ids"`
	ChildIDs  []string `json:"child_ids"`
}

// SearchHit is one free-text search result. Hits are ephemeral and never
// cached beyond the query that produced them.
type SearchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// FormatYear renders a signed year for display. Non-positive years use
// the "before common era" convention: -100 renders as "100 BCE".
func FormatYear(year int) string {
	if year <= 0 {
		return strconv.Itoa(-year) + " BCE"
	}
	return strconv.Itoa(year)
}

// Lifespan renders the birth/death span, e.g. "100 BCE – 44 BCE" or
// "1948 –" for a living person. Empty when neither year is known.
func (p *Person) Lifespan() string {
	switch {
	case p.BirthYear != nil && p.DeathYear != nil:
		return FormatYear(*p.BirthYear) + " – " + FormatYear(*p.DeathYear)
	case p.BirthYear != nil:
		return FormatYear(*p.BirthYear) + " –"
	case p.DeathYear != nil:
		return "– " + FormatYear(*p.DeathYear)
	default:
		return ""
	}
}

// AgeBadge renders the inferred-age badge, e.g. "died at 56".
// Empty when the age is unknown.
func (p *Person) AgeBadge() string {
	if p.Age == nil {
		return ""
	}
	return fmt.Sprintf("died at %d", *p.Age)
}
