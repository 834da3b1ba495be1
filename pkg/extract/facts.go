// Package extract turns raw knowledge-base claim data into validated
// biographical facts and relation id lists. Everything in this package
// is pure: no I/O, no shared state.
package extract

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nonoumasy/bloodlines/pkg/types"
)

// enWikipediaArticleBase prefixes English-site link titles.
const enWikipediaArticleBase = "https://en.wikipedia.org/wiki/"

// Biography holds the validated biographical fields derived from one
// raw entity record.
type Biography struct {
	Label        string
	Description  string
	WikipediaURL string
	ImageURL     string
	BirthYear    *int
	DeathYear    *int
	Age          *int
}

// Facts derives a Biography from a raw entity. Ambiguous or contradictory
// claim data resolves to field omission, never to an error.
func Facts(entity types.RawEntity) Biography {
	bio := Biography{
		Label:       pickTerm(entity.Labels, entity.ID),
		Description: pickTerm(entity.Descriptions, entity.ID),
	}

	if link, ok := entity.Sitelinks["enwiki"]; ok && link.Title != "" {
		bio.WikipediaURL = enWikipediaArticleBase + strings.ReplaceAll(link.Title, " ", "_")
	}

	bio.ImageURL = firstImage(entity.Claims[types.PropertyImage])
	bio.BirthYear = firstYear(entity.Claims[types.PropertyDateOfBirth])
	bio.DeathYear = firstYear(entity.Claims[types.PropertyDateOfDeath])

	// A record claiming birth after death is contradictory; drop both
	// years rather than guess which one is wrong.
	if bio.BirthYear != nil && bio.DeathYear != nil && *bio.BirthYear > *bio.DeathYear {
		bio.BirthYear = nil
		bio.DeathYear = nil
	}

	if bio.BirthYear != nil && bio.DeathYear != nil {
		age := *bio.DeathYear - *bio.BirthYear
		bio.Age = &age
	}

	return bio
}

// pickTerm prefers the English term, then the first available language
// (smallest language code, so the fallback is deterministic), then the
// identifier itself.
func pickTerm(terms map[string]types.Term, fallback string) string {
	if t, ok := terms["en"]; ok && t.Value != "" {
		return t.Value
	}

	languages := make([]string, 0, len(terms))
	for lang := range terms {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	for _, lang := range languages {
		if v := terms[lang].Value; v != "" {
			return v
		}
	}
	return fallback
}

// firstImage returns the first string-valued image statement that is
// non-empty after trimming. Turning the value into a fetchable URL is
// the renderer's concern, not ours.
func firstImage(claims []types.Claim) string {
	for _, claim := range claims {
		s, ok := claim.MainSnak.DataValue.AsString()
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// firstYear returns the year of the first temporal statement carrying
// year-or-finer precision. Coarser statements (decade, century,
// millennium) are rejected, not approximated.
func firstYear(claims []types.Claim) *int {
	for _, claim := range claims {
		tv, ok := claim.MainSnak.DataValue.AsTime()
		if !ok || tv.Precision < types.MinTimePrecision {
			continue
		}
		if year, ok := parseYear(tv.Time); ok {
			return &year
		}
	}
	return nil
}

// parseYear reads the year out of a signed-era date string such as
// "+1948-05-12T00:00:00Z" or "-0100-00-00T00:00:00Z". Year zero and
// negative years denote the era before year 1.
func parseYear(value string) (int, bool) {
	if len(value) < 2 {
		return 0, false
	}

	sign := 1
	switch value[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}

	rest := value[1:]
	end := strings.IndexByte(rest, '-')
	if end < 0 {
		end = len(rest)
	}

	year, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return sign * year, true
}
