// Package dto defines the JSON shapes the HTTP API exposes.
package dto

import (
	"github.com/nonoumasy/bloodlines/pkg/tree"
	"github.com/nonoumasy/bloodlines/pkg/types"
)

// PersonResponse is the outward shape of a resolved person.
type PersonResponse struct {
	ID           string   `json:"id" yaml:"id"`
	Label        string   `json:"label" yaml:"label"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	WikipediaURL string   `json:"wikipedia_url,omitempty" yaml:"wikipedia_url,omitempty"`
	ImageURL     string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	BirthYear    *int     `json:"birth_year,omitempty" yaml:"birth_year,omitempty"`
	DeathYear    *int     `json:"death_year,omitempty" yaml:"death_year,omitempty"`
	Age          *int     `json:"age,omitempty" yaml:"age,omitempty"`
	Lifespan     string   `json:"lifespan,omitempty" yaml:"lifespan,omitempty"`
	AgeBadge     string   `json:"age_badge,omitempty" yaml:"age_badge,omitempty"`
	ParentIDs    []string `json:"parent_ids" yaml:"parent_ids"`
	ChildIDs     []string `json:"child_ids" yaml:"child_ids"`
}

// FromPerson converts a normalized Person.
func FromPerson(p *types.Person) *PersonResponse {
	if p == nil {
		return nil
	}
	return &PersonResponse{
		ID:           p.ID,
		Label:        p.Label,
		Description:  p.Description,
		WikipediaURL: p.WikipediaURL,
		ImageURL:     p.ImageURL,
		BirthYear:    p.BirthYear,
		DeathYear:    p.DeathYear,
		Age:          p.Age,
		Lifespan:     p.Lifespan(),
		AgeBadge:     p.AgeBadge(),
		ParentIDs:    p.ParentIDs,
		ChildIDs:     p.ChildIDs,
	}
}

// SearchResults is the response of the search endpoint. An empty Hits
// list is a successful no-results response, not an error.
type SearchResults struct {
	Hits  []types.SearchHit `json:"hits"`
	Total int               `json:"total"`
}

// TreeNodeResponse is the outward shape of one expanded node. A failed
// node carries a local indicator; its siblings are unaffected.
type TreeNodeResponse struct {
	ID          string              `json:"id" yaml:"id"`
	Depth       int                 `json:"depth" yaml:"depth"`
	Status      string              `json:"status" yaml:"status"`
	Person      *PersonResponse     `json:"person,omitempty" yaml:"person,omitempty"`
	Error       string              `json:"error,omitempty" yaml:"error,omitempty"`
	ParentCount int                 `json:"parent_count" yaml:"parent_count"`
	ChildCount  int                 `json:"child_count" yaml:"child_count"`
	Parents     []*TreeNodeResponse `json:"parents,omitempty" yaml:"parents,omitempty"`
	Children    []*TreeNodeResponse `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromNode converts an expanded tree recursively.
func FromNode(n *tree.Node) *TreeNodeResponse {
	if n == nil {
		return nil
	}
	resp := &TreeNodeResponse{
		ID:          n.ID,
		Depth:       n.Depth,
		Status:      string(n.Status),
		Person:      FromPerson(n.Person),
		ParentCount: n.ParentCount(),
		ChildCount:  n.ChildCount(),
	}
	if n.Status == tree.StatusFailed {
		resp.Error = "couldn't load"
	}
	for _, p := range n.Parents {
		resp.Parents = append(resp.Parents, FromNode(p))
	}
	for _, c := range n.Children {
		resp.Children = append(resp.Children, FromNode(c))
	}
	return resp
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
