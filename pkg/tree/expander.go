// Package tree expands a person into a depth-bounded tree of relatives.
// Nodes are uniformly shaped: a person expands into person-shaped
// parents and children, materialized lazily through the resolver cache.
package tree

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nonoumasy/bloodlines/pkg/resolve"
	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// MaxDepth is the hard bound on recursive expansion. A ready node at
// this depth still exposes relation ids and counts, but spawns no
// further resolutions, bounding total fetch volume against the
// branching factor.
const MaxDepth = 3

// Status is the lifecycle state of a node. Cancellation never becomes
// failed or ready.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReady     Status = "ready"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Node is one expanded person. A node is owned by its parent's
// expansion; one branch's failure never affects siblings or the parent.
type Node struct {
	ID     string `json:"id"`
	Depth  int    `json:"depth"`
	Status Status `json:"status"`

	// Person is set once the node is ready.
	Person *types.Person `json:"person,omitempty"`

	// Err records why a failed node could not load. Local to the node.
	Err error `json:"-"`

	// Parents and Children are populated only below the depth bound.
	Parents  []*Node `json:"parents,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// ParentCount reports how many parents the person has, whether or not
// they were expanded.
func (n *Node) ParentCount() int {
	if n.Person == nil {
		return 0
	}
	return len(n.Person.ParentIDs)
}

// ChildCount reports how many children the person has, whether or not
// they were expanded.
func (n *Node) ChildCount() int {
	if n.Person == nil {
		return 0
	}
	return len(n.Person.ChildIDs)
}

// Expander builds trees through a shared resolver.
type Expander struct {
	resolver *resolve.Resolver
	maxDepth int
	logger   *slog.Logger
}

// NewExpander creates an Expander. maxDepth is clamped to [1, MaxDepth];
// non-positive values select MaxDepth.
func NewExpander(resolver *resolve.Resolver, maxDepth int, logger *slog.Logger) *Expander {
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{
		resolver: resolver,
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// Expand materializes the tree rooted at rootID to the expander's depth
// bound. The root is depth 0.
func (e *Expander) Expand(ctx context.Context, rootID string) *Node {
	return e.expand(ctx, rootID, 0, e.maxDepth)
}

// ExpandToDepth is Expand with a per-call bound, clamped to the
// expander's own.
func (e *Expander) ExpandToDepth(ctx context.Context, rootID string, maxDepth int) *Node {
	if maxDepth < 0 || maxDepth > e.maxDepth {
		maxDepth = e.maxDepth
	}
	return e.expand(ctx, rootID, 0, maxDepth)
}

func (e *Expander) expand(ctx context.Context, id string, depth, maxDepth int) *Node {
	node := &Node{ID: id, Depth: depth, Status: StatusPending}

	person, err := e.resolver.Resolve(ctx, id)
	if err != nil {
		if wikidata.IsCancelled(err) {
			node.Status = StatusCancelled
		} else {
			node.Status = StatusFailed
			node.Err = err
			e.logger.Debug("branch failed", "id", id, "depth", depth, "error", err)
		}
		return node
	}

	node.Person = person
	node.Status = StatusReady

	if depth >= maxDepth {
		// Relation counts stay visible; no recursive resolution fires.
		return node
	}

	node.Parents = make([]*Node, len(person.ParentIDs))
	node.Children = make([]*Node, len(person.ChildIDs))

	// Siblings resolve concurrently. The group is used purely as a wait
	// group: closures always return nil so a failed branch cannot cancel
	// the others.
	var g errgroup.Group
	for i, parentID := range person.ParentIDs {
		i, parentID := i, parentID
		g.Go(func() error {
			node.Parents[i] = e.expand(ctx, parentID, depth+1, maxDepth)
			return nil
		})
	}
	for i, childID := range person.ChildIDs {
		i, childID := i, childID
		g.Go(func() error {
			node.Children[i] = e.expand(ctx, childID, depth+1, maxDepth)
			return nil
		})
	}
	_ = g.Wait()

	return node
}
