package bloodlines

import (
	"context"
	"log/slog"
	"time"

	"github.com/nonoumasy/bloodlines/pkg/config"
	"github.com/nonoumasy/bloodlines/pkg/resolve"
	"github.com/nonoumasy/bloodlines/pkg/search"
	"github.com/nonoumasy/bloodlines/pkg/tree"
	"github.com/nonoumasy/bloodlines/pkg/types"
	"github.com/nonoumasy/bloodlines/pkg/wikidata"
)

// Client is the main interface for building genealogical trees from a
// public knowledge base.
type Client interface {
	// Search finds person entities for a free-text query. Submitting a
	// new query supersedes any prior pending one.
	Search(ctx context.Context, query string) ([]types.SearchHit, error)

	// Person resolves a single identifier to a normalized Person,
	// fetching at most once per session.
	Person(ctx context.Context, id string) (*types.Person, error)

	// Tree expands the person at rootID into a depth-bounded tree.
	// maxDepth is clamped to the configured bound; negative selects it.
	// The returned error reflects only the root; branch failures stay
	// local to their nodes.
	Tree(ctx context.Context, rootID string, maxDepth int) (*tree.Node, error)
}

// Errors surfaced by the facade, aliased from the client taxonomy.
var (
	// ErrNotFound is returned when an id has no record in the knowledge base.
	ErrNotFound = wikidata.ErrNotFound
	// ErrCancelled is returned when an operation was superseded or aborted.
	ErrCancelled = wikidata.ErrCancelled
	// ErrInvalidID is returned for identifiers not matching Q<digits>.
	ErrInvalidID = wikidata.ErrInvalidID
)

// Service is the main implementation of the Client interface. All state
// it holds is scoped to the session that created it.
type Service struct {
	kb       wikidata.Client
	resolver *resolve.Resolver
	session  *search.Session
	expander *tree.Expander
	config   *config.Config
	logger   *slog.Logger
}

// New creates a Service. kb may be nil, in which case an HTTP client
// (circuit-breaker wrapped when enabled) is built from cfg. cfg may be
// nil for defaults.
func New(kb wikidata.Client, cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if kb == nil {
		kb = NewKnowledgeBase(cfg, logger)
	}

	resolver := resolve.New(kb, logger)
	searcher := search.NewPersonSearch(kb, cfg.Search.Limit, logger)
	session := search.NewSession(searcher, time.Duration(cfg.Search.SettleMillis)*time.Millisecond)
	expander := tree.NewExpander(resolver, cfg.Tree.MaxDepth, logger)

	return &Service{
		kb:       kb,
		resolver: resolver,
		session:  session,
		expander: expander,
		config:   cfg,
		logger:   logger,
	}
}

// NewKnowledgeBase builds the HTTP knowledge-base client described by
// cfg, wrapped with a circuit breaker when enabled.
func NewKnowledgeBase(cfg *config.Config, logger *slog.Logger) wikidata.Client {
	var kb wikidata.Client = wikidata.NewHTTPClient(wikidata.Config{
		BaseURL:   cfg.Wikidata.BaseURL,
		Language:  cfg.Wikidata.Language,
		UserAgent: cfg.Wikidata.UserAgent,
		Timeout:   time.Duration(cfg.Wikidata.Timeout) * time.Second,
	}, logger)

	if cfg.CircuitBreaker.Enabled {
		kb = wikidata.NewCircuitBreakerClient(kb, cfg.CircuitBreaker, logger, "wikidata")
	}
	return kb
}

// Search implements Client.
func (s *Service) Search(ctx context.Context, query string) ([]types.SearchHit, error) {
	return s.session.Submit(ctx, query)
}

// Person implements Client.
func (s *Service) Person(ctx context.Context, id string) (*types.Person, error) {
	return s.resolver.Resolve(ctx, id)
}

// Tree implements Client.
func (s *Service) Tree(ctx context.Context, rootID string, maxDepth int) (*tree.Node, error) {
	node := s.expander.ExpandToDepth(ctx, rootID, maxDepth)
	switch node.Status {
	case tree.StatusFailed:
		return node, node.Err
	case tree.StatusCancelled:
		return node, ErrCancelled
	default:
		return node, nil
	}
}

// Resolver exposes the session cache, mostly for tests and tooling.
func (s *Service) Resolver() *resolve.Resolver {
	return s.resolver
}

// Close releases the session's pending work.
func (s *Service) Close() {
	s.session.Close()
}
