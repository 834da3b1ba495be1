// Package bloodlines renders on-demand genealogical trees for
// historical persons by resolving identifiers against a public
// knowledge base and recursively expanding parent/child relations to a
// bounded depth.
//
// The core is a small set of composable pieces: a two-phase person
// search that filters generic entity hits down to humans, a
// session-scoped resolver that caches each identifier's Person exactly
// once, pure extractors that derive validated biographical facts from
// noisy claim data, and a cancellation-aware tree expander.
//
// # Basic Usage
//
// Create a client and expand a tree:
//
//	svc := bloodlines.New(nil, nil, nil) // Wikidata, default config
//	defer svc.Close()
//
//	hits, err := svc.Search(ctx, "Charlemagne")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	node, err := svc.Tree(ctx, hits[0].ID, 3)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(node.Person.Label, node.Person.Lifespan())
//
// # Errors
//
// Operations fail with ErrNotFound, ErrCancelled, or a
// *wikidata.TransportError. Ambiguous biographical data never produces
// an error; contradictory or under-precise fields are simply omitted.
//
// # Concurrency
//
// Sibling branches of a tree resolve concurrently; the identifier cache
// is the sole shared mutable state and guarantees one fetch per id per
// session. A cancelled resolution writes nothing to the cache.
package bloodlines
