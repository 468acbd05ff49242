// Package store defines the read-only storage contracts over the knowledge
// graph and the embedding set. The pgx subpackage implements them against
// PostgreSQL with pgvector; the memory subpackage is an exact brute-force
// implementation used as the correctness reference in tests.
package store

import (
	"context"

	"github.com/semagraph/cognet/pkg/graph"
)

// EdgeFilter narrows an edge query. Zero-value fields are inactive. URIs are
// already normalized by the query engine before they reach a store.
type EdgeFilter struct {
	// Start matches the edge's start node exactly.
	Start string
	// End matches the edge's end node exactly.
	End string
	// Node matches either endpoint (logical OR).
	Node string
	// Rel matches the relation URI.
	Rel string
	// Dataset matches the source dataset tag.
	Dataset string
	// MinWeight is an inclusive lower bound on edge weight.
	MinWeight *float64
}

// Empty reports whether no filter field is active.
func (f EdgeFilter) Empty() bool {
	return f.Start == "" && f.End == "" && f.Node == "" && f.Rel == "" &&
		f.Dataset == "" && f.MinWeight == nil
}

// EdgePage bounds a result page. Values arrive clamped by the query engine;
// stores apply them verbatim.
type EdgePage struct {
	Limit  int
	Offset int
}

// GraphStore is the read-only view over concepts, relations, and edges.
// Results from QueryEdges are ordered by weight descending with edge id
// ascending as tie-break, so repeated queries against unchanged data return
// identical sequences.
type GraphStore interface {
	QueryEdges(ctx context.Context, filter EdgeFilter, page EdgePage) ([]graph.Edge, error)
	Relations(ctx context.Context) ([]graph.Relation, error)
	CountEdgesByRelation(ctx context.Context, relURI string) (int64, error)
	CountEdges(ctx context.Context) (int64, error)
	CountNodes(ctx context.Context) (int64, error)
	CountRelations(ctx context.Context) (int64, error)
	CountLanguages(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// VectorStore is the read-only view over concept embeddings.
type VectorStore interface {
	// Embeddings returns the stored vectors for the given concept URIs in a
	// single round trip. Missing concepts are absent from the result map.
	Embeddings(ctx context.Context, conceptURIs []string) (map[string][]float32, error)
	// NearestNeighbors returns up to limit concepts closest to the stored
	// embedding of conceptURI under cosine distance, excluding conceptURI
	// itself, ordered by descending similarity with concept URI ascending as
	// tie-break. An unknown conceptURI yields an empty result; existence is
	// the caller's concern.
	NearestNeighbors(ctx context.Context, conceptURI string, limit int) ([]graph.Related, error)
	CountEmbeddings(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
