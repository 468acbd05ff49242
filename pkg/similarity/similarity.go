// Package similarity implements vector-space relatedness over concept
// embeddings. Scores are raw cosine values, so they live in [-1, 1] and
// are not rescaled or clamped.
package similarity

import (
	"context"
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store"
	"github.com/semagraph/cognet/pkg/uri"
)

const (
	// DefaultRelatedLimit is the neighbor count applied when the caller
	// does not ask for one.
	DefaultRelatedLimit = 10

	// MaxRelatedLimit is the hard cap on neighbor count. Larger requests
	// are clamped, not rejected.
	MaxRelatedLimit = 100
)

// Engine answers relatedness queries against a vector store.
type Engine struct {
	vectors store.VectorStore
}

// New creates a similarity engine backed by the given vector store.
func New(vectors store.VectorStore) *Engine {
	return &Engine{vectors: vectors}
}

// Relatedness returns the cosine similarity between the embeddings of
// two concepts. Both arguments accept anything the concept normalizer
// accepts. When either embedding is missing the returned error names
// every missing URI.
func (e *Engine) Relatedness(ctx context.Context, first, second string) (float64, error) {
	a, err := uri.NormalizeConcept(first, "")
	if err != nil {
		return 0, err
	}
	b, err := uri.NormalizeConcept(second, "")
	if err != nil {
		return 0, err
	}

	uris := store.DedupeStrings([]string{a, b})
	vectors, err := e.vectors.Embeddings(ctx, uris)
	if err != nil {
		return 0, err
	}

	var missing []string
	for _, u := range uris {
		if _, ok := vectors[u]; !ok {
			missing = append(missing, u)
		}
	}
	if len(missing) > 0 {
		return 0, apperror.EmbeddingNotFound(missing...)
	}

	return Cosine(vectors[a], vectors[b]), nil
}

// RelatedConcepts returns the nearest neighbors of a concept by cosine
// similarity, strongest first and never including the concept itself.
// It returns the effective limit after clamping. A concept without an
// embedding yields an EmbeddingNotFound error rather than an empty
// list, so callers can distinguish "unknown" from "isolated".
func (e *Engine) RelatedConcepts(ctx context.Context, concept string, limit int) ([]graph.Related, int, error) {
	if limit < 0 {
		return nil, 0, apperror.Validationf("limit must be non-negative, got %d", limit)
	}
	if limit == 0 {
		limit = DefaultRelatedLimit
	}
	if limit > MaxRelatedLimit {
		limit = MaxRelatedLimit
	}

	node, err := uri.NormalizeConcept(concept, "")
	if err != nil {
		return nil, 0, err
	}

	vectors, err := e.vectors.Embeddings(ctx, []string{node})
	if err != nil {
		return nil, 0, err
	}
	if _, ok := vectors[node]; !ok {
		return nil, 0, apperror.EmbeddingNotFound(node)
	}

	related, err := e.vectors.NearestNeighbors(ctx, node, limit)
	if err != nil {
		return nil, 0, err
	}
	return related, limit, nil
}

// Cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude or the dimensions disagree.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	dot := float64(vek32.Dot(a, b))
	normA := math.Sqrt(float64(vek32.Dot(a, a)))
	normB := math.Sqrt(float64(vek32.Dot(b, b)))
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}
