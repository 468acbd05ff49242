package memory

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/viterin/vek/vek32"

	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store"
)

var _ store.VectorStore = (*EmbeddingStore)(nil)

// EmbeddingStore holds concept embeddings in memory and answers neighbor
// searches by exact scan.
type EmbeddingStore struct {
	vectors map[string][]float32
	failErr error
}

// NewEmbeddingStore copies the given vectors.
func NewEmbeddingStore(vectors map[string][]float32) *EmbeddingStore {
	copied := make(map[string][]float32, len(vectors))
	for concept, vec := range vectors {
		copied[concept] = slices.Clone(vec)
	}
	return &EmbeddingStore{vectors: copied}
}

// FailWith makes every subsequent call return err. Passing nil restores
// normal operation.
func (s *EmbeddingStore) FailWith(err error) {
	s.failErr = err
}

// Embeddings returns the stored vectors for the given URIs; missing concepts
// are absent from the map.
func (s *EmbeddingStore) Embeddings(_ context.Context, conceptURIs []string) (map[string][]float32, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}

	out := make(map[string][]float32, len(conceptURIs))
	for _, u := range conceptURIs {
		if vec, ok := s.vectors[u]; ok {
			out[u] = slices.Clone(vec)
		}
	}
	return out, nil
}

// NearestNeighbors scans every stored embedding, excluding the query
// concept, and returns the limit most similar ordered by descending cosine
// similarity with concept URI ascending as tie-break.
func (s *EmbeddingStore) NearestNeighbors(_ context.Context, conceptURI string, limit int) ([]graph.Related, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}

	query, ok := s.vectors[conceptURI]
	if !ok {
		return []graph.Related{}, nil
	}

	related := make([]graph.Related, 0, len(s.vectors))
	for concept, vec := range s.vectors {
		if concept == conceptURI {
			continue
		}
		related = append(related, graph.Related{
			Concept:    concept,
			Similarity: cosine(query, vec),
		})
	}

	slices.SortFunc(related, func(a, b graph.Related) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		default:
			return strings.Compare(a.Concept, b.Concept)
		}
	})

	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// CountEmbeddings returns the embedding count.
func (s *EmbeddingStore) CountEmbeddings(_ context.Context) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.vectors)), nil
}

// Ping reports the injected fault, if any.
func (s *EmbeddingStore) Ping(_ context.Context) error {
	return s.failErr
}

func cosine(a, b []float32) float64 {
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
