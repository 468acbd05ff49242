package pgx

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
)

// Embeddings fetches the stored vectors for the given concept URIs in one
// round trip. Concepts without an embedding are simply absent from the map.
func (s *EmbeddingStore) Embeddings(ctx context.Context, conceptURIs []string) (map[string][]float32, error) {
	out := make(map[string][]float32, len(conceptURIs))
	if len(conceptURIs) == 0 {
		return out, nil
	}

	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, selectEmbeddingsSQL, conceptURIs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var concept string
		var vec pgvector.Vector
		if err := rows.Scan(&concept, &vec); err != nil {
			return nil, apperror.Internal(err)
		}
		out[concept] = vec.Slice()
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	return out, nil
}

// NearestNeighbors searches the HNSW index for the concepts closest to the
// stored embedding of conceptURI under cosine distance. The query concept is
// excluded; ordering is ascending distance with concept URI as tie-break.
func (s *EmbeddingStore) NearestNeighbors(ctx context.Context, conceptURI string, limit int) ([]graph.Related, error) {
	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, nearestNeighborsSQL, conceptURI, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	related := make([]graph.Related, 0, limit)
	for rows.Next() {
		var r graph.Related
		if err := rows.Scan(&r.Concept, &r.Similarity); err != nil {
			return nil, apperror.Internal(err)
		}
		related = append(related, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	return related, nil
}

// CountEmbeddings returns the embedding row count.
func (s *EmbeddingStore) CountEmbeddings(ctx context.Context) (int64, error) {
	return s.count(ctx, countEmbeddingsSQL)
}

// Ping verifies the embeddings table is reachable. The graph store may be
// healthy while this probe fails, which the health endpoint reports as
// degraded.
func (s *EmbeddingStore) Ping(ctx context.Context) error {
	conn, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, pingVectorsSQL); err != nil {
		return apperror.Unavailable("vector store unreachable", err)
	}
	return nil
}

const selectEmbeddingsSQL = `
SELECT concept, vector
FROM embeddings
WHERE concept = ANY($1)`

const nearestNeighborsSQL = `
SELECT e1.concept, 1 - (e1.vector <=> e2.vector) AS similarity
FROM embeddings e1
JOIN embeddings e2 ON e2.concept = $1
WHERE e1.concept <> $1
ORDER BY e1.vector <=> e2.vector ASC, e1.concept ASC
LIMIT $2`

const countEmbeddingsSQL = `SELECT COUNT(*) FROM embeddings`

const pingVectorsSQL = `SELECT 1 FROM embeddings LIMIT 1`
