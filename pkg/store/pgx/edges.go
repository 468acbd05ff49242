package pgx

import (
	"context"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store"
)

// QueryEdges runs a filtered edge query ordered by weight descending, edge
// id ascending.
func (s *EdgeStore) QueryEdges(ctx context.Context, filter store.EdgeFilter, page store.EdgePage) ([]graph.Edge, error) {
	sql, args := buildEdgeQuery(filter, page)

	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	edges := make([]graph.Edge, 0, page.Limit)
	for rows.Next() {
		var e graph.Edge
		var metadata map[string]any
		err := rows.Scan(
			&e.ID, &e.URI, &e.Relation, &e.RelLabel,
			&e.Start, &e.End, &e.Weight,
			&e.SurfaceText, &e.Dataset, &metadata,
		)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if len(metadata) > 0 {
			e.Metadata = metadata
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	return edges, nil
}

// Relations returns the full relation catalog ordered by label.
func (s *EdgeStore) Relations(ctx context.Context) ([]graph.Relation, error) {
	conn, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, selectRelationsSQL)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var relations []graph.Relation
	for rows.Next() {
		var rel graph.Relation
		if err := rows.Scan(&rel.URI, &rel.Label, &rel.Description, &rel.Symmetric); err != nil {
			return nil, apperror.Internal(err)
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}

	return relations, nil
}

// CountEdgesByRelation returns the number of edges using a relation.
func (s *EdgeStore) CountEdgesByRelation(ctx context.Context, relURI string) (int64, error) {
	return s.count(ctx, countEdgesByRelationSQL, relURI)
}

// CountEdges returns the total edge count.
func (s *EdgeStore) CountEdges(ctx context.Context) (int64, error) {
	return s.count(ctx, countEdgesSQL)
}

// CountNodes returns the total node count.
func (s *EdgeStore) CountNodes(ctx context.Context) (int64, error) {
	return s.count(ctx, countNodesSQL)
}

// CountRelations returns the relation count.
func (s *EdgeStore) CountRelations(ctx context.Context) (int64, error) {
	return s.count(ctx, countRelationsSQL)
}

// CountLanguages returns the number of distinct node languages.
func (s *EdgeStore) CountLanguages(ctx context.Context) (int64, error) {
	return s.count(ctx, countLanguagesSQL)
}

// Ping verifies the graph store answers queries.
func (s *EdgeStore) Ping(ctx context.Context) error {
	conn, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	var one int
	if err := conn.QueryRow(ctx, pingSQL).Scan(&one); err != nil {
		return apperror.Unavailable("database unreachable", err)
	}
	return nil
}

const selectRelationsSQL = `
SELECT uri, label, COALESCE(description, ''), is_symmetric
FROM relations
ORDER BY label ASC, uri ASC`

const countEdgesByRelationSQL = `SELECT COUNT(*) FROM edges WHERE relation = $1`

const countEdgesSQL = `SELECT COUNT(*) FROM edges`

const countNodesSQL = `SELECT COUNT(*) FROM nodes`

const countRelationsSQL = `SELECT COUNT(*) FROM relations`

const countLanguagesSQL = `SELECT COUNT(DISTINCT language) FROM nodes`

const pingSQL = `SELECT 1`
