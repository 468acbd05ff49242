// Package memory provides exact in-memory implementations of the storage
// contracts. They serve as the correctness reference for the approximate
// pgvector path and back the engine and handler tests; filtering and
// neighbor search are brute force over the full data set.
package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store"
)

var _ store.GraphStore = (*EdgeStore)(nil)

// EdgeStore holds the graph in memory. Immutable after construction apart
// from the fault injection hook.
type EdgeStore struct {
	relations []graph.Relation
	concepts  []graph.Concept
	edges     []graph.Edge
	failErr   error
}

// NewEdgeStore copies the given data. Edges without an explicit ID get
// sequential ones in input order, mirroring bulk-load assignment.
func NewEdgeStore(relations []graph.Relation, concepts []graph.Concept, edges []graph.Edge) *EdgeStore {
	byURI := make(map[string]graph.Relation, len(relations))
	for _, rel := range relations {
		byURI[rel.URI] = rel
	}

	copied := make([]graph.Edge, len(edges))
	copy(copied, edges)
	var nextID int64 = 1
	for i := range copied {
		if copied[i].ID == 0 {
			copied[i].ID = nextID
		}
		if copied[i].ID >= nextID {
			nextID = copied[i].ID + 1
		}
		if copied[i].RelLabel == "" {
			copied[i].RelLabel = byURI[copied[i].Relation].Label
		}
	}

	return &EdgeStore{
		relations: slices.Clone(relations),
		concepts:  slices.Clone(concepts),
		edges:     copied,
	}
}

// FailWith makes every subsequent call return err. Passing nil restores
// normal operation.
func (s *EdgeStore) FailWith(err error) {
	s.failErr = err
}

// QueryEdges filters, orders by weight descending then id ascending, and
// pages.
func (s *EdgeStore) QueryEdges(_ context.Context, filter store.EdgeFilter, page store.EdgePage) ([]graph.Edge, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}

	matched := make([]graph.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if !matches(e, filter) {
			continue
		}
		matched = append(matched, e)
	}

	slices.SortFunc(matched, func(a, b graph.Edge) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	if page.Offset >= len(matched) {
		return []graph.Edge{}, nil
	}
	matched = matched[page.Offset:]
	if page.Limit > 0 && len(matched) > page.Limit {
		matched = matched[:page.Limit]
	}

	return slices.Clone(matched), nil
}

func matches(e graph.Edge, filter store.EdgeFilter) bool {
	if filter.Start != "" && e.Start != filter.Start {
		return false
	}
	if filter.End != "" && e.End != filter.End {
		return false
	}
	if filter.Node != "" && e.Start != filter.Node && e.End != filter.Node {
		return false
	}
	if filter.Rel != "" && e.Relation != filter.Rel {
		return false
	}
	if filter.Dataset != "" && e.Dataset != filter.Dataset {
		return false
	}
	if filter.MinWeight != nil && e.Weight < *filter.MinWeight {
		return false
	}
	return true
}

// Relations returns the catalog ordered by label then URI.
func (s *EdgeStore) Relations(_ context.Context) ([]graph.Relation, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}

	relations := slices.Clone(s.relations)
	slices.SortFunc(relations, func(a, b graph.Relation) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.URI, b.URI)
	})
	return relations, nil
}

// CountEdgesByRelation returns the number of edges using a relation.
func (s *EdgeStore) CountEdgesByRelation(_ context.Context, relURI string) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}

	var n int64
	for _, e := range s.edges {
		if e.Relation == relURI {
			n++
		}
	}
	return n, nil
}

// CountEdges returns the total edge count.
func (s *EdgeStore) CountEdges(_ context.Context) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.edges)), nil
}

// CountNodes returns the total concept count.
func (s *EdgeStore) CountNodes(_ context.Context) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.concepts)), nil
}

// CountRelations returns the relation count.
func (s *EdgeStore) CountRelations(_ context.Context) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}
	return int64(len(s.relations)), nil
}

// CountLanguages returns the number of distinct concept languages.
func (s *EdgeStore) CountLanguages(_ context.Context) (int64, error) {
	if s.failErr != nil {
		return 0, s.failErr
	}

	languages := make(map[string]struct{}, 8)
	for _, c := range s.concepts {
		if c.Language != "" {
			languages[c.Language] = struct{}{}
		}
	}
	return int64(len(languages)), nil
}

// Ping reports the injected fault, if any.
func (s *EdgeStore) Ping(_ context.Context) error {
	return s.failErr
}
