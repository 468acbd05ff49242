// Package query implements the edge query engine. It validates and
// normalizes caller input, then delegates to a store.GraphStore for
// execution. Every query is bounded by a page limit so an unfiltered
// request degrades to a bounded scan instead of an unbounded one.
package query

import (
	"context"
	"math"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store"
	"github.com/semagraph/cognet/pkg/uri"
)

const (
	// DefaultLimit is the page size applied when the caller does not ask
	// for one.
	DefaultLimit = 50

	// MaxLimit is the hard cap on page size. Larger requests are clamped,
	// not rejected.
	MaxLimit = 1000
)

// Filter carries raw caller-supplied URI fragments. The engine
// normalizes them before they reach a store, so "dog" and "/c/en/dog"
// select the same edges.
type Filter struct {
	Start     string
	End       string
	Node      string
	Rel       string
	Dataset   string
	MinWeight *float64
}

// Page is a caller-supplied limit/offset pair before normalization.
type Page struct {
	Limit  int
	Offset int
}

// Normalize returns the effective page. A zero limit means the caller
// did not ask for one and gets DefaultLimit; limits above MaxLimit are
// clamped. Negative limits and offsets are rejected.
func (p Page) Normalize() (Page, error) {
	if p.Limit < 0 {
		return Page{}, apperror.Validationf("limit must be non-negative, got %d", p.Limit)
	}
	if p.Offset < 0 {
		return Page{}, apperror.Validationf("offset must be non-negative, got %d", p.Offset)
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// Normalize canonicalizes the URI fields (concept context for
// Start/End/Node, relation context for Rel, /d/ prefix for Dataset) and
// validates MinWeight. Idempotent, so handlers can normalize for their
// response envelope and pass the result back through the engine.
func (f Filter) Normalize() (Filter, error) {
	var err error
	if f.Start != "" {
		if f.Start, err = uri.NormalizeConcept(f.Start, ""); err != nil {
			return Filter{}, err
		}
	}
	if f.End != "" {
		if f.End, err = uri.NormalizeConcept(f.End, ""); err != nil {
			return Filter{}, err
		}
	}
	if f.Node != "" {
		if f.Node, err = uri.NormalizeConcept(f.Node, ""); err != nil {
			return Filter{}, err
		}
	}
	if f.Rel != "" {
		if f.Rel, err = uri.NormalizeRelation(f.Rel); err != nil {
			return Filter{}, err
		}
	}
	if f.Dataset != "" {
		f.Dataset = normalizeDataset(f.Dataset)
	}
	if f.MinWeight != nil {
		w := *f.MinWeight
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Filter{}, apperror.Validation("minWeight must be a finite number")
		}
	}
	return f, nil
}

func (f Filter) toStore() store.EdgeFilter {
	return store.EdgeFilter{
		Start:     f.Start,
		End:       f.End,
		Node:      f.Node,
		Rel:       f.Rel,
		Dataset:   f.Dataset,
		MinWeight: f.MinWeight,
	}
}

// Engine answers edge queries against a graph store.
type Engine struct {
	store store.GraphStore
}

// New creates a query engine backed by the given store.
func New(s store.GraphStore) *Engine {
	return &Engine{store: s}
}

// Edges runs a filtered edge query. It returns the matching edges in
// deterministic order (weight descending, then edge id ascending) and
// the effective page after clamping, so callers can report the limit
// that was actually applied.
func (e *Engine) Edges(ctx context.Context, filter Filter, page Page) ([]graph.Edge, Page, error) {
	effective, err := page.Normalize()
	if err != nil {
		return nil, Page{}, err
	}

	nf, err := filter.Normalize()
	if err != nil {
		return nil, Page{}, err
	}

	edges, err := e.store.QueryEdges(ctx, nf.toStore(), store.EdgePage{Limit: effective.Limit, Offset: effective.Offset})
	if err != nil {
		return nil, Page{}, err
	}
	return edges, effective, nil
}

// ConceptEdges returns the edges incident to a single concept, in
// either direction, optionally restricted to one relation. This is the
// lookup behind the concept endpoint, so the concept argument accepts
// anything the normalizer accepts, including a bare term.
func (e *Engine) ConceptEdges(ctx context.Context, concept string, rel string, page Page) ([]graph.Edge, Page, error) {
	node, err := uri.NormalizeConcept(concept, "")
	if err != nil {
		return nil, Page{}, err
	}
	return e.Edges(ctx, Filter{Node: node, Rel: rel}, page)
}

// Relations returns the relation catalog entries known to the store.
func (e *Engine) Relations(ctx context.Context) ([]graph.Relation, error) {
	return e.store.Relations(ctx)
}

// normalizeDataset prepends the /d/ prefix when the caller passed a
// bare dataset name. Dataset URIs are otherwise taken verbatim.
func normalizeDataset(s string) string {
	if len(s) >= 3 && s[:3] == "/d/" {
		return s
	}
	return "/d/" + s
}
