package query

import (
	"context"
	"math"
	"testing"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/store/memory"
)

func testEngine() *Engine {
	relations := []graph.Relation{
		{URI: "/r/IsA", Label: "is a"},
		{URI: "/r/CapableOf", Label: "capable of"},
		{URI: "/r/RelatedTo", Label: "related to", Symmetric: true},
	}
	concepts := []graph.Concept{
		{URI: "/c/en/dog", Language: "en", Label: "dog"},
		{URI: "/c/en/mammal", Language: "en", Label: "mammal"},
		{URI: "/c/en/animal", Language: "en", Label: "animal"},
		{URI: "/c/en/bark", Language: "en", Label: "bark"},
	}
	edges := []graph.Edge{
		{
			URI:      "/a/[/r/IsA/,/c/en/dog/,/c/en/mammal/]",
			Relation: "/r/IsA",
			Start:    "/c/en/dog",
			End:      "/c/en/mammal",
			Weight:   3.46,
			Dataset:  "/d/conceptnet/4/en",
		},
		{
			URI:      "/a/[/r/IsA/,/c/en/dog/,/c/en/animal/]",
			Relation: "/r/IsA",
			Start:    "/c/en/dog",
			End:      "/c/en/animal",
			Weight:   2.1,
			Dataset:  "/d/wiktionary/en",
		},
		{
			URI:      "/a/[/r/CapableOf/,/c/en/dog/,/c/en/bark/]",
			Relation: "/r/CapableOf",
			Start:    "/c/en/dog",
			End:      "/c/en/bark",
			Weight:   1.5,
			Dataset:  "/d/conceptnet/4/en",
		},
		{
			URI:      "/a/[/r/IsA/,/c/en/mammal/,/c/en/animal/]",
			Relation: "/r/IsA",
			Start:    "/c/en/mammal",
			End:      "/c/en/animal",
			Weight:   2.0,
			Dataset:  "/d/wiktionary/en",
		},
	}
	return New(memory.NewEdgeStore(relations, concepts, edges))
}

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		want       Page
		wantErr    bool
		wantErrMsg string
	}{
		{name: "zero limit gets default", page: Page{}, want: Page{Limit: 50}},
		{name: "explicit limit kept", page: Page{Limit: 20, Offset: 5}, want: Page{Limit: 20, Offset: 5}},
		{name: "limit at cap kept", page: Page{Limit: 1000}, want: Page{Limit: 1000}},
		{name: "limit above cap clamped", page: Page{Limit: 1001}, want: Page{Limit: 1000}},
		{name: "large limit clamped", page: Page{Limit: 500000}, want: Page{Limit: 1000}},
		{name: "negative limit rejected", page: Page{Limit: -1}, wantErr: true},
		{name: "negative offset rejected", page: Page{Offset: -5}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.page.Normalize()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got none")
				}
				if apperror.KindOf(err) != apperror.KindValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestEdges_OrderedByWeightThenID(t *testing.T) {
	e := testEngine()

	edges, effective, err := e.Edges(context.Background(), Filter{Start: "/c/en/dog", Rel: "/r/IsA"}, Page{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if effective.Limit != DefaultLimit {
		t.Fatalf("expected effective limit %d, got %d", DefaultLimit, effective.Limit)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if edges[0].End != "/c/en/mammal" || edges[1].End != "/c/en/animal" {
		t.Fatalf("expected mammal before animal, got %s then %s", edges[0].End, edges[1].End)
	}
}

func TestEdges_NormalizesFilterURIs(t *testing.T) {
	e := testEngine()

	// Bare terms and relation names select the same edges as full URIs.
	edges, _, err := e.Edges(context.Background(), Filter{Start: "Dog", Rel: "IsA"}, Page{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	for _, edge := range edges {
		if edge.Start != "/c/en/dog" {
			t.Fatalf("expected start /c/en/dog, got %s", edge.Start)
		}
	}
}

func TestEdges_DatasetFilter(t *testing.T) {
	e := testEngine()

	for _, dataset := range []string{"/d/wiktionary/en", "wiktionary/en"} {
		edges, _, err := e.Edges(context.Background(), Filter{Dataset: dataset}, Page{})
		if err != nil {
			t.Fatalf("expected no error for dataset %q, got %v", dataset, err)
		}
		if len(edges) != 2 {
			t.Fatalf("expected 2 edges for dataset %q, got %d", dataset, len(edges))
		}
	}
}

func TestEdges_MinWeight(t *testing.T) {
	e := testEngine()

	minWeight := 2.0
	edges, _, err := e.Edges(context.Background(), Filter{Node: "dog", MinWeight: &minWeight}, Page{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges at or above weight 2.0, got %d", len(edges))
	}
	for _, edge := range edges {
		if edge.Weight < minWeight {
			t.Fatalf("expected weight >= %v, got %v", minWeight, edge.Weight)
		}
	}
}

func TestEdges_MinWeightMustBeFinite(t *testing.T) {
	e := testEngine()

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := e.Edges(context.Background(), Filter{MinWeight: &w}, Page{})
		if apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("expected validation error for %v, got %v", w, err)
		}
	}
}

func TestEdges_InvalidFilterURI(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name   string
		filter Filter
	}{
		{name: "bad start scheme", filter: Filter{Start: "/x/en/dog"}},
		{name: "space inside end uri", filter: Filter{End: "/c/en/ice cream"}},
		{name: "empty node segment", filter: Filter{Node: "/c/en//dog"}},
		{name: "space in bare rel", filter: Filter{Rel: "Is A"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := e.Edges(context.Background(), tc.filter, Page{})
			if apperror.KindOf(err) != apperror.KindInvalidURI {
				t.Fatalf("expected invalid URI error, got %v", err)
			}
		})
	}
}

func TestEdges_RejectsBadPageBeforeStore(t *testing.T) {
	e := testEngine()

	_, _, err := e.Edges(context.Background(), Filter{}, Page{Limit: -1})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEdges_ClampsLargeLimit(t *testing.T) {
	e := testEngine()

	_, effective, err := e.Edges(context.Background(), Filter{}, Page{Limit: 99999})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if effective.Limit != MaxLimit {
		t.Fatalf("expected limit clamped to %d, got %d", MaxLimit, effective.Limit)
	}
}

func TestConceptEdges(t *testing.T) {
	e := testEngine()

	// A bare term is normalized before delegation and matches both
	// incoming and outgoing edges.
	edges, _, err := e.ConceptEdges(context.Background(), "animal", "", Page{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	for _, edge := range edges {
		if edge.Start != "/c/en/animal" && edge.End != "/c/en/animal" {
			t.Fatalf("expected /c/en/animal on one endpoint, got %s -> %s", edge.Start, edge.End)
		}
	}
}

func TestConceptEdges_RelationRestricted(t *testing.T) {
	e := testEngine()

	edges, _, err := e.ConceptEdges(context.Background(), "dog", "CapableOf", Page{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].End != "/c/en/bark" {
		t.Fatalf("expected /c/en/bark, got %s", edges[0].End)
	}
}

func TestConceptEdges_InvalidConcept(t *testing.T) {
	e := testEngine()

	_, _, err := e.ConceptEdges(context.Background(), "/C/en/dog", "", Page{})
	if apperror.KindOf(err) != apperror.KindInvalidURI {
		t.Fatalf("expected invalid URI error, got %v", err)
	}
}

func TestFilterNormalize_Idempotent(t *testing.T) {
	minWeight := 1.0
	f := Filter{Start: "Dog", Rel: "IsA", Dataset: "wiktionary/en", MinWeight: &minWeight}

	once, err := f.Normalize()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if once.Start != "/c/en/dog" || once.Rel != "/r/IsA" || once.Dataset != "/d/wiktionary/en" {
		t.Fatalf("expected normalized fields, got %+v", once)
	}

	twice, err := once.Normalize()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if twice.Start != once.Start || twice.Rel != once.Rel || twice.Dataset != once.Dataset {
		t.Fatalf("expected idempotence, got %+v then %+v", once, twice)
	}
}

func TestRelations(t *testing.T) {
	e := testEngine()

	relations, err := e.Relations(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(relations) != 3 {
		t.Fatalf("expected 3 relations, got %d", len(relations))
	}
}
