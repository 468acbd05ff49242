package graph

import (
	"slices"
	"strings"

	"github.com/semagraph/cognet/pkg/uri"
)

// Catalog is the immutable relation lookup loaded once at startup and shared
// read-only across all request handlers. The relation set is a closed
// enumeration, so no locking is needed after construction.
type Catalog struct {
	byURI   map[string]Relation
	ordered []Relation
}

// NewCatalog builds a catalog from the seeded relation rows. The ordered
// view is sorted by label, matching the relation listing contract.
func NewCatalog(relations []Relation) *Catalog {
	byURI := make(map[string]Relation, len(relations))
	ordered := make([]Relation, 0, len(relations))
	for _, rel := range relations {
		if _, exists := byURI[rel.URI]; exists {
			continue
		}
		byURI[rel.URI] = rel
		ordered = append(ordered, rel)
	}
	slices.SortFunc(ordered, func(a, b Relation) int {
		if c := strings.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return strings.Compare(a.URI, b.URI)
	})

	return &Catalog{byURI: byURI, ordered: ordered}
}

// Get returns the relation for a URI.
func (c *Catalog) Get(relURI string) (Relation, bool) {
	rel, ok := c.byURI[relURI]
	return rel, ok
}

// All returns the relations ordered by label. Callers must not modify the
// returned slice.
func (c *Catalog) All() []Relation {
	return c.ordered
}

// Len returns the number of relations in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// LabelFor returns the human label for a relation URI, falling back to the
// URI's name segment for relations outside the catalog.
func (c *Catalog) LabelFor(relURI string) string {
	if rel, ok := c.byURI[relURI]; ok {
		return rel.Label
	}
	return uri.Label(relURI)
}

// Symmetric reports whether a relation holds in both directions. Unknown
// relations are treated as directed.
func (c *Catalog) Symmetric(relURI string) bool {
	rel, ok := c.byURI[relURI]
	return ok && rel.Symmetric
}
