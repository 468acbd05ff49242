// Package graph defines the domain model of the knowledge graph: concepts,
// relations, weighted edges, and the loaded-once relation catalog.
package graph

// Concept represents a node in the knowledge graph.
type Concept struct {
	URI      string `json:"uri"`
	Language string `json:"language"`
	Label    string `json:"label"`
}

// Relation represents a relationship type from the closed catalog, e.g.
// /r/IsA. Symmetric relations hold in both directions (/r/Synonym), directed
// ones do not (/r/IsA).
type Relation struct {
	URI         string `json:"uri"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Symmetric   bool   `json:"symmetric"`
}

// Edge represents a directed, weighted assertion linking two concepts
// through one relation. Weight is non-negative and not bounded to [0,1];
// corroborated assertions exceed 1. Edges are immutable after bulk load.
type Edge struct {
	ID          int64          `json:"-"`
	URI         string         `json:"uri"`
	Relation    string         `json:"rel"`
	RelLabel    string         `json:"rel_label,omitempty"`
	Start       string         `json:"start"`
	End         string         `json:"end"`
	Weight      float64        `json:"weight"`
	Dataset     string         `json:"dataset,omitempty"`
	SurfaceText string         `json:"surfaceText,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Related pairs a concept URI with its cosine similarity to a query concept.
type Related struct {
	Concept    string  `json:"concept"`
	Similarity float64 `json:"similarity"`
}

// Stats holds current row counts over the graph and vector stores.
type Stats struct {
	Edges      int64 `json:"edges"`
	Nodes      int64 `json:"nodes"`
	Relations  int64 `json:"relations"`
	Languages  int64 `json:"languages"`
	Embeddings int64 `json:"embeddings"`
}
