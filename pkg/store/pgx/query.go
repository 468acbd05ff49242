package pgx

import (
	"strconv"
	"strings"

	"github.com/semagraph/cognet/pkg/store"
)

// buildEdgeQuery compiles a filter and page into SQL plus positional args.
// A node+relation filter rides the edge_features derived index; a bare node
// filter falls back to the OR over both endpoint columns. Numbered
// placeholders are reused where one value binds twice.
func buildEdgeQuery(filter store.EdgeFilter, page store.EdgePage) (string, []any) {
	var b strings.Builder
	b.WriteString(selectEdgesSQL)

	args := make([]any, 0, 8)
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Start != "" {
		b.WriteString(" AND e.start_node = " + bind(filter.Start))
	}
	if filter.End != "" {
		b.WriteString(" AND e.end_node = " + bind(filter.End))
	}
	switch {
	case filter.Node != "" && filter.Rel != "":
		b.WriteString(" AND e.id IN (SELECT edge_id FROM edge_features WHERE node = " +
			bind(filter.Node) + " AND relation = " + bind(filter.Rel) + ")")
	case filter.Node != "":
		ph := bind(filter.Node)
		b.WriteString(" AND (e.start_node = " + ph + " OR e.end_node = " + ph + ")")
	case filter.Rel != "":
		b.WriteString(" AND e.relation = " + bind(filter.Rel))
	}
	if filter.Dataset != "" {
		b.WriteString(" AND e.dataset = " + bind(filter.Dataset))
	}
	if filter.MinWeight != nil {
		b.WriteString(" AND e.weight >= " + bind(*filter.MinWeight))
	}

	b.WriteString(orderEdgesSQL)
	b.WriteString(" LIMIT " + bind(page.Limit) + " OFFSET " + bind(page.Offset))

	return b.String(), args
}

const selectEdgesSQL = `
SELECT e.id, e.uri, e.relation, COALESCE(r.label, ''),
       e.start_node, e.end_node, e.weight,
       COALESCE(e.surface_text, ''), COALESCE(e.dataset, ''), e.metadata
FROM edges e
LEFT JOIN relations r ON r.uri = e.relation
WHERE 1=1`

const orderEdgesSQL = `
ORDER BY e.weight DESC, e.id ASC`
