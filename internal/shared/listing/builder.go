package listing

import (
	"fmt"
	"strings"
)

// Builder accumulates conjunctive conditions with positional args.
// Absent filters add nothing: an empty builder renders no WHERE clause
// at all rather than a match-everything placeholder.
type Builder struct {
	conds []string
	args  []any
}

// Eq adds "column = value".
func (b *Builder) Eq(column string, value any) *Builder {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// Bool adds an equality condition only when the filter was supplied.
func (b *Builder) Bool(column string, v *bool) *Builder {
	if v != nil {
		b.Eq(column, *v)
	}
	return b
}

// Search adds a case-insensitive contains match OR-ed across columns.
func (b *Builder) Search(q string, columns ...string) *Builder {
	if q == "" || len(columns) == 0 {
		return b
	}

	b.args = append(b.args, "%"+q+"%")
	idx := len(b.args)

	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, idx)
	}
	b.conds = append(b.conds, joinOr(parts))
	return b
}

// Unexpired keeps rows whose expiry column is null or in the future.
func (b *Builder) Unexpired(column string) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("(%s IS NULL OR %s > NOW())", column, column))
	return b
}

// Started keeps rows whose start column is null or already reached.
func (b *Builder) Started(column string) *Builder {
	b.conds = append(b.conds, fmt.Sprintf("(%s IS NULL OR %s <= NOW())", column, column))
	return b
}

// Raw adds a condition verbatim. It must not carry placeholders.
func (b *Builder) Raw(cond string) *Builder {
	b.conds = append(b.conds, cond)
	return b
}

// Bind appends a non-predicate arg (limit, offset) and returns its
// placeholder index.
func (b *Builder) Bind(value any) int {
	b.args = append(b.args, value)
	return len(b.args)
}

// Where renders the clause, or "" when no condition was added.
func (b *Builder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

func (b *Builder) Args() []any {
	return b.args
}
