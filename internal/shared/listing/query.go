// Package listing is the shared list/filter/paginate/reorder engine.
// Every collection endpoint goes through the same three pieces: Query
// (the validated pagination/sort/search parameters), Builder (the
// conjunctive WHERE predicate shared by the page query and the count
// query) and Reorder (the transactional display-order rewrite).
package listing

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Query is the flat list-query shape every collection accepts. Limit and
// Offset are pointers so "absent" (use defaults) and "invalid" (reject)
// stay distinguishable; out-of-range values are rejected, never clamped.
type Query struct {
	Q      string `form:"q"`
	Limit  *int   `form:"limit"`
	Offset *int   `form:"offset"`
	Sort   string `form:"sort"`
	Order  string `form:"order"`
}

// Validate enforces pagination bounds and restricts sort to the caller's
// whitelist. Unknown sort keys fail here, not at the query layer.
func (q Query) Validate(sortable Sortable) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Limit, validation.Min(1), validation.Max(MaxLimit)),
		validation.Field(&q.Offset, validation.Min(0)),
		validation.Field(&q.Sort, validation.In(sortable.keys()...)),
		validation.Field(&q.Order, validation.In("asc", "desc")),
	)
}

// Page resolves the effective limit and offset after defaults.
func (q Query) Page() (limit, offset int) {
	limit = DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	if q.Offset != nil {
		offset = *q.Offset
	}
	return limit, offset
}

// Sortable maps API sort keys to the columns they order by.
type Sortable map[string]string

func (s Sortable) keys() []interface{} {
	out := make([]interface{}, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// OrderBy builds the ORDER BY clause. Absent sort falls back to the
// entity default (display order ascending for manually ordered sets); an
// id tie break keeps repeated reads stable when display orders collide.
func (s Sortable) OrderBy(sort, order, fallback, tieBreak string) string {
	if sort == "" {
		return "ORDER BY " + fallback
	}

	dir := "ASC"
	if order == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, %s", s[sort], dir, tieBreak)
}

// joinOr is used by Builder for the free-text disjunction.
func joinOr(clauses []string) string {
	return "(" + strings.Join(clauses, " OR ") + ")"
}
