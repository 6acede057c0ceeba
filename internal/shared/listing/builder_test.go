package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderEmpty(t *testing.T) {
	b := &Builder{}

	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestBuilderConjunction(t *testing.T) {
	active := true
	b := &Builder{}
	b.Eq("category", "vazo")
	b.Bool("is_active", &active)

	assert.Equal(t, "WHERE category = $1 AND is_active = $2", b.Where())
	assert.Equal(t, []any{"vazo", true}, b.Args())
}

func TestBuilderBoolNilAddsNothing(t *testing.T) {
	b := &Builder{}
	b.Bool("is_active", nil)

	assert.Equal(t, "", b.Where())
	assert.Empty(t, b.Args())
}

func TestBuilderSearch(t *testing.T) {
	b := &Builder{}
	b.Search("granit", "name", "description")

	assert.Equal(t, "WHERE (name ILIKE $1 OR description ILIKE $1)", b.Where())
	assert.Equal(t, []any{"%granit%"}, b.Args())
}

func TestBuilderSearchEmptyQueryAddsNothing(t *testing.T) {
	b := &Builder{}
	b.Search("", "name")

	assert.Equal(t, "", b.Where())
}

func TestBuilderWindowConditions(t *testing.T) {
	b := &Builder{}
	b.Started("starts_at")
	b.Unexpired("expires_at")

	assert.Equal(t,
		"WHERE (starts_at IS NULL OR starts_at <= NOW()) AND (expires_at IS NULL OR expires_at > NOW())",
		b.Where())
	assert.Empty(t, b.Args())
}

func TestBuilderBindAfterPredicates(t *testing.T) {
	b := &Builder{}
	b.Eq("category", "vazo")

	limitIdx := b.Bind(50)
	offsetIdx := b.Bind(0)

	assert.Equal(t, 2, limitIdx)
	assert.Equal(t, 3, offsetIdx)
	assert.Equal(t, []any{"vazo", 50, 0}, b.Args())
}
