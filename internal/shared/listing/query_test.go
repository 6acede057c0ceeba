package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testSortable = Sortable{
	"name":          "name",
	"display_order": "display_order",
}

func intPtr(v int) *int { return &v }

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{"empty query passes", Query{}, false},
		{"valid everything", Query{Limit: intPtr(10), Offset: intPtr(20), Sort: "name", Order: "desc"}, false},
		{"limit at max", Query{Limit: intPtr(MaxLimit)}, false},
		{"limit over max rejected", Query{Limit: intPtr(MaxLimit + 1)}, true},
		{"limit zero rejected", Query{Limit: intPtr(0)}, true},
		{"negative offset rejected", Query{Offset: intPtr(-1)}, true},
		{"unknown sort rejected", Query{Sort: "password"}, true},
		{"bad order rejected", Query{Order: "sideways"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate(testSortable)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQueryPageDefaults(t *testing.T) {
	limit, offset := Query{}.Page()
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Query{Limit: intPtr(5), Offset: intPtr(15)}.Page()
	assert.Equal(t, 5, limit)
	assert.Equal(t, 15, offset)
}

func TestOrderBy(t *testing.T) {
	fallback := "display_order ASC, id ASC"

	assert.Equal(t, "ORDER BY display_order ASC, id ASC",
		testSortable.OrderBy("", "", fallback, "id ASC"))

	assert.Equal(t, "ORDER BY name ASC, id ASC",
		testSortable.OrderBy("name", "", fallback, "id ASC"))

	assert.Equal(t, "ORDER BY name DESC, id ASC",
		testSortable.OrderBy("name", "desc", fallback, "id ASC"))
}
