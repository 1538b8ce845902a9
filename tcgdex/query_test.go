package tcgdex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryString(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		expected string
	}{
		{
			name:     "empty query",
			query:    NewQuery(),
			expected: "",
		},
		{
			name:     "zero value",
			query:    Query{},
			expected: "",
		},
		{
			name:     "id only",
			query:    NewQuery().WithID("swsh3-136"),
			expected: "swsh3-136",
		},
		{
			name:     "single filter",
			query:    NewQuery().WithFiltering("hp=100"),
			expected: "hp=100",
		},
		{
			name:     "filters joined",
			query:    NewQuery().WithFiltering("name=furret", "id=ex"),
			expected: "name=furret&id=ex",
		},
		{
			name:     "filter truncated at whitespace",
			query:    NewQuery().WithFiltering("hp=100 extra text"),
			expected: "hp=100",
		},
		{
			name:     "blank filter terms dropped",
			query:    NewQuery().WithFiltering("  ", "hp=60"),
			expected: "hp=60",
		},
		{
			name:     "pagination",
			query:    NewQuery().WithPagination(2, 50),
			expected: "pagination:page=2&pagination:itemsPerPage=50",
		},
		{
			name:     "sorting",
			query:    NewQuery().WithSorting("name", Desc),
			expected: "sort:field=name&sort:order=DESC",
		},
		{
			name: "fixed render order regardless of call order",
			query: NewQuery().
				WithSorting("name", Asc).
				WithPagination(1, 10).
				WithFiltering("hp=100"),
			expected: "hp=100&pagination:page=1&pagination:itemsPerPage=10&sort:field=name&sort:order=ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.query.String())
			assert.Equal(t, tt.expected, tt.query.Encode())
		})
	}
}

func TestQueryGroupLock(t *testing.T) {
	t.Run("id locks out filter group", func(t *testing.T) {
		q := NewQuery().WithID("swsh3").
			WithFiltering("hp=100").
			WithSorting("name", Asc).
			WithPagination(1, 10)

		assert.Equal(t, "swsh3", q.String())
		assert.Equal(t, ByID{ID: "swsh3"}, q.Spec())
	})

	t.Run("filtering locks out id", func(t *testing.T) {
		q := NewQuery().WithFiltering("hp=100").WithID("swsh3")
		assert.Equal(t, "hp=100", q.String())
	})

	t.Run("sorting locks out id", func(t *testing.T) {
		q := NewQuery().WithSorting("name", Asc).WithID("swsh3")
		assert.Equal(t, "sort:field=name&sort:order=ASC", q.String())
	})

	t.Run("pagination locks out id", func(t *testing.T) {
		q := NewQuery().WithPagination(1, 5).WithID("swsh3")
		assert.Equal(t, "pagination:page=1&pagination:itemsPerPage=5", q.String())
	})

	t.Run("empty id does not lock", func(t *testing.T) {
		q := NewQuery().WithID("").WithFiltering("hp=100")
		assert.Equal(t, "hp=100", q.String())
	})
}

func TestQueryIsValue(t *testing.T) {
	base := NewQuery().WithFiltering("hp=100")
	sorted := base.WithSorting("name", Asc)

	assert.Equal(t, "hp=100", base.String())
	assert.Equal(t, "hp=100&sort:field=name&sort:order=ASC", sorted.String())
}

func TestQuerySpec(t *testing.T) {
	q := NewQuery().
		WithFiltering("name=furret extra", "id=ex").
		WithSorting("localId", Desc).
		WithPagination(3, 20)

	spec := q.Spec()
	filter, ok := spec.(ByFilter)
	require.True(t, ok)

	assert.Equal(t, []string{"name=furret", "id=ex"}, filter.Filters)
	assert.Equal(t, &Sorting{Field: "localId", Order: Desc}, filter.Sort)
	assert.Equal(t, &Pagination{Page: 3, ItemsPerPage: 20}, filter.Page)
	assert.Equal(t, q.String(), filter.Encode())

	_, lookup := spec.lookup()
	assert.False(t, lookup)
}

func TestByFilterEncode(t *testing.T) {
	tests := []struct {
		name     string
		spec     ByFilter
		expected string
	}{
		{"zero value", ByFilter{}, ""},
		{"filters only", ByFilter{Filters: []string{"types=Fire", "hp=70 x"}}, "types=Fire&hp=70"},
		{"sort only", ByFilter{Sort: &Sorting{Field: "hp", Order: Asc}}, "sort:field=hp&sort:order=ASC"},
		{
			"everything",
			ByFilter{
				Filters: []string{"rarity=Rare"},
				Sort:    &Sorting{Field: "name", Order: Desc},
				Page:    &Pagination{Page: 1, ItemsPerPage: 100},
			},
			"rarity=Rare&pagination:page=1&pagination:itemsPerPage=100&sort:field=name&sort:order=DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.spec.Encode())
		})
	}
}

func TestParseOrder(t *testing.T) {
	order, err := ParseOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, Asc, order)

	order, err = ParseOrder(" DESC ")
	require.NoError(t, err)
	assert.Equal(t, Desc, order)

	_, err = ParseOrder("up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be ASC or DESC")
}
