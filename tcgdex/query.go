package tcgdex

import (
	"fmt"
	"strings"
)

// Order is the sort direction of a list query
type Order string

const (
	// Asc sorts in ascending order
	Asc Order = "ASC"
	// Desc sorts in descending order
	Desc Order = "DESC"
)

// String returns the wire form of the order
func (o Order) String() string {
	return string(o)
}

// ParseOrder parses a sort order, case-insensitively
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q (must be ASC or DESC)", s)
	}
}

// Spec describes what a request targets: either a single record by id or a
// filtered, sorted and paginated list. The set of implementations is closed:
// ByID, ByFilter and Query.
type Spec interface {
	// Encode renders the query string without any leading separator
	Encode() string

	// lookup reports the id when the spec addresses a single record
	lookup() (string, bool)
}

var (
	_ Spec = ByID{}
	_ Spec = ByFilter{}
	_ Spec = Query{}
)

// ByID addresses a single record
type ByID struct {
	ID string
}

// Encode returns the id
func (s ByID) Encode() string {
	return s.ID
}

func (s ByID) lookup() (string, bool) {
	return s.ID, s.ID != ""
}

// Sorting selects the sort field and direction of a list query
type Sorting struct {
	Field string
	Order Order
}

func (s Sorting) encode() string {
	return fmt.Sprintf("sort:field=%s&sort:order=%s", s.Field, s.Order)
}

// Pagination selects a page of a list query
type Pagination struct {
	Page         int
	ItemsPerPage int
}

func (p Pagination) encode() string {
	return fmt.Sprintf("pagination:page=%d&pagination:itemsPerPage=%d", p.Page, p.ItemsPerPage)
}

// ByFilter addresses a list of records. Every field is optional; the zero
// value lists everything.
type ByFilter struct {
	// Filters are field=value terms, e.g. "hp=100" or "name=furret"
	Filters []string
	Sort    *Sorting
	Page    *Pagination
}

// Encode renders filters, pagination and sorting, in that order
func (s ByFilter) Encode() string {
	return joinNonEmpty(encodeFilters(firstTokens(s.Filters)), s.encodePage(), s.encodeSort())
}

func (s ByFilter) lookup() (string, bool) {
	return "", false
}

func (s ByFilter) encodePage() string {
	if s.Page == nil {
		return ""
	}
	return s.Page.encode()
}

func (s ByFilter) encodeSort() string {
	if s.Sort == nil {
		return ""
	}
	return s.Sort.encode()
}

// Query builds a Spec one setting at a time.
//
// The id group and the filter group (filtering, sorting, pagination) are
// mutually exclusive and the first group set wins: WithID is a no-op once any
// filter setting is present, and the filter setters are no-ops once an id is
// present. Use Spec to see which group won.
//
// Query is a value type; every With method returns a modified copy.
type Query struct {
	id         string
	filtering  string
	pagination string
	sorting    string

	// structured copies of the filter group, used by Spec
	filters []string
	page    *Pagination
	sort    *Sorting
}

// NewQuery returns an empty query
func NewQuery() Query {
	return Query{}
}

// WithID targets a single record by id
func (q Query) WithID(id string) Query {
	if q.filtering == "" && q.sorting == "" && q.pagination == "" {
		q.id = id
	}
	return q
}

// WithFiltering sets the filter terms. Each term is cut at its first
// whitespace so that trailing text never leaks into the URL.
func (q Query) WithFiltering(terms ...string) Query {
	if q.id != "" {
		return q
	}
	q.filters = firstTokens(terms)
	q.filtering = encodeFilters(q.filters)
	return q
}

// WithPagination selects a page of results
func (q Query) WithPagination(page, itemsPerPage int) Query {
	if q.id != "" {
		return q
	}
	q.page = &Pagination{Page: page, ItemsPerPage: itemsPerPage}
	q.pagination = q.page.encode()
	return q
}

// WithSorting sorts results by field
func (q Query) WithSorting(field string, order Order) Query {
	if q.id != "" {
		return q
	}
	q.sort = &Sorting{Field: field, Order: order}
	q.sorting = q.sort.encode()
	return q
}

// String renders the query: the non-empty settings among id, filtering,
// pagination and sorting joined by "&"
func (q Query) String() string {
	return joinNonEmpty(q.id, q.filtering, q.pagination, q.sorting)
}

// Encode implements Spec
func (q Query) Encode() string {
	return q.String()
}

func (q Query) lookup() (string, bool) {
	return q.id, q.id != ""
}

// IsEmpty reports whether nothing has been set
func (q Query) IsEmpty() bool {
	return q.String() == ""
}

// Spec returns the explicit variant the query resolved to
func (q Query) Spec() Spec {
	if q.id != "" {
		return ByID{ID: q.id}
	}
	return ByFilter{
		Filters: append([]string(nil), q.filters...),
		Sort:    q.sort,
		Page:    q.page,
	}
}

// firstTokens keeps the first whitespace-delimited token of every term
func firstTokens(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		fields := strings.Fields(term)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields[0])
	}
	return out
}

func encodeFilters(terms []string) string {
	return strings.Join(terms, "&")
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "&")
}
