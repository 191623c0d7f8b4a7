// Package query holds cross-aggregate query primitives shared by all
// repository interfaces.
package query

// Pagination carries optional limit/offset constraints for list queries.
// A nil Pagination, or a nil field, means "no constraint".
type Pagination struct {
	Limit  *int
	Offset *int
}

// NewPagination builds a Pagination from raw limit/offset values, treating
// non-positive values as absent. Defaults are resolved here once so use-case
// bodies never carry inline fallback expressions.
func NewPagination(limit, offset int) *Pagination {
	p := &Pagination{}
	if limit > 0 {
		p.Limit = &limit
	}
	if offset > 0 {
		p.Offset = &offset
	}
	return p
}

// Page is the result shape for paginated list operations.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// NewPage derives the HasMore flag from the request window and total count.
func NewPage[T any](items []T, total int64, p *Pagination) Page[T] {
	offset := 0
	if p != nil && p.Offset != nil {
		offset = *p.Offset
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		HasMore: int64(offset+len(items)) < total,
	}
}
