package domain

// SortDirection is the sort order for list queries.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PaginationParams holds offset-based pagination and sorting parameters for
// list queries. SortBy is a logical field name; repositories map it to a
// column through a whitelist and fall back to their default ordering for
// unknown fields.
type PaginationParams struct {
	Page     int
	PageSize int
	SortBy   string
	SortDir  SortDirection
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Descending reports whether the sort direction is descending.
func (p PaginationParams) Descending() bool {
	return p.SortDir == SortDesc
}
