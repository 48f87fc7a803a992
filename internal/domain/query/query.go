package query

// Pagination describes a page window for list queries.
// Page is 1-based; PageSize caps the number of rows returned.
type Pagination struct {
	Page     int
	PageSize int
}

// DefaultPageSize is applied when a caller omits the page size.
const DefaultPageSize = 50

// MaxPageSize caps client-supplied page sizes.
const MaxPageSize = 200

// NewPagination normalizes raw page/size values into a usable window
func NewPagination(page, pageSize int) *Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return &Pagination{Page: page, PageSize: pageSize}
}

// Offset returns the row offset for the window
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
