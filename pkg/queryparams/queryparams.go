// Package queryparams carries pagination parameters from the query string
// into repositories and pagination metadata back out.
package queryparams

// ListParams is parsed straight from the request query string.
type ListParams struct {
	Page    int `query:"page"`
	PerPage int `query:"limit"`
}

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// DefaultListParams returns the first page with the default page size.
func DefaultListParams() ListParams {
	return ListParams{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps out-of-range values instead of rejecting them.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset converts page/limit into a row offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PaginationMeta describes the page that was returned.
type PaginationMeta struct {
	CurrentPage int   `json:"current"`
	TotalPages  int   `json:"pages"`
	TotalItems  int64 `json:"total"`
}

// NewMeta computes page counts for a total match count.
func NewMeta(params ListParams, total int64) PaginationMeta {
	pages := int((total + int64(params.PerPage) - 1) / int64(params.PerPage))
	return PaginationMeta{
		CurrentPage: params.Page,
		TotalPages:  pages,
		TotalItems:  total,
	}
}
