package models

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Pagination is a page window. PerPage <= 0 means no window (all rows).
type Pagination struct {
	Page    int
	PerPage int
}

func (p Pagination) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) Limit() int {
	if p.PerPage <= 0 {
		return -1
	}
	return p.PerPage
}

type PageInfo struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
}

// NewPageInfo never reports fewer than one page.
func NewPageInfo(p Pagination, total int64) PageInfo {
	pages := 1
	if p.PerPage > 0 && total > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
		if pages < 1 {
			pages = 1
		}
	}
	return PageInfo{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalCount:  total,
		TotalPages:  pages,
	}
}
