// Package pagination holds the page math shared by the list engine and its
// callers.
package pagination

// Page describes one requested slice. Pages are 1-indexed.
type Page struct {
	Number int `json:"currentPage"`
	Limit  int `json:"limit"`
}

// Offset is the row offset of the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta is the pagination block returned alongside a page of results. All
// fields derive from the same total count as the page query itself.
type Meta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewMeta computes the pagination block for a page against a total count.
func NewMeta(p Page, totalCount int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((totalCount + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		CurrentPage:     p.Number,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		Limit:           p.Limit,
		HasNextPage:     p.Number < totalPages,
		HasPreviousPage: p.Number > 1,
	}
}
