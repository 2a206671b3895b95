package services

import "fmt"

// Pagination describes the page window for a task listing. It is computed
// per request and handed to the view; nothing here is persisted.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
	NextPage    int
	PrevPage    int
	Pages       []int
	NextURL     string
	PrevURL     string
}

// NewPagination builds the page window centered on currentPage: at most
// two pages either side, clamped to [1, totalPages]. With no pages at all
// the window is empty.
func NewPagination(currentPage, totalPages int, baseURL string) Pagination {
	if currentPage < 1 {
		currentPage = 1
	}

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasNext:     currentPage < totalPages,
		HasPrev:     currentPage > 1,
		NextPage:    currentPage + 1,
		PrevPage:    currentPage - 1,
		Pages:       []int{},
	}

	start := currentPage - 2
	if start < 1 {
		start = 1
	}
	end := currentPage + 2
	if end > totalPages {
		end = totalPages
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}

	p.NextURL = fmt.Sprintf("%s?page=%d", baseURL, p.NextPage)
	p.PrevURL = fmt.Sprintf("%s?page=%d", baseURL, p.PrevPage)

	return p
}
