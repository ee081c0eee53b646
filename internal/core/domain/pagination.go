package domain

import "fmt"

// Page is a resolved pagination window.
type Page struct {
	Offset   int
	LastPage int
}

// Paginate derives the offset and last page for a 1-indexed page request.
// total == 0 yields LastPage 0 and a valid, empty window. Requests past the
// last page fail with PageOutOfRangeError.
func Paginate(total, limit, page int) (Page, error) {
	if limit <= 0 {
		return Page{}, &ValidationError{Message: fmt.Sprintf("limit must be positive, got %d", limit)}
	}
	if page < 1 {
		return Page{}, &ValidationError{Message: fmt.Sprintf("page must be at least 1, got %d", page)}
	}
	if total < 0 {
		return Page{}, &ValidationError{Message: fmt.Sprintf("total must be non-negative, got %d", total)}
	}

	lastPage := (total + limit - 1) / limit
	if lastPage > 0 && page > lastPage {
		return Page{}, &PageOutOfRangeError{RequestedPage: page, LastPage: lastPage}
	}

	return Page{
		Offset:   (page - 1) * limit,
		LastPage: lastPage,
	}, nil
}
