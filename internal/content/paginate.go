package content

import "git.home.luguber.info/inful/portfolio/internal/config"

// Page is one window of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// TotalPages is ceil(n/size). size <= 0 uses the default page size.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = config.DefaultPageSize
	}
	return (n + size - 1) / size
}

// Paginate returns page (1-based) of items. Pages below 1 and past the last page are
// ErrNotFound; an empty list has zero pages and page 1 is valid and empty.
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	if size <= 0 {
		size = config.DefaultPageSize
	}
	total := TotalPages(len(items), size)
	if page < 1 || (page > total && (total > 0 || page > 1)) {
		return Page[T]{}, notFound("page %d of %d", page, total)
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Number:     page,
		Size:       size,
		TotalPages: total,
		TotalItems: len(items),
	}, nil
}
