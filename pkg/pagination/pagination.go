package pagination

import "errors"

var (
	// ErrEmptyPage is returned when the requested page holds no items.
	ErrEmptyPage = errors.New("empty page")
	// ErrInvalidPageSize is returned for a page size below one.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Page is one slice of a result set.
type Page[T any] struct {
	Items      []T
	Index      int
	Offset     int
	HasPrev    bool
	HasNext    bool
	TotalPages int
}

// TotalPages returns ceil(n/pageSize), never less than one.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate slices results into the page at pageIndex. A page with no items
// is reported as ErrEmptyPage alongside the page metadata.
func Paginate[T any](results []T, pageIndex, pageSize int) (Page[T], error) {
	if pageSize <= 0 {
		return Page[T]{}, ErrInvalidPageSize
	}

	page := Page[T]{
		Index:      pageIndex,
		TotalPages: TotalPages(len(results), pageSize),
		HasPrev:    pageIndex > 0,
	}
	if pageIndex < 0 {
		page.HasPrev = false
		return page, ErrEmptyPage
	}

	start := pageIndex * pageSize
	if start >= len(results) {
		return page, ErrEmptyPage
	}
	end := min(start+pageSize, len(results))

	page.Offset = start
	page.Items = results[start:end]
	page.HasNext = (pageIndex+1)*pageSize < len(results)
	return page, nil
}
