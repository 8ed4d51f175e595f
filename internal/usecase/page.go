package usecase

// Page is one window of an id-ordered collection. Page numbers start at 1.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages()
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
