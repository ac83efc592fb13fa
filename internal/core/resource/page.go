package resource

// PageInfo is the pagination metadata attached to every list response.
type PageInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPageInfo computes the metadata for a page over total matching items.
func NewPageInfo(total int64, page, limit int) PageInfo {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Paginate slices items down to the requested page. Out-of-range pages yield
// an empty slice, not an error.
func Paginate[T any](items []T, page, limit int) ([]T, PageInfo) {
	info := NewPageInfo(int64(len(items)), page, limit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}, info
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], info
}
