// Package pagination holds 1-based page arithmetic shared by list endpoints.
package pagination

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPageNumber keeps (pageNumber-1)*pageSize far below the int range.
	MaxPageNumber = 10_000_000
)

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Offset of the first row of pageNumber. Both arguments must be >= 1.
func Offset(pageNumber, pageSize int) int {
	return (pageNumber - 1) * pageSize
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

func New[T any](items []T, total int64, pageNumber, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}
