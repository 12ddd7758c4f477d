package repository

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

// NewPage clamps user supplied paging values.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() uint {
	return uint((p.Number - 1) * p.Size)
}

func (p Page) Limit() uint {
	return uint(p.Size)
}

type PagedResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page
}
