package pagination

// Metadata is the pagination block included in list and search responses.
type Metadata struct {
	Total      int64 `json:"total"`       // total items across all pages
	Page       int   `json:"page"`        // current 1-based page
	Limit      int   `json:"limit"`       // items per page
	TotalPages int   `json:"total_pages"` // ceil(total/limit), minimum 1
}

// Response is the paginated envelope returned by the book endpoints. T is
// the handler's DTO type.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse wraps a page of DTOs with its metadata.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	return Response[T]{
		Data:       data,
		Pagination: metadata,
	}
}
