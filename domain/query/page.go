package query

// Order is a sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Sort names an API field and a direction.
type Sort struct {
	Field string
	Order Order
}

// Pagination is 1-based. Zero means "not provided" and is replaced by defaults.
type Pagination struct {
	Page  int
	Limit int
}

// Filters maps filter keys to raw query values. Empty values are ignored.
type Filters map[string]string

// PageRequest is what a list endpoint receives.
type PageRequest struct {
	Filters    Filters
	Sort       *Sort
	Pagination Pagination
}

// PageResult is one page of results plus the total across all pages.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResult builds a result for the page described by plan.
func NewPageResult[T any](items []T, total int64, plan Plan) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       plan.Page,
		Limit:      plan.Limit,
		TotalPages: TotalPages(total, plan.Limit),
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
