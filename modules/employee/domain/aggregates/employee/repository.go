package employee

import "context"

type FindParams struct {
	Page   int
	Limit  int
	SortBy string
}

// PageInfo is the server-reported pagination state. The client's requested
// page and the server's reported page may diverge momentarily; the server's
// response wins.
type PageInfo struct {
	CurrentPage int
	TotalPages  int
	PerPage     int
}

// Clamp forces page into [1, TotalPages].
func (p PageInfo) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if p.TotalPages > 0 && page > p.TotalPages {
		return p.TotalPages
	}
	return page
}

// Page is one fetched slice of the employee list.
type Page struct {
	Items []Employee
	Info  PageInfo
}

// SearchResult is a head-selector option candidate.
type SearchResult struct {
	ID    string
	Email string
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) (*Page, error)
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Create(ctx context.Context, dto *CreateDTO) error
	Update(ctx context.Context, id string, dto *UpdateDTO) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Total(ctx context.Context) (int, error)
}
