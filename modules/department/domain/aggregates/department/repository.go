package department

import "context"

// HeadCandidate is a search hit for the head selector.
type HeadCandidate struct {
	ID    string
	Email string
}

type Repository interface {
	GetAll(ctx context.Context) ([]Department, error)
	SearchHeads(ctx context.Context, query string) ([]HeadCandidate, error)
	Create(ctx context.Context, dto *UpsertDTO) error
	Update(ctx context.Context, id string, dto *UpsertDTO) error
	Delete(ctx context.Context, id string) error
}
