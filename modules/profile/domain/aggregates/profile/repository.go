package profile

import "context"

type Repository interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, dto *UpdateDTO) (Profile, error)
}
