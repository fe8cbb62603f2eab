package remote

import (
	"context"

	"github.com/pkg/errors"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/modules/profile/domain/aggregates/profile"
)

type ProfileRepository struct {
	client *emsapi.Client
}

func NewProfileRepository(client *emsapi.Client) profile.Repository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) Get(ctx context.Context) (profile.Profile, error) {
	dto, err := r.client.GetProfile(ctx)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "get profile")
	}
	return toDomain(dto), nil
}

func (r *ProfileRepository) Update(ctx context.Context, dto *profile.UpdateDTO) (profile.Profile, error) {
	form := &emsapi.ProfileForm{Name: dto.Name}
	if u, ok := dto.Image.Replaced(); ok {
		form.Image = &emsapi.Upload{
			Field:       "profileImage",
			Name:        u.Name,
			Content:     u.Content,
			ContentType: u.ContentType,
		}
	}
	updated, err := r.client.UpdateProfile(ctx, form)
	if err != nil {
		return profile.Profile{}, err
	}
	return toDomain(updated), nil
}

func toDomain(dto *emsapi.ProfileDTO) profile.Profile {
	return profile.Hydrate(
		dto.Name,
		dto.Email,
		dto.Role,
		dto.Salary,
		dto.ProfileImage,
		dto.Departments,
		dto.HeadDepartments,
	)
}
