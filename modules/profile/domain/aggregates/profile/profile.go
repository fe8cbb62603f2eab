package profile

import (
	"strings"

	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/serrors"
	"github.com/emstack/ems-console/pkg/shared"
)

// Profile is the signed-in employee's own record. Only the name and photo
// are editable; everything else is read-only display data.
type Profile struct {
	name            string
	email           string
	role            string
	salary          float64
	profileImage    string
	departments     []string
	headDepartments []string
}

func Hydrate(name, email, role string, salary float64, profileImage string, departments, headDepartments []string) Profile {
	return Profile{
		name:            name,
		email:           email,
		role:            role,
		salary:          salary,
		profileImage:    profileImage,
		departments:     departments,
		headDepartments: headDepartments,
	}
}

func (p Profile) Name() string              { return p.name }
func (p Profile) Email() string             { return p.email }
func (p Profile) Role() string              { return p.role }
func (p Profile) Salary() float64           { return p.salary }
func (p Profile) ProfileImage() string      { return p.profileImage }
func (p Profile) Departments() []string     { return p.departments }
func (p Profile) HeadDepartments() []string { return p.headDepartments }

// WithEdits returns a copy with the editable fields replaced. Used to patch
// the cached profile after a successful save.
func (p Profile) WithEdits(name, profileImage string) Profile {
	out := p
	if name != "" {
		out.name = name
	}
	if profileImage != "" {
		out.profileImage = profileImage
	}
	return out
}

// UpdateDTO is the self-edit draft. An untouched draft, same name and no new
// photo, is a no-op and never reaches the upstream.
type UpdateDTO struct {
	Name  string `form:"name" validate:"required"`
	Image shared.ImageField
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(d); err != nil {
		errs = serrors.FromValidator(err)
	}
	if d.Image.IsCleared() {
		errs["ProfileImage"] = "Removing an existing photo is not supported"
	}
	return errs, len(errs) == 0
}

// IsNoOp reports whether the draft changes nothing relative to the current
// profile.
func (d *UpdateDTO) IsNoOp(current Profile) bool {
	return d.Name == current.Name() && d.Image.IsUnchanged()
}
