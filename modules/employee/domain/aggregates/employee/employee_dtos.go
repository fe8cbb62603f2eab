package employee

import (
	"strconv"
	"strings"

	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/serrors"
	"github.com/emstack/ems-console/pkg/shared"
)

const DefaultRole = "employee"

// CreateDTO is the employee form draft on create. Password is required here
// and only here; the edit form never carries one.
type CreateDTO struct {
	Name        string   `form:"name" validate:"required"`
	Email       string   `form:"email" validate:"required,email"`
	Password    string   `form:"password" validate:"required"`
	Salary      string   `form:"salary" validate:"required,numeric"`
	Role        string   `form:"role"`
	Departments []string `form:"departments"`
	Image       shared.ImageField
}

func (d *CreateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Salary = strings.TrimSpace(d.Salary)
	if strings.TrimSpace(d.Role) == "" {
		d.Role = DefaultRole
	}
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := validateDraft(d, d.Image)
	return errs, len(errs) == 0
}

// UpdateDTO is the employee form draft on edit, seeded from an existing row.
type UpdateDTO struct {
	Name        string   `form:"name" validate:"required"`
	Email       string   `form:"email" validate:"required,email"`
	Salary      string   `form:"salary" validate:"required,numeric"`
	Role        string   `form:"role"`
	Departments []string `form:"departments"`
	Image       shared.ImageField
}

// SeedUpdateDTO seeds an edit draft from an existing record. The image field
// starts untouched: the stored path stays in effect until a new file is
// selected.
func SeedUpdateDTO(e Employee) *UpdateDTO {
	return &UpdateDTO{
		Name:        e.Name(),
		Email:       e.Email(),
		Salary:      strconv.FormatFloat(e.Salary(), 'f', -1, 64),
		Role:        e.Role(),
		Departments: e.DepartmentIDs(),
		Image:       shared.ImageUnchanged(),
	}
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Salary = strings.TrimSpace(d.Salary)
	if strings.TrimSpace(d.Role) == "" {
		d.Role = DefaultRole
	}
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := validateDraft(d, d.Image)
	return errs, len(errs) == 0
}

func validateDraft(dto any, image shared.ImageField) serrors.ValidationErrors {
	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(dto); err != nil {
		errs = serrors.FromValidator(err)
	}
	// The remote API has no remove-photo operation; a cleared image cannot
	// be expressed on the wire.
	if image.IsCleared() {
		errs["ProfileImage"] = "Removing an existing photo is not supported"
	}
	return errs
}
