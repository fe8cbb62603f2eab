package department

import (
	"strings"

	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/serrors"
)

// UpsertDTO is the department form draft, used for both create and edit.
// Head holds the selected employee id, empty when no head is assigned.
type UpsertDTO struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Head        string `form:"head"`
}

// SeedUpsertDTO seeds an edit draft from an existing record.
func SeedUpsertDTO(d Department) *UpsertDTO {
	dto := &UpsertDTO{
		Name:        d.Name(),
		Description: d.Description(),
	}
	if head, ok := d.Head(); ok {
		dto.Head = head.ID()
	}
	return dto
}

func (d *UpsertDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Head = strings.TrimSpace(d.Head)
}

func (d *UpsertDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs := make(serrors.ValidationErrors)
	if err := constants.Validate.Struct(d); err != nil {
		errs = serrors.FromValidator(err)
	}
	return errs, len(errs) == 0
}
