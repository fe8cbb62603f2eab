package mappers

import (
	"github.com/emstack/ems-console/modules/department/domain/aggregates/department"
	"github.com/emstack/ems-console/modules/department/presentation/viewmodels"
)

func DepartmentToRow(d department.Department, index int) *viewmodels.DepartmentRow {
	row := &viewmodels.DepartmentRow{
		RowNumber:   index + 1,
		ID:          d.ID(),
		Name:        d.Name(),
		Description: d.Description(),
	}
	if head, ok := d.Head(); ok {
		row.HeadID = head.ID()
		row.HeadEmail = head.Email()
	}
	return row
}
