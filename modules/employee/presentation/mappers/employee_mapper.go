package mappers

import (
	"strconv"

	"github.com/emstack/ems-console/modules/employee/domain/aggregates/employee"
	"github.com/emstack/ems-console/modules/employee/presentation/viewmodels"
	"github.com/emstack/ems-console/pkg/shared"
)

// EmployeeToRow maps an employee to a list row. index is the position within
// the page; the rendered row number continues across pages.
func EmployeeToRow(e employee.Employee, index int, info employee.PageInfo, assetBase string) *viewmodels.EmployeeRow {
	departments := make([]string, 0, len(e.Departments()))
	for _, d := range e.Departments() {
		departments = append(departments, d.Name())
	}

	status := "Active"
	if e.IsDeleted() {
		status = "Deleted"
	}

	return &viewmodels.EmployeeRow{
		RowNumber:          (info.CurrentPage-1)*info.PerPage + index + 1,
		ID:                 e.ID(),
		Name:               e.Name(),
		Email:              e.Email(),
		Role:               e.Role(),
		Salary:             strconv.FormatFloat(e.Salary(), 'f', -1, 64),
		Departments:        departments,
		HeadOf:             e.HeadOfDepartments(),
		ProfileImageURL:    shared.AssetURL(e.ProfileImagePath(), assetBase),
		Status:             status,
		IsDeleted:          e.IsDeleted(),
		CanEdit:            !e.IsDeleted(),
		CanSoftDelete:      !e.IsDeleted(),
		CanRestore:         e.IsDeleted(),
		CanPermanentDelete: e.IsDeleted(),
	}
}

func PaginationToVM(info employee.PageInfo) viewmodels.PaginationVM {
	last := info.TotalPages
	if last < 1 {
		last = 1
	}
	cur := info.Clamp(info.CurrentPage)
	prev := cur - 1
	if prev < 1 {
		prev = 1
	}
	next := cur + 1
	if next > last {
		next = last
	}
	return viewmodels.PaginationVM{
		CurrentPage: cur,
		TotalPages:  last,
		PerPage:     info.PerPage,
		HasPrev:     cur > 1,
		HasNext:     cur < last,
		FirstPage:   1,
		PrevPage:    prev,
		NextPage:    next,
		LastPage:    last,
	}
}
