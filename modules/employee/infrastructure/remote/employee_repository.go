package remote

import (
	"context"

	"github.com/pkg/errors"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/modules/employee/domain/aggregates/employee"
	"github.com/emstack/ems-console/pkg/shared"
)

// EmployeeRepository serves the employee aggregate from the remote EMS API.
// The API owns the records; this layer only maps wire DTOs to working copies.
type EmployeeRepository struct {
	client *emsapi.Client
}

func NewEmployeeRepository(client *emsapi.Client) employee.Repository {
	return &EmployeeRepository{client: client}
}

func (r *EmployeeRepository) GetPaginated(ctx context.Context, params *employee.FindParams) (*employee.Page, error) {
	sort := params.SortBy
	if sort == "" {
		sort = emsapi.SortNewestFirst
	}
	res, err := r.client.ListEmployees(ctx, params.Page, params.Limit, sort)
	if err != nil {
		return nil, errors.Wrap(err, "list employees")
	}

	items := make([]employee.Employee, 0, len(res.Users))
	for _, dto := range res.Users {
		items = append(items, toDomain(dto))
	}
	return &employee.Page{
		Items: items,
		Info: employee.PageInfo{
			CurrentPage: res.Pagination.CurrentPage,
			TotalPages:  res.Pagination.TotalPages,
			PerPage:     res.Pagination.PerPage,
		},
	}, nil
}

func (r *EmployeeRepository) Search(ctx context.Context, query string) ([]employee.SearchResult, error) {
	found, err := r.client.SearchEmployees(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "search employees")
	}
	results := make([]employee.SearchResult, 0, len(found))
	for _, dto := range found {
		results = append(results, employee.SearchResult{ID: dto.ID, Email: dto.Email})
	}
	return results, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, dto *employee.CreateDTO) error {
	form := &emsapi.EmployeeForm{
		Name:        dto.Name,
		Email:       dto.Email,
		Password:    dto.Password,
		Role:        dto.Role,
		Salary:      dto.Salary,
		Departments: dto.Departments,
		Image:       toUpload(dto.Image),
	}
	return r.client.CreateEmployee(ctx, form)
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, dto *employee.UpdateDTO) error {
	form := &emsapi.EmployeeForm{
		Name:        dto.Name,
		Email:       dto.Email,
		Role:        dto.Role,
		Salary:      dto.Salary,
		Departments: dto.Departments,
		Image:       toUpload(dto.Image),
	}
	return r.client.UpdateEmployee(ctx, id, form)
}

func (r *EmployeeRepository) SoftDelete(ctx context.Context, id string) error {
	return r.client.SoftDeleteEmployee(ctx, id)
}

func (r *EmployeeRepository) Restore(ctx context.Context, id string) error {
	return r.client.RestoreEmployee(ctx, id)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteEmployee(ctx, id)
}

func (r *EmployeeRepository) Total(ctx context.Context) (int, error) {
	total, err := r.client.TotalEmployees(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "total employees")
	}
	return total, nil
}

func toDomain(dto emsapi.EmployeeDTO) employee.Employee {
	refs := make([]employee.DepartmentRef, 0, len(dto.Departments))
	for _, d := range dto.Departments {
		headID := ""
		if d.Head != nil {
			headID = d.Head.ID
		}
		refs = append(refs, employee.NewDepartmentRef(d.ID, d.Name, headID))
	}
	return employee.Hydrate(
		dto.ID,
		dto.Name,
		dto.Email,
		dto.Role,
		dto.Salary,
		refs,
		dto.ProfileImage,
		dto.IsDeleted,
		dto.CreatedAt,
	)
}

func toUpload(field shared.ImageField) *emsapi.Upload {
	u, ok := field.Replaced()
	if !ok {
		return nil
	}
	return &emsapi.Upload{
		Field:       "profileImage",
		Name:        u.Name,
		Content:     u.Content,
		ContentType: u.ContentType,
	}
}
