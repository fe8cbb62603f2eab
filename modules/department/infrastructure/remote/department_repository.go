package remote

import (
	"context"

	"github.com/pkg/errors"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/modules/department/domain/aggregates/department"
)

// DepartmentRepository serves the department aggregate from the remote EMS
// API. Head candidates come from the employee search endpoint; the upstream
// has no department-scoped search.
type DepartmentRepository struct {
	client *emsapi.Client
}

func NewDepartmentRepository(client *emsapi.Client) department.Repository {
	return &DepartmentRepository{client: client}
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	dtos, err := r.client.ListDepartments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list departments")
	}
	items := make([]department.Department, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, toDomain(dto))
	}
	return items, nil
}

func (r *DepartmentRepository) SearchHeads(ctx context.Context, query string) ([]department.HeadCandidate, error) {
	found, err := r.client.SearchEmployees(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "search head candidates")
	}
	candidates := make([]department.HeadCandidate, 0, len(found))
	for _, dto := range found {
		candidates = append(candidates, department.HeadCandidate{ID: dto.ID, Email: dto.Email})
	}
	return candidates, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, dto *department.UpsertDTO) error {
	return r.client.CreateDepartment(ctx, toForm(dto))
}

func (r *DepartmentRepository) Update(ctx context.Context, id string, dto *department.UpsertDTO) error {
	return r.client.UpdateDepartment(ctx, id, toForm(dto))
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	return r.client.DeleteDepartment(ctx, id)
}

func toDomain(dto emsapi.DepartmentDTO) department.Department {
	var head *department.HeadRef
	if dto.Head != nil {
		ref := department.NewHeadRef(dto.Head.ID, dto.Head.Email)
		head = &ref
	}
	return department.Hydrate(dto.ID, dto.Name, dto.Description, head)
}

func toForm(dto *department.UpsertDTO) *emsapi.DepartmentForm {
	return &emsapi.DepartmentForm{
		Name:        dto.Name,
		Description: dto.Description,
		Head:        dto.Head,
	}
}
