package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emstack/ems-console/modules/department/domain/aggregates/department"
	"github.com/emstack/ems-console/pkg/querycache"
	"github.com/emstack/ems-console/pkg/shared"
)

// DepartmentService caches the unpaginated department list under a single
// key. Employee forms read the same cached list for their select options, so
// a department mutation refreshes both pages at once.
type DepartmentService struct {
	repo  department.Repository
	cache *querycache.Cache
	log   *logrus.Logger
}

func NewDepartmentService(repo department.Repository, cache *querycache.Cache, log *logrus.Logger) *DepartmentService {
	return &DepartmentService{repo: repo, cache: cache, log: log}
}

func listKey() querycache.Key {
	return querycache.Key{Resource: querycache.ResourceDepartments}
}

func (s *DepartmentService) GetAll(ctx context.Context) ([]department.Department, error) {
	return querycache.FetchAs(ctx, s.cache, listKey(), func(ctx context.Context) ([]department.Department, error) {
		return s.repo.GetAll(ctx)
	})
}

// DepartmentOptions renders the cached list as select options for the
// employee form modal.
func (s *DepartmentService) DepartmentOptions(ctx context.Context) ([]shared.Option, error) {
	items, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]shared.Option, 0, len(items))
	for _, d := range items {
		options = append(options, shared.Option{Value: d.ID(), Label: d.Name()})
	}
	return options, nil
}

// SearchHeads is live: it backs the debounced head selector and is never
// cached. A blank query returns nothing without calling the upstream.
func (s *DepartmentService) SearchHeads(ctx context.Context, query string) ([]shared.Option, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	candidates, err := s.repo.SearchHeads(ctx, query)
	if err != nil {
		return nil, err
	}
	options := make([]shared.Option, 0, len(candidates))
	for _, c := range candidates {
		options = append(options, shared.Option{Value: c.ID, Label: c.Email})
	}
	return options, nil
}

func (s *DepartmentService) Create(ctx context.Context, dto *department.UpsertDTO) error {
	return s.mutate(ctx, "department:create", func(ctx context.Context) error {
		return s.repo.Create(ctx, dto)
	})
}

func (s *DepartmentService) Update(ctx context.Context, id string, dto *department.UpsertDTO) error {
	return s.mutate(ctx, "department:update:"+id, func(ctx context.Context) error {
		return s.repo.Update(ctx, id, dto)
	})
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "department:delete:"+id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *DepartmentService) mutate(ctx context.Context, key string, loader func(ctx context.Context) error) error {
	return s.cache.Mutate(ctx, key, loader, querycache.MutationHooks{
		OnSuccess: func() {
			s.cache.InvalidateResource(querycache.ResourceDepartments)
			// Employee rows embed department names; they must not outlive a
			// rename or delete.
			s.cache.InvalidateResource(querycache.ResourceEmployees)
		},
		OnError: func(err error) {
			s.log.WithError(err).WithField("mutation", key).Error("department mutation failed")
		},
	})
}
