package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/emstack/ems-console/modules/employee/domain/aggregates/employee"
	"github.com/emstack/ems-console/pkg/querycache"
)

// EmployeeService funnels every employee read through the query cache and
// every write through the single mutation path. A successful mutation of any
// kind drops all cached employee keys before the caller re-renders.
type EmployeeService struct {
	repo  employee.Repository
	cache *querycache.Cache
	log   *logrus.Logger
}

func NewEmployeeService(repo employee.Repository, cache *querycache.Cache, log *logrus.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, cache: cache, log: log}
}

func listKey(page int) querycache.Key {
	return querycache.Key{Resource: querycache.ResourceEmployees, Page: page}
}

func totalKey() querycache.Key {
	return querycache.Key{Resource: querycache.ResourceEmployees, View: querycache.ViewTotal}
}

func (s *EmployeeService) GetPaginated(ctx context.Context, page, limit int) (*employee.Page, error) {
	if page < 1 {
		page = 1
	}
	return querycache.FetchAs(ctx, s.cache, listKey(page), func(ctx context.Context) (*employee.Page, error) {
		return s.repo.GetPaginated(ctx, &employee.FindParams{Page: page, Limit: limit})
	})
}

func (s *EmployeeService) Total(ctx context.Context) (int, error) {
	return querycache.FetchAs(ctx, s.cache, totalKey(), func(ctx context.Context) (int, error) {
		return s.repo.Total(ctx)
	})
}

// Search is live: it backs the debounced head selector and is never cached.
func (s *EmployeeService) Search(ctx context.Context, query string) ([]employee.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, query)
}

func (s *EmployeeService) Create(ctx context.Context, dto *employee.CreateDTO) error {
	return s.mutate(ctx, "employee:create", func(ctx context.Context) error {
		return s.repo.Create(ctx, dto)
	})
}

func (s *EmployeeService) Update(ctx context.Context, id string, dto *employee.UpdateDTO) error {
	return s.mutate(ctx, "employee:update:"+id, func(ctx context.Context) error {
		return s.repo.Update(ctx, id, dto)
	})
}

func (s *EmployeeService) SoftDelete(ctx context.Context, id string) error {
	return s.mutate(ctx, "employee:soft-delete:"+id, func(ctx context.Context) error {
		return s.repo.SoftDelete(ctx, id)
	})
}

func (s *EmployeeService) Restore(ctx context.Context, id string) error {
	return s.mutate(ctx, "employee:restore:"+id, func(ctx context.Context) error {
		return s.repo.Restore(ctx, id)
	})
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "employee:delete:"+id, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *EmployeeService) mutate(ctx context.Context, key string, loader func(ctx context.Context) error) error {
	return s.cache.Mutate(ctx, key, loader, querycache.MutationHooks{
		OnSuccess: func() {
			s.cache.InvalidateResource(querycache.ResourceEmployees)
		},
		OnError: func(err error) {
			s.log.WithError(err).WithField("mutation", key).Error("employee mutation failed")
		},
	})
}
