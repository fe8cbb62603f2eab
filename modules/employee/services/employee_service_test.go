package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emstack/ems-console/modules/employee/domain/aggregates/employee"
	"github.com/emstack/ems-console/pkg/logging"
	"github.com/emstack/ems-console/pkg/querycache"
)

type fakeRepo struct {
	listCalls   int
	totalCalls  int
	searchCalls int
	createErr   error
	deleted     map[string]bool
}

func (f *fakeRepo) GetPaginated(ctx context.Context, params *employee.FindParams) (*employee.Page, error) {
	f.listCalls++
	items := []employee.Employee{
		employee.Hydrate("e1", "Jane", "jane@x.com", "employee", 50000, nil, "", f.deleted["e1"], time.Now()),
	}
	return &employee.Page{
		Items: items,
		Info:  employee.PageInfo{CurrentPage: params.Page, TotalPages: 3, PerPage: params.Limit},
	}, nil
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]employee.SearchResult, error) {
	f.searchCalls++
	return []employee.SearchResult{{ID: "e1", Email: "jane@x.com"}}, nil
}

func (f *fakeRepo) Create(ctx context.Context, dto *employee.CreateDTO) error { return f.createErr }

func (f *fakeRepo) Update(ctx context.Context, id string, dto *employee.UpdateDTO) error { return nil }

func (f *fakeRepo) SoftDelete(ctx context.Context, id string) error {
	if f.deleted == nil {
		f.deleted = map[string]bool{}
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeRepo) Restore(ctx context.Context, id string) error {
	delete(f.deleted, id)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeRepo) Total(ctx context.Context) (int, error) {
	f.totalCalls++
	return 21, nil
}

func newService(repo employee.Repository) (*EmployeeService, *querycache.Cache) {
	cache := querycache.New(logging.ConsoleLogger(logrus.PanicLevel))
	return NewEmployeeService(repo, cache, logging.ConsoleLogger(logrus.PanicLevel)), cache
}

func TestGetPaginated_CachesPerPage(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newService(repo)

	for i := 0; i < 3; i++ {
		page, err := svc.GetPaginated(context.Background(), 2, 10)
		require.NoError(t, err)
		require.Equal(t, 2, page.Info.CurrentPage)
	}
	require.Equal(t, 1, repo.listCalls)

	_, err := svc.GetPaginated(context.Background(), 3, 10)
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls, "another page is another key")
}

func TestGetPaginated_NormalizesPageBelowOne(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newService(repo)

	page, err := svc.GetPaginated(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Info.CurrentPage)
}

func TestMutations_InvalidateEveryEmployeeKey(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newService(repo)

	_, err := svc.GetPaginated(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = svc.Total(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)
	require.Equal(t, 1, repo.totalCalls)

	require.NoError(t, svc.SoftDelete(context.Background(), "e1"))

	// Both the list page and the total must be refetched, and the refetched
	// page reflects the soft delete.
	page, err := svc.GetPaginated(context.Background(), 1, 10)
	require.NoError(t, err)
	require.True(t, page.Items[0].IsDeleted())
	_, err = svc.Total(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)
	require.Equal(t, 2, repo.totalCalls)

	require.NoError(t, svc.Restore(context.Background(), "e1"))
	page, err = svc.GetPaginated(context.Background(), 1, 10)
	require.NoError(t, err)
	require.False(t, page.Items[0].IsDeleted())
	require.Equal(t, 3, repo.listCalls)
}

func TestCreate_ErrorLeavesCacheIntact(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("email taken")}
	svc, _ := newService(repo)

	_, err := svc.GetPaginated(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	dto := &employee.CreateDTO{Name: "Jane", Email: "jane@x.com", Password: "secret", Salary: "50000"}
	require.Error(t, svc.Create(context.Background(), dto))

	_, err = svc.GetPaginated(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls, "failed mutation must not invalidate")
}

func TestSearch_EmptyQueryShortCircuits(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newService(repo)

	results, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Nil(t, results)
	require.Zero(t, repo.searchCalls)

	results, err = svc.Search(context.Background(), "jane")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 1, repo.searchCalls)

	// Search results are live, never cached.
	_, err = svc.Search(context.Background(), "jane")
	require.NoError(t, err)
	require.Equal(t, 2, repo.searchCalls)
}
