package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/emstack/ems-console/pkg/logging"
)

func newTestCache() *Cache {
	return New(logging.ConsoleLogger(logrus.PanicLevel))
}

func TestFetch_CachesLoaderResult(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceDepartments}

	var calls int32
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "v1", nil
	}

	v, err := c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, "v1", v)

	v, err = c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, "v1", v)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_DeduplicatesConcurrentLoads(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceEmployees, Page: 1}

	var calls int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "page1", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), key, loader)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		require.Equal(t, "page1", v)
	}
}

func TestFetch_InvalidateForcesReload(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceEmployees, Page: 2}

	var calls int32
	loader := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	v, err := c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, int32(1), v)

	c.Invalidate(key)

	v, err = c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, int32(2), v)
}

func TestFetch_LoaderErrorNotCached(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceProfile}

	boom := errors.New("boom")
	var calls int32
	loader := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}
		return "ok", nil
	}

	_, err := c.Fetch(context.Background(), key, loader)
	require.ErrorIs(t, err, boom)

	v, err := c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestFetch_CanceledCallerAbandonsResult(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceEmployees, Page: 3}

	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		<-release
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, key, loader)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	// The abandoned load still completes and lands in the cache for the
	// next caller.
	close(release)
	require.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		_, ok := c.entries[key]
		return ok
	}, time.Second, 10*time.Millisecond)

	v, err := c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		t.Error("loader should not run for a cached key")
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, "late", v)
}

func TestFetch_InvalidationDuringLoadDiscardsStaleResult(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceEmployees, Page: 1}

	var calls int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return "pre-mutation rows", nil
		}
		return "post-mutation rows", nil
	}

	done := make(chan any, 1)
	go func() {
		v, err := c.Fetch(context.Background(), key, loader)
		require.NoError(t, err)
		done <- v
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 5*time.Millisecond)

	// A mutation lands while the list fetch is still in flight.
	c.InvalidateResource(ResourceEmployees)
	close(release)

	// The in-flight caller still gets the rows it asked for, but they must
	// not stick: the next read reloads instead of serving pre-mutation state.
	require.Equal(t, "pre-mutation rows", <-done)
	v, err := c.Fetch(context.Background(), key, loader)
	require.NoError(t, err)
	require.Equal(t, "post-mutation rows", v)
}

func TestInvalidateResource_DropsAllPagesOfResource(t *testing.T) {
	c := newTestCache()
	for page := 1; page <= 3; page++ {
		_, err := c.Fetch(context.Background(), Key{Resource: ResourceEmployees, Page: page}, func(ctx context.Context) (any, error) {
			return page, nil
		})
		require.NoError(t, err)
	}
	_, err := c.Fetch(context.Background(), Key{Resource: ResourceEmployees, View: ViewTotal}, func(ctx context.Context) (any, error) {
		return 30, nil
	})
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), Key{Resource: ResourceDepartments}, func(ctx context.Context) (any, error) {
		return "departments", nil
	})
	require.NoError(t, err)

	c.InvalidateResource(ResourceEmployees)

	c.mu.RLock()
	defer c.mu.RUnlock()
	require.Len(t, c.entries, 1)
	_, ok := c.entries[Key{Resource: ResourceDepartments}]
	require.True(t, ok, "other resources must survive")
}

func TestMutate_SuccessRunsHookOnce(t *testing.T) {
	c := newTestCache()
	var invalidations int
	err := c.Mutate(context.Background(), "", func(ctx context.Context) error {
		return nil
	}, MutationHooks{
		OnSuccess: func() {
			invalidations++
			c.InvalidateResource(ResourceEmployees)
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, invalidations)
}

func TestMutate_ErrorLeavesCacheUntouched(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceDepartments}
	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	boom := errors.New("remote rejected")
	var got error
	err = c.Mutate(context.Background(), "", func(ctx context.Context) error {
		return boom
	}, MutationHooks{
		OnSuccess: func() { t.Error("success hook must not run") },
		OnError:   func(e error) { got = e },
	})
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, got, boom)

	v, err := c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		t.Error("loader should not run, cache must be intact")
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, "cached", v)
}

func TestMutate_RejectsSecondInFlightSubmit(t *testing.T) {
	c := newTestCache()
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = c.Mutate(context.Background(), "employee-form", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		}, MutationHooks{})
	}()
	<-started

	err := c.Mutate(context.Background(), "employee-form", func(ctx context.Context) error {
		t.Error("second submit must not reach the loader")
		return nil
	}, MutationHooks{})
	require.ErrorIs(t, err, ErrMutationInFlight)

	close(release)
	require.Eventually(t, func() bool {
		return c.Mutate(context.Background(), "employee-form", func(ctx context.Context) error { return nil }, MutationHooks{}) == nil
	}, time.Second, 10*time.Millisecond)
}

func TestPatch_MergesOnlyWhenPresent(t *testing.T) {
	c := newTestCache()
	key := Key{Resource: ResourceProfile}

	require.False(t, c.Patch(key, func(v any) any { return v }))

	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return map[string]string{"name": "old", "email": "a@x.com"}, nil
	})
	require.NoError(t, err)

	ok := c.Patch(key, func(v any) any {
		m := v.(map[string]string)
		m["name"] = "new"
		return m
	})
	require.True(t, ok)

	v, err := c.Fetch(context.Background(), key, nil)
	require.NoError(t, err)
	require.Equal(t, "new", v.(map[string]string)["name"])
	require.Equal(t, "a@x.com", v.(map[string]string)["email"])
}
