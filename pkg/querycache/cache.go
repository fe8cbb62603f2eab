package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Resources cached by the gateway. Every key carries exactly one of these.
const (
	ResourceEmployees   = "employees"
	ResourceDepartments = "departments"
	ResourceProfile     = "profile"
)

// ViewTotal marks the aggregate-count key of a resource.
const ViewTotal = "total"

var ErrMutationInFlight = errors.New("mutation already in flight")

// Key identifies a cached remote fetch by (resource, view, page) instead of
// an ad hoc string, so invalidation rules stay declarable per resource.
type Key struct {
	Resource string
	View     string
	Page     int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s#%d", k.Resource, k.View, k.Page)
}

type entry struct {
	value any
}

// Cache is the keyed query/mutation cache shared by all page controllers.
// Reads funnel through Fetch, writes through Mutate; a successful mutation
// invalidates every key of the mutated resource before the caller re-renders.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	// generations count invalidations per resource. A load that started
	// before an invalidation must not store its result afterwards.
	generations map[string]uint64
	group       singleflight.Group

	mmu       sync.Mutex
	mutations map[string]struct{}

	log *logrus.Logger
}

func New(log *logrus.Logger) *Cache {
	return &Cache{
		entries:     make(map[Key]entry),
		generations: make(map[string]uint64),
		mutations:   make(map[string]struct{}),
		log:         log,
	}
}

// Fetch returns the cached value for key, or invokes loader and stores its
// result. Concurrent misses for the same key collapse into one loader call.
// A caller whose context is canceled abandons the in-flight result; the
// loader keeps running and its result is cached for the remaining callers.
func (c *Cache) Fetch(ctx context.Context, key Key, loader func(ctx context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	gen := c.generations[key.Resource]
	c.mu.RUnlock()
	if ok {
		return e.value, nil
	}

	ch := c.group.DoChan(key.String(), func() (any, error) {
		v, err := loader(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// An invalidation during the load supersedes this result; the
		// caller still gets it, but the next read reloads.
		if c.generations[key.Resource] == gen {
			c.entries[key] = entry{value: v}
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	}
}

// FetchAs is a typed wrapper around Cache.Fetch.
func FetchAs[T any](ctx context.Context, c *Cache, key Key, loader func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: unexpected value type %T for key %s", v, key)
	}
	return out, nil
}

// Invalidate marks the key stale; the next Fetch reloads it.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.entries, key)
	c.generations[key.Resource]++
	c.mu.Unlock()
	c.group.Forget(key.String())
}

// InvalidateResource drops every cached key of the given resource.
func (c *Cache) InvalidateResource(resource string) {
	c.mu.Lock()
	c.generations[resource]++
	for key := range c.entries {
		if key.Resource == resource {
			delete(c.entries, key)
			c.group.Forget(key.String())
		}
	}
	c.mu.Unlock()
	if c.log != nil {
		c.log.WithField("resource", resource).Debug("cache invalidated")
	}
}

// Patch applies fn to the cached value for key, if present. Used when a
// mutation response should be merged into a record instead of refetched.
func (c *Cache) Patch(key Key, fn func(v any) any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.entries[key] = entry{value: fn(e.value)}
	return true
}

// MutationHooks carry the success and error continuations of a mutation.
// OnSuccess typically issues one or more invalidations.
type MutationHooks struct {
	OnSuccess func()
	OnError   func(err error)
}

// Mutate runs loader through the single mutation path. A non-empty mutationKey
// guards against a second submit of the same in-flight mutation. The cache is
// left untouched on failure.
func (c *Cache) Mutate(ctx context.Context, mutationKey string, loader func(ctx context.Context) error, hooks MutationHooks) error {
	if mutationKey != "" {
		c.mmu.Lock()
		if _, busy := c.mutations[mutationKey]; busy {
			c.mmu.Unlock()
			return ErrMutationInFlight
		}
		c.mutations[mutationKey] = struct{}{}
		c.mmu.Unlock()
		defer func() {
			c.mmu.Lock()
			delete(c.mutations, mutationKey)
			c.mmu.Unlock()
		}()
	}

	if err := loader(ctx); err != nil {
		if hooks.OnError != nil {
			hooks.OnError(err)
		}
		return err
	}
	if hooks.OnSuccess != nil {
		hooks.OnSuccess()
	}
	return nil
}
