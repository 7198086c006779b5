package repository

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/taskboard/internal/log"
	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

// DefaultCacheTTL bounds staleness when invalidation is missed (e.g. another
// process writing the same database file without the watcher running).
const DefaultCacheTTL = 5 * time.Minute

// CachedTaskRepository decorates any domain.TaskRepository with a
// read-through cache. Lookups and listings are served from cache; every
// mutation flushes it. Useful in front of the SQLite backend, a no-op
// overhead in front of the memory one.
type CachedTaskRepository struct {
	inner domain.TaskRepository
	cache *gocache.Cache
}

// NewCachedTaskRepository wraps inner with a cache using the given TTL.
// A non-positive ttl falls back to DefaultCacheTTL.
func NewCachedTaskRepository(inner domain.TaskRepository, ttl time.Duration) *CachedTaskRepository {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedTaskRepository{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Ensure CachedTaskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*CachedTaskRepository)(nil)

// Add delegates to the inner repository and invalidates the cache.
func (r *CachedTaskRepository) Add(task *domain.Task) (*domain.Task, error) {
	stored, err := r.inner.Add(task)
	if err != nil {
		return nil, err
	}
	r.Invalidate()
	return stored, nil
}

// Update delegates to the inner repository and invalidates the cache.
func (r *CachedTaskRepository) Update(task *domain.Task) error {
	if err := r.inner.Update(task); err != nil {
		return err
	}
	r.Invalidate()
	return nil
}

// MoveToDoing delegates to the inner repository and invalidates the cache.
func (r *CachedTaskRepository) MoveToDoing(id int64) error {
	if err := r.inner.MoveToDoing(id); err != nil {
		return err
	}
	r.Invalidate()
	return nil
}

// MoveToDone delegates to the inner repository and invalidates the cache.
func (r *CachedTaskRepository) MoveToDone(id int64) error {
	if err := r.inner.MoveToDone(id); err != nil {
		return err
	}
	r.Invalidate()
	return nil
}

// ListByStatus serves listings from cache when possible.
func (r *CachedTaskRepository) ListByStatus(filter domain.ListFilter) ([]*domain.Task, error) {
	key := "list:" + string(filter.Status)
	if v, ok := r.cache.Get(key); ok {
		cached := v.([]*domain.Task)
		return cloneAll(cached), nil
	}

	tasks, err := r.inner.ListByStatus(filter)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, cloneAll(tasks))
	return tasks, nil
}

// FindByID serves lookups from cache when possible. Not-found results are
// not cached; the next Add legitimately changes the answer.
func (r *CachedTaskRepository) FindByID(id int64) (*domain.Task, error) {
	key := fmt.Sprintf("id:%d", id)
	if v, ok := r.cache.Get(key); ok {
		return v.(*domain.Task).Clone(), nil
	}

	task, err := r.inner.FindByID(id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, task.Clone())
	return task, nil
}

// FindByName serves name lookups from cache, keyed case-folded.
func (r *CachedTaskRepository) FindByName(name string) (*domain.Task, error) {
	key := "name:" + strings.ToLower(name)
	if v, ok := r.cache.Get(key); ok {
		return v.(*domain.Task).Clone(), nil
	}

	task, err := r.inner.FindByName(name)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, task.Clone())
	return task, nil
}

// Invalidate drops every cached entry. Wired to the database change watcher
// so external writes become visible.
func (r *CachedTaskRepository) Invalidate() {
	log.Debug(log.CatCache, "Flushing task cache")
	r.cache.Flush()
}

func cloneAll(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
