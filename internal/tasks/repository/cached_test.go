package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

// countingRepository wraps MemoryTaskRepository and counts reads hitting the
// backend, so tests can tell cache hits from misses.
type countingRepository struct {
	*MemoryTaskRepository
	finds int
	lists int
}

func (c *countingRepository) FindByID(id int64) (*domain.Task, error) {
	c.finds++
	return c.MemoryTaskRepository.FindByID(id)
}

func (c *countingRepository) FindByName(name string) (*domain.Task, error) {
	c.finds++
	return c.MemoryTaskRepository.FindByName(name)
}

func (c *countingRepository) ListByStatus(filter domain.ListFilter) ([]*domain.Task, error) {
	c.lists++
	return c.MemoryTaskRepository.ListByStatus(filter)
}

func newCountingCached(t *testing.T) (*countingRepository, *CachedTaskRepository) {
	t.Helper()
	backend := &countingRepository{MemoryTaskRepository: NewMemoryTaskRepository()}
	cached := NewCachedTaskRepository(backend, time.Minute)

	_, err := cached.Add(domain.NewTask("task1", "description1"))
	require.NoError(t, err)
	return backend, cached
}

func TestCachedTaskRepository_FindByID_CacheAside(t *testing.T) {
	backend, cached := newCountingCached(t)

	first, err := cached.FindByID(1)
	require.NoError(t, err)
	second, err := cached.FindByID(1)
	require.NoError(t, err)

	require.Equal(t, 1, backend.finds, "second lookup should hit the cache")
	require.Equal(t, first.Name, second.Name)
}

func TestCachedTaskRepository_FindByName_FoldsKey(t *testing.T) {
	backend, cached := newCountingCached(t)

	_, err := cached.FindByName("task1")
	require.NoError(t, err)
	_, err = cached.FindByName("TASK1")
	require.NoError(t, err)

	require.Equal(t, 1, backend.finds, "case variants share one cache entry")
}

func TestCachedTaskRepository_MutationsInvalidate(t *testing.T) {
	backend, cached := newCountingCached(t)

	_, err := cached.ListByStatus(domain.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, backend.lists)

	// A transition must drop the cached listing.
	require.NoError(t, cached.MoveToDoing(1))

	doing, err := cached.ListByStatus(domain.ListFilter{Status: domain.StatusDoing})
	require.NoError(t, err)
	require.Len(t, doing, 1)
	require.Equal(t, 2, backend.lists, "post-mutation list must go to the backend")
}

func TestCachedTaskRepository_InvalidateExposedForWatcher(t *testing.T) {
	backend, cached := newCountingCached(t)

	_, err := cached.FindByID(1)
	require.NoError(t, err)
	cached.Invalidate()
	_, err = cached.FindByID(1)
	require.NoError(t, err)

	require.Equal(t, 2, backend.finds)
}

func TestCachedTaskRepository_ErrorsPassThrough(t *testing.T) {
	_, cached := newCountingCached(t)

	_, err := cached.FindByID(99)
	require.True(t, domain.IsNotFound(err))

	_, err = cached.Add(domain.NewTask("TASK1", "dup"))
	var dup *domain.DuplicateNameError
	require.ErrorAs(t, err, &dup)

	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, cached.MoveToDone(1), &invalid)
}

func TestCachedTaskRepository_ReturnsCopies(t *testing.T) {
	_, cached := newCountingCached(t)

	first, err := cached.FindByID(1)
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := cached.FindByID(1)
	require.NoError(t, err)
	require.Equal(t, "task1", second.Name, "cached views must not alias each other")
}
