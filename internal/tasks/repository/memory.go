// Package repository provides TaskRepository implementations backed by
// process memory, plus a caching decorator usable over any backend.
package repository

import (
	"strings"
	"sync"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

// MemoryTaskRepository is an in-memory implementation of
// domain.TaskRepository. Tasks live in an append-only slice preserving
// insertion order; ids are positions + 1, monotonically increasing and never
// reused since no delete operation exists.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []*domain.Task

	// Indexes for O(1) lookups. byName keys are case-folded.
	byID   map[int64]int
	byName map[string]int
}

// NewMemoryTaskRepository creates a new empty in-memory task repository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		byID:   make(map[int64]int),
		byName: make(map[string]int),
	}
}

// Ensure MemoryTaskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*MemoryTaskRepository)(nil)

// Add persists a new task, enforcing case-insensitive name uniqueness and
// assigning the next monotonic id. Returns a view of the stored task.
func (r *MemoryTaskRepository) Add(task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pos, ok := r.byName[foldName(task.Name)]; ok {
		// The error carries the existing task's stored spelling.
		return nil, &domain.DuplicateNameError{Name: r.tasks[pos].Name}
	}

	stored := task.Clone()
	stored.ID = int64(len(r.tasks)) + 1
	r.tasks = append(r.tasks, stored)
	r.byID[stored.ID] = len(r.tasks) - 1
	r.byName[foldName(stored.Name)] = len(r.tasks) - 1

	// The caller's copy learns its id too, mirroring the stored state.
	task.ID = stored.ID

	return stored.Clone(), nil
}

// Update replaces the stored task matching task.ID in full.
func (r *MemoryTaskRepository) Update(task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.byID[task.ID]
	if !ok {
		return &domain.TaskNotFoundError{ID: task.ID}
	}

	// A rename must not collide with another task's name.
	if other, ok := r.byName[foldName(task.Name)]; ok && other != pos {
		return &domain.DuplicateNameError{Name: r.tasks[other].Name}
	}

	old := r.tasks[pos]
	stored := task.Clone()
	r.tasks[pos] = stored
	if foldName(old.Name) != foldName(stored.Name) {
		delete(r.byName, foldName(old.Name))
		r.byName[foldName(stored.Name)] = pos
	}
	return nil
}

// MoveToDoing transitions the stored task to doing. The state-machine rule
// itself lives in the entity; the repository only locates the task and
// stamps the update timestamp.
func (r *MemoryTaskRepository) MoveToDoing(id int64) error {
	return r.transition(id, (*domain.Task).MoveToDoing)
}

// MoveToDone transitions the stored task to done.
func (r *MemoryTaskRepository) MoveToDone(id int64) error {
	return r.transition(id, (*domain.Task).MoveToDone)
}

func (r *MemoryTaskRepository) transition(id int64, move func(*domain.Task) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.byID[id]
	if !ok {
		return &domain.TaskNotFoundError{ID: id}
	}
	return move(r.tasks[pos])
}

// ListByStatus returns tasks matching the filter in insertion order. The
// zero-value filter returns every task.
func (r *MemoryTaskRepository) ListByStatus(filter domain.ListFilter) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t.Clone())
	}
	return out, nil
}

// FindByID returns a view of the task with the given id.
func (r *MemoryTaskRepository) FindByID(id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.byID[id]
	if !ok {
		return nil, &domain.TaskNotFoundError{ID: id}
	}
	return r.tasks[pos].Clone(), nil
}

// FindByName returns a view of the task whose name matches
// case-insensitively.
func (r *MemoryTaskRepository) FindByName(name string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.byName[foldName(name)]
	if !ok {
		return nil, &domain.TaskNotFoundError{Name: name}
	}
	return r.tasks[pos].Clone(), nil
}

// Count returns the number of stored tasks.
func (r *MemoryTaskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// foldName normalizes a task name for case-insensitive comparison.
func foldName(name string) string {
	return strings.ToLower(name)
}
