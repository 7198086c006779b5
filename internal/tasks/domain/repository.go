package domain

// ListFilter describes the criteria for listing tasks. The zero value
// matches every task, replacing the wildcard status sentinel some trackers
// overload their status enum with.
type ListFilter struct {
	// Status limits results to tasks in this state. Empty means all states.
	Status Status
}

// TaskRepository is the port implemented by storage backends. It is the
// exclusive owner of the task collection: the sole authority for identity
// assignment and name uniqueness. The collection is append-only; no delete
// operation exists, so ids are never reused.
//
// Implementations return defensive copies of stored tasks, never aliases.
type TaskRepository interface {
	// Add persists a new task. It enforces case-insensitive name uniqueness,
	// assigns the next monotonic id (starting at 1, insertion order), and
	// returns a view of the stored task. Fails with DuplicateNameError.
	Add(task *Task) (*Task, error)

	// Update replaces the stored task matching task.ID in full. Fails with
	// TaskNotFoundError when no task has that id, and with
	// DuplicateNameError when the new name collides with another task's
	// under case-insensitive comparison.
	Update(task *Task) error

	// MoveToDoing transitions the stored task to doing and stamps its
	// update timestamp. Fails with TaskNotFoundError or
	// InvalidTransitionError.
	MoveToDoing(id int64) error

	// MoveToDone transitions the stored task to done and stamps its update
	// timestamp. Fails with TaskNotFoundError or InvalidTransitionError.
	MoveToDone(id int64) error

	// ListByStatus returns tasks matching the filter in insertion order.
	ListByStatus(filter ListFilter) ([]*Task, error)

	// FindByID returns the task with the given id. Fails with
	// TaskNotFoundError.
	FindByID(id int64) (*Task, error)

	// FindByName returns the first task whose name matches under
	// case-insensitive comparison. Fails with TaskNotFoundError.
	FindByName(name string) (*Task, error)
}
