package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyName indicates an add was rejected because the task name is empty.
var ErrEmptyName = errors.New("task name is required")

// ErrInvalidInitialStatus indicates a task that is not in the todo state was
// passed to add validation. Construction always yields todo, so hitting this
// means an internal invariant was violated upstream.
var ErrInvalidInitialStatus = errors.New("new task must be in the todo state")

// TaskNotFoundError indicates that a task with the specified id or name
// could not be found in the repository.
type TaskNotFoundError struct {
	ID   int64
	Name string
}

// Error implements the error interface.
func (e *TaskNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task not found: name=%q", e.Name)
	}
	return fmt.Sprintf("task not found: id=%d", e.ID)
}

// DuplicateNameError indicates an add was rejected because another task
// already uses the same name under case-insensitive comparison.
type DuplicateNameError struct {
	// Name is the existing task's name as stored, not the rejected spelling.
	Name string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("task with name %q already exists", e.Name)
}

// InvalidTransitionError indicates a transition was rejected because the
// task's current status does not satisfy the required pre-condition.
type InvalidTransitionError struct {
	Name string
	From Status
	To   Status
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("task %q cannot move from %s to %s", e.Name, e.From, e.To)
}

// IsNotFound reports whether err is a TaskNotFoundError.
func IsNotFound(err error) bool {
	var nf *TaskNotFoundError
	return errors.As(err, &nf)
}
