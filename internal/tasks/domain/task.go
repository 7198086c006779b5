package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the task lifecycle state.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// IsValid reports whether s is one of the three lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task represents one unit of work on the board.
type Task struct {
	// ID is assigned by the repository on Add. Zero means the task has not
	// been persisted yet.
	ID int64

	// GUID is a stable external correlation handle, assigned at construction.
	GUID string

	// Name is the display title. Uniqueness is enforced case-insensitively
	// by the repository.
	Name string

	// Description is free-form text, may be empty, mutable after creation.
	Description string

	// Status is the task's position in the lifecycle.
	Status Status

	// CreatedAt is fixed at construction.
	CreatedAt time.Time

	// UpdatedAt is set on every successful status transition, nil until the
	// first one.
	UpdatedAt *time.Time
}

// NewTask creates a task in the todo state with no id and no update
// timestamp. No validation happens here; validation is a separate, explicit
// step so callers can check pre-conditions against a repository's live copy.
func NewTask(name, description string) *Task {
	return &Task{
		GUID:        uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   time.Now(),
	}
}

// Persisted reports whether the task has been accepted by a repository.
func (t *Task) Persisted() bool {
	return t.ID > 0
}

// ValidateForAdd checks the pre-conditions for persisting a new task.
// It is pure: no fields are mutated.
func (t *Task) ValidateForAdd() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	if t.Status != StatusTodo {
		return ErrInvalidInitialStatus
	}
	return nil
}

// ValidateForDoing checks that the task may move to doing.
func (t *Task) ValidateForDoing() error {
	if t.Status != StatusTodo {
		return &InvalidTransitionError{Name: t.Name, From: t.Status, To: StatusDoing}
	}
	return nil
}

// ValidateForDone checks that the task may move to done.
func (t *Task) ValidateForDone() error {
	if t.Status != StatusDoing {
		return &InvalidTransitionError{Name: t.Name, From: t.Status, To: StatusDone}
	}
	return nil
}

// MoveToDoing transitions the task from todo to doing and stamps UpdatedAt.
func (t *Task) MoveToDoing() error {
	if err := t.ValidateForDoing(); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusDoing
	t.UpdatedAt = &now
	return nil
}

// MoveToDone transitions the task from doing to done and stamps UpdatedAt.
func (t *Task) MoveToDone() error {
	if err := t.ValidateForDone(); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusDone
	t.UpdatedAt = &now
	return nil
}

// Clone returns a defensive copy of the task. Repositories return clones so
// callers never alias stored state.
func (t *Task) Clone() *Task {
	c := *t
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}
