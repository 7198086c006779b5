package sqlite

import (
	"time"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

// TaskModel represents the database row for the tasks table. Fields map
// directly to SQL columns, with Unix timestamps for time values.
type TaskModel struct {
	ID          int64
	GUID        string
	Name        string
	Description string
	Status      string
	CreatedAt   int64  // Unix timestamp
	UpdatedAt   *int64 // Unix timestamp, nullable
}

// toTaskModel converts a domain Task entity to a database TaskModel.
func toTaskModel(t *domain.Task) *TaskModel {
	m := &TaskModel{
		ID:          t.ID,
		GUID:        t.GUID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Unix(),
	}
	if t.UpdatedAt != nil {
		updatedAt := t.UpdatedAt.Unix()
		m.UpdatedAt = &updatedAt
	}
	return m
}

// toDomain converts a database TaskModel to a domain Task entity.
func (m *TaskModel) toDomain() *domain.Task {
	var updatedAt *time.Time
	if m.UpdatedAt != nil {
		u := time.Unix(*m.UpdatedAt, 0)
		updatedAt = &u
	}
	return &domain.Task{
		ID:          m.ID,
		GUID:        m.GUID,
		Name:        m.Name,
		Description: m.Description,
		Status:      domain.Status(m.Status),
		CreatedAt:   time.Unix(m.CreatedAt, 0),
		UpdatedAt:   updatedAt,
	}
}
