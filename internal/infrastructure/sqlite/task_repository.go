package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

const taskColumns = `id, guid, name, description, status, created_at, updated_at`

// taskRepository implements domain.TaskRepository using SQLite. It is a
// drop-in replacement for the in-memory repository: same failure conditions,
// same monotonic id assignment, same insertion-order listings.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new taskRepository instance.
func newTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{db: db}
}

// Ensure taskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*taskRepository)(nil)

// Add persists a new task. The uniqueness check and id assignment happen in
// one transaction so concurrent writers cannot race the count. Ids are the
// row count + 1; nothing is ever deleted, so the sequence stays monotonic.
func (r *taskRepository) Add(task *domain.Task) (*domain.Task, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingName string
	err = tx.QueryRow(
		`SELECT name FROM tasks WHERE lower(name) = lower(?)`, task.Name,
	).Scan(&existingName)
	if err == nil {
		return nil, &domain.DuplicateNameError{Name: existingName}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	var nextID int64
	if err := tx.QueryRow(`SELECT COUNT(*) + 1 FROM tasks`).Scan(&nextID); err != nil {
		return nil, fmt.Errorf("failed to compute next id: %w", err)
	}

	model := toTaskModel(task)
	model.ID = nextID
	_, err = tx.Exec(
		`INSERT INTO tasks (id, guid, name, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		model.ID, model.GUID, model.Name, model.Description, model.Status,
		model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit task insert: %w", err)
	}

	task.ID = nextID
	return model.toDomain(), nil
}

// Update replaces the stored task matching task.ID in full. A missing id is
// an explicit failure, not a silent no-op. The rename collision check runs in
// the same transaction as the write so it surfaces DuplicateNameError rather
// than a raw unique-index violation, matching the in-memory backend.
func (r *taskRepository) Update(task *domain.Task) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingName string
	err = tx.QueryRow(
		`SELECT name FROM tasks WHERE lower(name) = lower(?) AND id != ?`, task.Name, task.ID,
	).Scan(&existingName)
	if err == nil {
		return &domain.DuplicateNameError{Name: existingName}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check name uniqueness: %w", err)
	}

	model := toTaskModel(task)
	result, err := tx.Exec(
		`UPDATE tasks SET guid = ?, name = ?, description = ?, status = ?, created_at = ?, updated_at = ?
		 WHERE id = ?`,
		model.GUID, model.Name, model.Description, model.Status,
		model.CreatedAt, model.UpdatedAt, model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.TaskNotFoundError{ID: task.ID}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task update: %w", err)
	}
	return nil
}

// MoveToDoing transitions the stored task to doing.
func (r *taskRepository) MoveToDoing(id int64) error {
	return r.transition(id, (*domain.Task).MoveToDoing)
}

// MoveToDone transitions the stored task to done.
func (r *taskRepository) MoveToDone(id int64) error {
	return r.transition(id, (*domain.Task).MoveToDone)
}

// transition loads the task, applies the entity-level transition (the single
// home of the state-machine rule), and writes the result back atomically.
func (r *taskRepository) transition(id int64, move func(*domain.Task) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var model TaskModel
	err = tx.QueryRow(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id,
	).Scan(&model.ID, &model.GUID, &model.Name, &model.Description, &model.Status,
		&model.CreatedAt, &model.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.TaskNotFoundError{ID: id}
	}
	if err != nil {
		return fmt.Errorf("failed to load task for transition: %w", err)
	}

	task := model.toDomain()
	if err := move(task); err != nil {
		return err
	}

	updated := toTaskModel(task)
	if _, err := tx.Exec(
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		updated.Status, updated.UpdatedAt, id,
	); err != nil {
		return fmt.Errorf("failed to write transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

// ListByStatus returns tasks matching the filter ordered by id, which is
// insertion order by construction.
func (r *taskRepository) ListByStatus(filter domain.ListFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := []any{}

	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		var model TaskModel
		if err := rows.Scan(&model.ID, &model.GUID, &model.Name, &model.Description,
			&model.Status, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// FindByID retrieves a task by id. Returns TaskNotFoundError if no matching
// task exists.
func (r *taskRepository) FindByID(id int64) (*domain.Task, error) {
	return r.findOne(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`,
		[]any{id}, &domain.TaskNotFoundError{ID: id})
}

// FindByName retrieves a task by case-insensitive name match.
func (r *taskRepository) FindByName(name string) (*domain.Task, error) {
	return r.findOne(`SELECT `+taskColumns+` FROM tasks WHERE lower(name) = lower(?)`,
		[]any{name}, &domain.TaskNotFoundError{Name: name})
}

func (r *taskRepository) findOne(query string, args []any, notFound *domain.TaskNotFoundError) (*domain.Task, error) {
	var model TaskModel
	err := r.db.QueryRow(query, args...).Scan(
		&model.ID, &model.GUID, &model.Name, &model.Description, &model.Status,
		&model.CreatedAt, &model.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return model.toDomain(), nil
}
