// Package application provides the service layer for the taskboard task
// tracker. TaskService is the sole entry point external collaborators (CLI,
// API surfaces, persistence adapters) should use; it validates against the
// repository's live copy before delegating mutations.
package application

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/taskboard/internal/log"
	"github.com/zjrosen/taskboard/internal/tasks/domain"
)

const tracerName = "github.com/zjrosen/taskboard/internal/tasks/application"

// TaskService orchestrates validation and delegates storage to an injected
// TaskRepository, so any conforming backend (memory, SQLite, cached) drops in
// without changing callers.
type TaskService struct {
	repo   domain.TaskRepository
	tracer trace.Tracer
}

// NewTaskService creates a TaskService over the given repository.
func NewTaskService(repo domain.TaskRepository) *TaskService {
	return &TaskService{
		repo:   repo,
		tracer: otel.Tracer(tracerName),
	}
}

// AddTask constructs a task, runs the add pre-conditions, and persists it.
// Surfaces validation errors and the repository's DuplicateNameError
// unchanged.
func (s *TaskService) AddTask(ctx context.Context, name, description string) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.AddTask",
		trace.WithAttributes(attribute.String("task.name", name)))
	defer span.End()

	task := domain.NewTask(name, description)
	if err := task.ValidateForAdd(); err != nil {
		return nil, s.fail(span, err)
	}

	stored, err := s.repo.Add(task)
	if err != nil {
		return nil, s.fail(span, err)
	}

	span.SetAttributes(attribute.Int64("task.id", stored.ID))
	log.Info(log.CatService, "Task added", "id", stored.ID, "name", stored.Name)
	return stored, nil
}

// MoveToDoing starts work on a task: looks it up, checks the pre-condition
// against the live copy, then delegates the transition.
func (s *TaskService) MoveToDoing(ctx context.Context, id int64) error {
	_, span := s.tracer.Start(ctx, "TaskService.MoveToDoing",
		trace.WithAttributes(attribute.Int64("task.id", id)))
	defer span.End()

	task, err := s.repo.FindByID(id)
	if err != nil {
		return s.fail(span, err)
	}
	if err := task.ValidateForDoing(); err != nil {
		return s.fail(span, err)
	}
	if err := s.repo.MoveToDoing(id); err != nil {
		return s.fail(span, err)
	}

	log.Info(log.CatService, "Task moved to doing", "id", id, "name", task.Name)
	return nil
}

// MoveToDone completes a task; requires it to be in doing.
func (s *TaskService) MoveToDone(ctx context.Context, id int64) error {
	_, span := s.tracer.Start(ctx, "TaskService.MoveToDone",
		trace.WithAttributes(attribute.Int64("task.id", id)))
	defer span.End()

	task, err := s.repo.FindByID(id)
	if err != nil {
		return s.fail(span, err)
	}
	if err := task.ValidateForDone(); err != nil {
		return s.fail(span, err)
	}
	if err := s.repo.MoveToDone(id); err != nil {
		return s.fail(span, err)
	}

	log.Info(log.CatService, "Task moved to done", "id", id, "name", task.Name)
	return nil
}

// ListByStatus returns tasks matching the filter in insertion order. Pure
// delegation.
func (s *TaskService) ListByStatus(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.ListByStatus",
		trace.WithAttributes(attribute.String("filter.status", string(filter.Status))))
	defer span.End()

	tasks, err := s.repo.ListByStatus(filter)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	return tasks, nil
}

// FindByID returns a view of the task with the given id. Pure delegation.
func (s *TaskService) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.FindByID",
		trace.WithAttributes(attribute.Int64("task.id", id)))
	defer span.End()

	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return task, nil
}

// FindByName returns a view of the task matching the name
// case-insensitively. Pure delegation.
func (s *TaskService) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	_, span := s.tracer.Start(ctx, "TaskService.FindByName",
		trace.WithAttributes(attribute.String("task.name", name)))
	defer span.End()

	task, err := s.repo.FindByName(name)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return task, nil
}

// fail records the error on the span and returns it unchanged so callers see
// the domain error types, not wrappers.
func (s *TaskService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
