package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard/internal/domain/entities"
	"github.com/taskboard/taskboard/internal/infrastructure/logger"
	"github.com/taskboard/taskboard/internal/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ListTasksRequest carries the raw listing parameters after query-string
// parsing. Zero values mean "use the default".
type ListTasksRequest struct {
	Page            int
	Limit           int
	SortBy          string
	SortOrder       string
	FilterCompleted string
	FilterPriority  string
}

// ListTasksResult is a page of tasks plus everything the view needs to
// render navigation and echo the filter state back into the form.
type ListTasksResult struct {
	Tasks      []*entities.Task
	Total      int64
	Pagination Pagination
	Filters    ListTasksRequest
}

// TaskService handles task-related operations
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// ListTasks retrieves a filtered, sorted page of tasks together with the
// total count of the filtered set and the computed pagination window.
// Page and limit below 1 are clamped to their defaults; limit is capped
// at maxLimit so a single request cannot drag the whole table over.
func (s *TaskService) ListTasks(ctx context.Context, req ListTasksRequest) (*ListTasksResult, error) {
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxLimit {
		req.Limit = maxLimit
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	if req.SortOrder != "asc" {
		req.SortOrder = "desc"
	}

	filter := ports.TaskFilter{
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
		Offset:    (req.Page - 1) * req.Limit,
	}

	// Only the exact strings "true" and "false" narrow the listing;
	// anything else leaves the completed flag unfiltered.
	switch req.FilterCompleted {
	case "true":
		completed := true
		filter.Completed = &completed
	case "false":
		completed := false
		filter.Completed = &completed
	}

	if req.FilterPriority != "" {
		priority := entities.Priority(req.FilterPriority)
		filter.Priority = &priority
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))

	return &ListTasksResult{
		Tasks:      tasks,
		Total:      total,
		Pagination: NewPagination(req.Page, totalPages, "/tasks"),
		Filters:    req,
	}, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// CreateTask creates a new task. Completion always starts false; an
// absent due date stays nil.
func (s *TaskService) CreateTask(ctx context.Context, title string, description *string, priority entities.Priority, dueDate *time.Time) (*entities.Task, error) {
	if !priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	task := &entities.Task{
		Title:       title,
		Description: description,
		Priority:    priority,
		Completed:   false,
		DueDate:     dueDate,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// UpdateTask replaces a task's editable fields in full.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, title string, description *string, priority entities.Priority, completed bool, dueDate *time.Time) (*entities.Task, error) {
	if !priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	task.Priority = priority
	task.Completed = completed
	task.DueDate = dueDate

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// DeleteTask deletes a task. A nonexistent id deletes nothing and is not
// an error.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}

// ToggleTask flips a task's completion flag. The load-flip-save sequence
// is not atomic: two concurrent toggles on the same id race and the flag
// ends up in whichever state was written last.
func (s *TaskService) ToggleTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Toggle()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	s.logger.Info("Task toggled", "task_id", task.ID, "completed", task.Completed)

	return task, nil
}
