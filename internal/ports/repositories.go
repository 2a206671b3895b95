package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	Count(ctx context.Context, filter TaskFilter) (int64, error)
}

// TaskFilter holds the conditions, ordering and paging bounds for a task
// listing. Nil condition fields mean "no condition". Count implementations
// apply the conditions only, never Limit or Offset.
type TaskFilter struct {
	Completed *bool
	Priority  *entities.Priority
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}
