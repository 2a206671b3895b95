package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/adapters/web/view"
	"github.com/taskboard/taskboard/internal/application/services"
	"github.com/taskboard/taskboard/internal/domain/entities"
	"github.com/taskboard/taskboard/internal/infrastructure/logger"
)

// TaskHandler serves the task pages
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

type listPage struct {
	view.Page
	Tasks      []*entities.Task
	Total      int64
	Pagination services.Pagination
	Filters    services.ListTasksRequest
}

type taskPage struct {
	view.Page
	Task *entities.Task
}

type formPage struct {
	view.Page
	Task  *entities.Task
	Form  TaskForm
	Error string
}

func (h *TaskHandler) page(c echo.Context, title string) view.Page {
	return view.Page{
		Title:       title,
		CurrentPath: c.Request().URL.Path,
	}
}

// List renders the filtered, sorted, paginated task listing
func (h *TaskHandler) List(c echo.Context) error {
	req := parseListParams(c)

	result, err := h.taskService.ListTasks(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "tasks_index", listPage{
		Page:       h.page(c, "All Tasks"),
		Tasks:      result.Tasks,
		Total:      result.Total,
		Pagination: result.Pagination,
		Filters:    result.Filters,
	})
}

// NewForm renders the creation form
func (h *TaskHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "tasks_new", formPage{
		Page: h.page(c, "Create New Task"),
	})
}

// Create creates a task from the submitted form and redirects to the
// listing. Completion always starts false.
func (h *TaskHandler) Create(c echo.Context) error {
	var form TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusBadRequest, "tasks_new", formPage{
			Page:  h.page(c, "Create New Task"),
			Form:  form,
			Error: "Title is required",
		})
	}

	dueDate, err := parseDueDate(form.DueDate)
	if err != nil {
		return c.Render(http.StatusBadRequest, "tasks_new", formPage{
			Page:  h.page(c, "Create New Task"),
			Form:  form,
			Error: "Due date must be a valid date",
		})
	}

	_, err = h.taskService.CreateTask(c.Request().Context(),
		form.Title, optionalText(form.Description), priorityOrDefault(form.Priority), dueDate)
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// Show renders a single task
func (h *TaskHandler) Show(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entities.ErrTaskNotFound
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "tasks_show", taskPage{
		Page: h.page(c, task.Title),
		Task: task,
	})
}

// EditForm renders the edit form for an existing task
func (h *TaskHandler) EditForm(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entities.ErrTaskNotFound
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "tasks_edit", formPage{
		Page: h.page(c, "Edit: "+task.Title),
		Task: task,
		Form: formFromTask(task),
	})
}

// Update replaces a task's fields from the submitted form and redirects
// to the task page.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entities.ErrTaskNotFound
	}

	var form TaskForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	if err := c.Validate(&form); err != nil {
		task, getErr := h.taskService.GetTask(c.Request().Context(), id)
		if getErr != nil {
			return getErr
		}
		return c.Render(http.StatusBadRequest, "tasks_edit", formPage{
			Page:  h.page(c, "Edit: "+task.Title),
			Task:  task,
			Form:  form,
			Error: "Title is required",
		})
	}

	dueDate, err := parseDueDate(form.DueDate)
	if err != nil {
		task, getErr := h.taskService.GetTask(c.Request().Context(), id)
		if getErr != nil {
			return getErr
		}
		return c.Render(http.StatusBadRequest, "tasks_edit", formPage{
			Page:  h.page(c, "Edit: "+task.Title),
			Task:  task,
			Form:  form,
			Error: "Due date must be a valid date",
		})
	}

	_, err = h.taskService.UpdateTask(c.Request().Context(), id,
		form.Title, optionalText(form.Description), priorityOrDefault(form.Priority),
		checkboxChecked(form.Completed), dueDate)
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/tasks/"+id.String())
}

// Delete removes a task and redirects to the listing. Deleting an id
// that no longer exists looks the same as success.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entities.ErrTaskNotFound
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// Toggle flips a task's completion and sends the browser back where it
// came from, falling back to the listing.
func (h *TaskHandler) Toggle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return entities.ErrTaskNotFound
	}

	if _, err := h.taskService.ToggleTask(c.Request().Context(), id); err != nil {
		return err
	}

	redirectURL := c.Request().Referer()
	if redirectURL == "" {
		redirectURL = "/tasks"
	}

	return c.Redirect(http.StatusSeeOther, redirectURL)
}

// Home redirects the root path to the listing
func (h *TaskHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/tasks")
}

// IsNotFound reports whether err should surface as a 404 page rather
// than a server fault.
func IsNotFound(err error) bool {
	return errors.Is(err, entities.ErrTaskNotFound)
}
