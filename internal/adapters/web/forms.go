package web

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/application/services"
	"github.com/taskboard/taskboard/internal/domain/entities"
)

// TaskForm is the create/edit form body. Completed only appears on the
// edit form and arrives as a browser checkbox value.
type TaskForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description"`
	Priority    string `form:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `form:"dueDate"`
	Completed   string `form:"completed"`
}

// formFromTask pre-populates the edit form with a task's current state.
func formFromTask(task *entities.Task) TaskForm {
	form := TaskForm{
		Title:    task.Title,
		Priority: string(task.Priority),
	}
	if task.Description != nil {
		form.Description = *task.Description
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.Format("2006-01-02")
	}
	if task.Completed {
		form.Completed = "on"
	}
	return form
}

// checkboxChecked converts a browser checkbox value to a bool. Checked
// boxes submit "on"; anything else, including absence, means unchecked.
// The rest of the code only ever sees the bool.
func checkboxChecked(value string) bool {
	return value == "on"
}

// priorityOrDefault maps the submitted priority string to the enum,
// defaulting to medium when the field is empty.
func priorityOrDefault(s string) entities.Priority {
	if s == "" {
		return entities.PriorityMedium
	}
	return entities.Priority(s)
}

// parseDueDate normalizes the optional date field: empty means no
// deadline, otherwise the value must be an ISO date.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q", s)
	}
	return &t, nil
}

// optionalText returns nil for an empty description so the column stays
// NULL instead of holding empty strings.
func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseListParams extracts the listing parameters from the query string.
// Absent or malformed numbers fall back to the defaults; out-of-range
// values are clamped by the service.
func parseListParams(c echo.Context) services.ListTasksRequest {
	req := services.ListTasksRequest{
		SortBy:          c.QueryParam("sortBy"),
		SortOrder:       c.QueryParam("sortOrder"),
		FilterCompleted: c.QueryParam("filterCompleted"),
		FilterPriority:  c.QueryParam("filterPriority"),
	}

	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		req.Limit = limit
	}

	return req
}
