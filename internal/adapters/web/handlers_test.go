package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard/internal/adapters/web/view"
	"github.com/taskboard/taskboard/internal/application/services"
	"github.com/taskboard/taskboard/internal/domain/entities"
	"github.com/taskboard/taskboard/internal/infrastructure/logger"
	"github.com/taskboard/taskboard/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// fakeTaskRepo is a minimal in-memory TaskRepository for handler tests.
type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entities.Task
	order []uuid.UUID
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	r.tasks[task.ID] = &clone
	r.order = append(r.order, task.ID)
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	matched := []*entities.Task{}
	for _, id := range r.order {
		if task, ok := r.tasks[id]; ok {
			matched = append(matched, task)
		}
	}
	if filter.Offset >= len(matched) {
		return []*entities.Task{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *fakeTaskRepo) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	return int64(len(r.tasks)), nil
}

func newTestHandler(t *testing.T) (*echo.Echo, *TaskHandler, *fakeTaskRepo) {
	t.Helper()

	e := echo.New()
	renderer, err := view.NewRenderer("../../../web/templates")
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	e.Renderer = renderer
	e.Validator = &testValidator{validator: validator.New()}

	repo := newFakeTaskRepo()
	svc := services.NewTaskService(repo, logger.NewNop())
	h := NewTaskHandler(svc, logger.NewNop())

	return e, h, repo
}

func seedTask(t *testing.T, repo *fakeTaskRepo, title string, priority entities.Priority) *entities.Task {
	t.Helper()
	task := &entities.Task{Title: title, Priority: priority}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestList_RendersTasks(t *testing.T) {
	e, h, repo := newTestHandler(t)
	seedTask(t, repo, "Buy milk", entities.PriorityLow)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Buy milk") {
		t.Error("listing should contain the task title")
	}
	if !strings.Contains(body, "bg-info") {
		t.Error("low priority task should carry the info style")
	}
}

func TestList_PageTwoWindow(t *testing.T) {
	e, h, repo := newTestHandler(t)
	for i := 1; i <= 25; i++ {
		seedTask(t, repo, fmt.Sprintf("task %d", i), entities.PriorityMedium)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks?page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "task 11") || strings.Contains(body, "task 21") {
		t.Error("page 2 should show tasks 11-20")
	}
	for _, link := range []string{"/tasks?page=1", "/tasks?page=3"} {
		if !strings.Contains(body, link) {
			t.Errorf("pagination should link to %s", link)
		}
	}
	if strings.Contains(body, "/tasks?page=4\"") {
		t.Error("window must stop at totalPages")
	}
}

func TestCreate_RedirectsToListing(t *testing.T) {
	e, h, repo := newTestHandler(t)

	form := url.Values{}
	form.Set("title", "Buy milk")
	form.Set("priority", "low")

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/tasks" {
		t.Errorf("Location = %q, want /tasks", loc)
	}

	if len(repo.tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(repo.tasks))
	}
	for _, task := range repo.tasks {
		if task.Completed {
			t.Error("new task must start open")
		}
		if task.Priority != entities.PriorityLow {
			t.Errorf("Priority = %q, want low", task.Priority)
		}
		if task.DueDate != nil {
			t.Error("absent due date must stay nil")
		}
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	e, h, repo := newTestHandler(t)

	form := url.Values{}
	form.Set("priority", "high")

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Title is required") {
		t.Error("form should re-render with the validation message")
	}
	if len(repo.tasks) != 0 {
		t.Error("no task should be created")
	}
}

func TestCreate_InvalidDueDate(t *testing.T) {
	e, h, repo := newTestHandler(t)

	form := url.Values{}
	form.Set("title", "Buy milk")
	form.Set("dueDate", "not-a-date")

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(repo.tasks) != 0 {
		t.Error("no task should be created")
	}
}

func TestShow_UnknownID(t *testing.T) {
	e, h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Show(c)
	if !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestShow_MalformedID(t *testing.T) {
	e, h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Show(c)
	if !IsNotFound(err) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestUpdate_ReplacesAndRedirects(t *testing.T) {
	e, h, repo := newTestHandler(t)
	task := seedTask(t, repo, "old title", entities.PriorityLow)

	form := url.Values{}
	form.Set("title", "new title")
	form.Set("priority", "high")
	form.Set("completed", "on")
	form.Set("dueDate", "2026-09-15")

	req := httptest.NewRequest(http.MethodPut, "/tasks/"+task.ID.String(), strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(task.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/tasks/"+task.ID.String() {
		t.Errorf("Location = %q, want the task page", loc)
	}

	stored := repo.tasks[task.ID]
	if stored.Title != "new title" || stored.Priority != entities.PriorityHigh || !stored.Completed {
		t.Errorf("task not updated: %+v", stored)
	}
	if stored.DueDate == nil || stored.DueDate.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("DueDate = %v, want 2026-09-15", stored.DueDate)
	}
}

func TestUpdate_UncheckedBoxMeansOpen(t *testing.T) {
	e, h, repo := newTestHandler(t)
	task := seedTask(t, repo, "done task", entities.PriorityMedium)
	repo.tasks[task.ID].Completed = true

	// Browsers omit unchecked checkboxes entirely.
	form := url.Values{}
	form.Set("title", "done task")
	form.Set("priority", "medium")

	req := httptest.NewRequest(http.MethodPut, "/tasks/"+task.ID.String(), strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(task.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if repo.tasks[task.ID].Completed {
		t.Error("absent checkbox must clear the completed flag")
	}
}

func TestDelete_Redirects(t *testing.T) {
	e, h, repo := newTestHandler(t)
	task := seedTask(t, repo, "doomed", entities.PriorityMedium)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+task.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/tasks/:id")
	c.SetParamNames("id")
	c.SetParamValues(task.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if _, ok := repo.tasks[task.ID]; ok {
		t.Error("task should be gone")
	}
}

func TestToggle_RedirectsToReferer(t *testing.T) {
	e, h, repo := newTestHandler(t)
	task := seedTask(t, repo, "flip me", entities.PriorityMedium)

	toggle := func(referer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tasks/"+task.ID.String()+"/toggle", nil)
		if referer != "" {
			req.Header.Set("Referer", referer)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/tasks/:id/toggle")
		c.SetParamNames("id")
		c.SetParamValues(task.ID.String())
		if err := h.Toggle(c); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		return rec
	}

	rec := toggle("/tasks?page=2")
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/tasks?page=2" {
		t.Errorf("Location = %q, want the referring page", loc)
	}
	if !repo.tasks[task.ID].Completed {
		t.Error("first toggle should complete the task")
	}

	rec = toggle("")
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/tasks" {
		t.Errorf("Location = %q, want /tasks fallback", loc)
	}
	if repo.tasks[task.ID].Completed {
		t.Error("second toggle should reopen the task")
	}
}

func TestHome_RedirectsToTasks(t *testing.T) {
	e, h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Home(c); err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/tasks" {
		t.Errorf("Location = %q, want /tasks", loc)
	}
}
