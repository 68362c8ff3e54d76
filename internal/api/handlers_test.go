package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test_tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := service.NewTaskService(repository.NewTaskRepository(db), repository.NewCategoryRepository(db))
	return &testServer{handler: NewServer(svc).Handler()}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestListTasks_Empty(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateTask(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/tasks", map[string]string{
		"title":       "test1st tasks",
		"description": "test1st description",
		"priority":    "High",
		"due_date":    "test1st due_date",
		"category":    "test1st category",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	decode(t, w, &resp)
	assert.Contains(t, resp["message"], "Task created successfully")
	assert.EqualValues(t, 1, resp["id"])
}

func TestCreateTask_Defaults(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "bare"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodGet, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var task model.Task
	decode(t, w, &task)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.StatusPending, task.Status)

	w = ts.do(t, http.MethodGet, "/api/categories", nil)
	var categories []model.Category
	decode(t, w, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, service.DefaultCategory, categories[0].Name)
	assert.Equal(t, categories[0].ID, task.CategoryID)
}

func TestCreateTask_Rejected(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"category": "Work"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "x", "priority": "Urgent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	assert.Contains(t, resp["error"], "constraint violation")
}

func TestGetTask(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "Old Title", "category": "Work"})

	w := ts.do(t, http.MethodGet, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var task model.Task
	decode(t, w, &task)
	assert.Equal(t, uint(1), task.ID)
	assert.Equal(t, "Old Title", task.Title)
}

func TestGetTask_Missing(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/tasks/400", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	assert.Contains(t, resp, "error")

	w = ts.do(t, http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "Old Title", "category": "Work"})

	w := ts.do(t, http.MethodPut, "/api/tasks/1", map[string]string{
		"title":  "New Title",
		"status": "Completed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/tasks/1", nil)
	var task model.Task
	decode(t, w, &task)
	assert.Equal(t, "New Title", task.Title)
	assert.Equal(t, model.StatusCompleted, task.Status)
}

func TestUpdateTask_Errors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPut, "/api/tasks/400", map[string]string{"title": "Old Title"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "t"})

	w = ts.do(t, http.MethodPut, "/api/tasks/1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/tasks/1", map[string]string{"status": "Done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTask(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "Old Title", "category": "Work"})

	w := ts.do(t, http.MethodDelete, "/api/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	decode(t, w, &resp)
	assert.Contains(t, resp, "message")

	w = ts.do(t, http.MethodGet, "/api/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/tasks/400", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveTask(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "t", "category": "Inbox"})

	w := ts.do(t, http.MethodPut, "/api/tasks/1/category", map[string]string{"category": "Projects"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPut, "/api/tasks/99/category", map[string]string{"category": "Nowhere"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/api/tasks/1/category", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/categories", nil)
	var categories []model.Category
	decode(t, w, &categories)
	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Inbox", "Projects"}, names)
}

func TestStatusCounts(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 4; i++ {
		ts.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "t"})
	}
	ts.do(t, http.MethodPut, "/api/tasks/4", map[string]string{"status": "Completed"})

	w := ts.do(t, http.MethodGet, "/api/stats/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Pending":3,"Completed":1}`, w.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/tasks", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
