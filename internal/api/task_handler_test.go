package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/mocks"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedTaskID = "6610a1b2c3d4e5f601234567"
	fixedTime   = time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
)

// newTestRouter mounts a TaskHandler backed by svc the same way the server does.
func newTestRouter(svc *mocks.MockTaskService) http.Handler {
	h := NewTaskHandler(svc, slog.Default())

	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Patch("/{id}/toggle", h.ToggleTask)
		r.Delete("/{id}", h.DeleteTask)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNewTaskHandler_PanicsOnNilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, slog.Default()) })
	assert.Panics(t, func() { NewTaskHandler(&mocks.MockTaskService{}, nil) })
}

func TestTaskHandler_ListTasks(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockTaskService)
		expectedStatus int
		expectedLen    int
		expectedErrMsg string
	}{
		{
			name:           "empty_list_is_json_array",
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "tasks_returned_in_service_order",
			setupMock: func(ms *mocks.MockTaskService) {
				ms.ListTasksFn = func(ctx context.Context) ([]*domain.Task, error) {
					return []*domain.Task{
						{ID: "b", Text: "newer", CreatedAt: fixedTime.Add(time.Minute)},
						{ID: "a", Text: "older", Completed: true, CreatedAt: fixedTime},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "store_unavailable",
			setupMock: func(ms *mocks.MockTaskService) {
				ms.ListTasksFn = func(ctx context.Context) ([]*domain.Task, error) {
					return nil, &service.TaskServiceError{
						Operation: "list_tasks",
						Message:   "failed to list tasks",
						Err:       store.ErrUnavailable,
					}
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Failed to list tasks",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := &mocks.MockTaskService{}
			tc.setupMock(ms)

			w := doRequest(t, newTestRouter(ms), http.MethodGet, "/api/tasks", nil)
			assert.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w).Error)
				return
			}

			assert.True(t, strings.HasPrefix(strings.TrimSpace(w.Body.String()), "["))
			var resp []TaskResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp, tc.expectedLen)
			if tc.expectedLen == 2 {
				assert.Equal(t, "b", resp[0].ID)
				assert.Equal(t, "a", resp[1].ID)
				assert.True(t, resp[1].Completed)
			}
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockTaskService)
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name:        "successful_creation",
			requestBody: CreateTaskRequest{Text: "buy milk"},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, text string) (*domain.Task, error) {
					return &domain.Task{ID: fixedTaskID, Text: text, CreatedAt: fixedTime}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_text",
			requestBody:    map[string]interface{}{},
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "text is required",
		},
		{
			name:           "text_wrong_type",
			requestBody:    `{"text": 42}`,
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "body must be a valid JSON object",
		},
		{
			name:           "malformed_json",
			requestBody:    `{"text": "buy milk"`,
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "body must be a valid JSON object",
		},
		{
			name:           "trailing_json_value",
			requestBody:    `{"text": "a"} {"text": "b"}`,
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "body must contain a single JSON object",
		},
		{
			name:        "whitespace_text_rejected_by_service",
			requestBody: CreateTaskRequest{Text: "   "},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, text string) (*domain.Task, error) {
					return nil, domain.NewValidationError("text", "cannot be empty", domain.ErrEmptyTaskText)
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "text cannot be empty",
		},
		{
			name:        "store_failure",
			requestBody: CreateTaskRequest{Text: "buy milk"},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.CreateTaskFn = func(ctx context.Context, text string) (*domain.Task, error) {
					return nil, service.NewTaskServiceError("create_task", "failed to save task",
						fmt.Errorf("%w: mongodb://admin:hunter2@db:27017 refused", store.ErrUnavailable))
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Failed to create task",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := &mocks.MockTaskService{}
			tc.setupMock(ms)

			w := doRequest(t, newTestRouter(ms), http.MethodPost, "/api/tasks", tc.requestBody)
			assert.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedErrMsg != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tc.expectedErrMsg, resp.Error)
				assert.NotContains(t, w.Body.String(), "hunter2")
				return
			}

			var resp TaskResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, fixedTaskID, resp.ID)
			assert.Equal(t, "buy milk", resp.Text)
			assert.False(t, resp.Completed)
			assert.True(t, fixedTime.Equal(resp.CreatedAt))
		})
	}
}

func TestTaskHandler_TaskJSONShape(t *testing.T) {
	ms := &mocks.MockTaskService{
		GetTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
			return &domain.Task{ID: id, Text: "buy milk", CreatedAt: fixedTime}, nil
		},
	}

	w := doRequest(t, newTestRouter(ms), http.MethodGet, "/api/tasks/"+fixedTaskID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Len(t, raw, 4)
	assert.Equal(t, fixedTaskID, raw["id"])
	assert.Equal(t, "buy milk", raw["text"])
	assert.Equal(t, false, raw["completed"])
	assert.Equal(t, "2025-04-01T12:00:00Z", raw["createdAt"])
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		requestBody    interface{}
		setupMock      func(*mocks.MockTaskService)
		expectedStatus int
		expectedErrMsg string
	}{
		{
			name:        "successful_update",
			path:        "/api/tasks/" + fixedTaskID,
			requestBody: UpdateTaskRequest{Text: "buy oat milk"},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.UpdateTaskTextFn = func(ctx context.Context, id string, text string) (*domain.Task, error) {
					return &domain.Task{ID: id, Text: text, Completed: true, CreatedAt: fixedTime}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "completed_in_body_is_ignored",
			path:        "/api/tasks/" + fixedTaskID,
			requestBody: `{"text": "buy oat milk", "completed": false}`,
			setupMock: func(ms *mocks.MockTaskService) {
				ms.UpdateTaskTextFn = func(ctx context.Context, id string, text string) (*domain.Task, error) {
					return &domain.Task{ID: id, Text: text, Completed: true, CreatedAt: fixedTime}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "task_not_found",
			path:        "/api/tasks/missing",
			requestBody: UpdateTaskRequest{Text: "x"},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.UpdateTaskTextFn = func(ctx context.Context, id string, text string) (*domain.Task, error) {
					return nil, service.ErrTaskNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedErrMsg: "Task not found",
		},
		{
			name:           "missing_text",
			path:           "/api/tasks/" + fixedTaskID,
			requestBody:    `{}`,
			setupMock:      func(ms *mocks.MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "text is required",
		},
		{
			name:        "text_too_long",
			path:        "/api/tasks/" + fixedTaskID,
			requestBody: UpdateTaskRequest{Text: strings.Repeat("x", domain.MaxTaskTextLength+1)},
			setupMock: func(ms *mocks.MockTaskService) {
				ms.UpdateTaskTextFn = func(ctx context.Context, id string, text string) (*domain.Task, error) {
					_, err := domain.NormalizeTaskText(text)
					return nil, err
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "text must be at most 500 characters",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := &mocks.MockTaskService{}
			tc.setupMock(ms)

			w := doRequest(t, newTestRouter(ms), http.MethodPut, tc.path, tc.requestBody)
			assert.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w).Error)
				return
			}

			var resp TaskResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "buy oat milk", resp.Text)
			assert.True(t, resp.Completed)
		})
	}
}

func TestTaskHandler_ToggleTask(t *testing.T) {
	t.Run("flips_completed", func(t *testing.T) {
		var gotID string
		ms := &mocks.MockTaskService{
			ToggleTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				gotID = id
				return &domain.Task{ID: id, Text: "buy milk", Completed: true, CreatedAt: fixedTime}, nil
			},
		}

		w := doRequest(t, newTestRouter(ms), http.MethodPatch, "/api/tasks/"+fixedTaskID+"/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, fixedTaskID, gotID)

		var resp TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Completed)
	})

	t.Run("path_id_passed_through_unchanged", func(t *testing.T) {
		var gotID string
		ms := &mocks.MockTaskService{
			ToggleTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				gotID = id
				return nil, service.ErrTaskNotFound
			},
		}

		w := doRequest(t, newTestRouter(ms), http.MethodPatch, "/api/tasks/%20"+fixedTaskID+"/toggle", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, " "+fixedTaskID, gotID)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &mocks.MockTaskService{
			ToggleTaskFn: func(ctx context.Context, id string) (*domain.Task, error) {
				return nil, service.ErrTaskNotFound
			},
		}

		w := doRequest(t, newTestRouter(ms), http.MethodPatch, "/api/tasks/nope/toggle", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", decodeError(t, w).Error)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		ms := &mocks.MockTaskService{}

		w := doRequest(t, newTestRouter(ms), http.MethodDelete, "/api/tasks/"+fixedTaskID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp shared.MessageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Task deleted", resp.Message)
	})

	t.Run("not_found", func(t *testing.T) {
		ms := &mocks.MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id string) error {
				return service.ErrTaskNotFound
			},
		}

		w := doRequest(t, newTestRouter(ms), http.MethodDelete, "/api/tasks/"+fixedTaskID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store_unavailable", func(t *testing.T) {
		ms := &mocks.MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id string) error {
				return service.NewTaskServiceError("delete_task", "failed to delete task", store.ErrUnavailable)
			},
		}

		w := doRequest(t, newTestRouter(ms), http.MethodDelete, "/api/tasks/"+fixedTaskID, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to delete task", decodeError(t, w).Error)
	})
}

func TestTaskHandler_OverServiceAndStore(t *testing.T) {
	svc, err := service.NewTaskService(mocks.NewMockTaskStore(), slog.Default())
	require.NoError(t, err)
	h := NewTaskHandler(svc, slog.Default())

	r := chi.NewRouter()
	r.Post("/api/tasks", h.CreateTask)
	r.Get("/api/tasks/{id}", h.GetTask)
	r.Delete("/api/tasks/{id}", h.DeleteTask)

	w := doRequest(t, r, http.MethodPost, "/api/tasks", CreateTaskRequest{Text: "  buy milk "})
	require.Equal(t, http.StatusCreated, w.Code)
	var created TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "buy milk", created.Text)

	w = doRequest(t, r, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
