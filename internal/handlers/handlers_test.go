package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/handlers"
	"taskboard/internal/handlers/dto"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/service"
	"taskboard/internal/tasklist"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskService) GetAll(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, id int64) (task.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, data task.NewTask) (task.Task, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskService) GetByCategory(ctx context.Context, categoryID int64) ([]task.Task, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskService) GetByStatus(ctx context.Context, completed bool) ([]task.Task, error) {
	args := m.Called(ctx, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskService) GetByPriority(ctx context.Context, priority task.Priority) ([]task.Task, error) {
	args := m.Called(ctx, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

// MockCategoryService - мок сервиса категорий
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetAll(ctx context.Context) ([]category.View, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.View), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id int64) (category.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(category.View), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, data category.NewCategory) (category.View, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(category.View), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, patch category.Patch) (category.View, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(category.View), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBoard - мок панели
type MockBoard struct {
	mock.Mock
}

func (m *MockBoard) Snapshot(ctx context.Context) (dashboard.View, error) {
	args := m.Called(ctx)
	return args.Get(0).(dashboard.View), args.Error(1)
}

func (m *MockBoard) SelectCategory(id *int64) {
	m.Called(id)
}

func (m *MockBoard) SetSearch(q string) {
	m.Called(q)
}

func (m *MockBoard) SetFilter(f tasklist.Filter) {
	m.Called(f)
}

func (m *MockBoard) AddTask(ctx context.Context, q dashboard.QuickAdd) (task.Task, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockBoard) ToggleComplete(ctx context.Context, id int64) (task.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockBoard) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoard) Edit(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockBoard) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var (
	_ handlers.TaskService     = (*MockTaskService)(nil)
	_ handlers.CategoryService = (*MockCategoryService)(nil)
	_ handlers.Board           = (*MockBoard)(nil)
)

type mocks struct {
	tasks      *MockTaskService
	categories *MockCategoryService
	board      *MockBoard
}

func newRouter(m mocks) http.Handler {
	th := handlers.NewTaskHandler(m.tasks, m.board)
	ch := handlers.NewCategoryHandler(m.categories, m.tasks, m.board)
	dh := handlers.NewDashboardHandler(m.board, m.tasks)

	r := chi.NewRouter()
	handlers.Routes(r, &th, &ch, &dh)
	return r
}

func newMocks() mocks {
	return mocks{
		tasks:      new(MockTaskService),
		categories: new(MockCategoryService),
		board:      new(MockBoard),
	}
}

func (m mocks) assert(t *testing.T) {
	m.tasks.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.board.AssertExpectations(t)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func seedTasks() []task.Task {
	work := int64(1)
	return []task.Task{
		{ID: 1, Title: "Buy milk", Priority: task.PriorityMedium, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Walk dog", Priority: task.PriorityLow, Completed: true, CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Report", CategoryID: &work, Priority: task.PriorityHigh, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

// TestTaskHandler_HealthCheck тестирует HealthCheck
func TestTaskHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "success - healthy",
			setupMock: func(m *MockTaskService) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - unhealthy",
			setupMock: func(m *MockTaskService) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("service unavailable"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMock(m.tasks)

			w := do(newRouter(m), "GET", "/health", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), "taskboard")
			m.assert(t)
		})
	}
}

// TestTaskHandler_GetTasks тестирует фильтрацию и сортировку списка
func TestTaskHandler_GetTasks(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedIDs    []int64
		expectEmpty    string
	}{
		{
			name:           "success - default filters",
			query:          "",
			setupMock:      func(m *MockTaskService) { m.On("GetAll", mock.Anything).Return(seedTasks(), nil) },
			expectedStatus: http.StatusOK,
			expectedIDs:    []int64{1, 3, 2},
		},
		{
			name:           "success - search any case",
			query:          "?search=MILK",
			setupMock:      func(m *MockTaskService) { m.On("GetAll", mock.Anything).Return(seedTasks(), nil) },
			expectedStatus: http.StatusOK,
			expectedIDs:    []int64{1},
		},
		{
			name:           "success - category and priority",
			query:          "?category=1&priority=high&status=active",
			setupMock:      func(m *MockTaskService) { m.On("GetAll", mock.Anything).Return(seedTasks(), nil) },
			expectedStatus: http.StatusOK,
			expectedIDs:    []int64{3},
		},
		{
			name:           "success - empty result",
			query:          "?search=zebra",
			setupMock:      func(m *MockTaskService) { m.On("GetAll", mock.Anything).Return(seedTasks(), nil) },
			expectedStatus: http.StatusOK,
			expectedIDs:    []int64{},
			expectEmpty:    "No matching tasks",
		},
		{
			name:           "error - invalid status",
			query:          "?status=done",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "error - service failure",
			query: "",
			setupMock: func(m *MockTaskService) {
				m.On("GetAll", mock.Anything).Return(nil, service.NewOperationFailed("Failed to load tasks", errors.New("io")))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMock(m.tasks)

			w := do(newRouter(m), "GET", "/tasks"+tt.query, "")
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var response dto.TaskListResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

				ids := make([]int64, 0, len(response.Tasks))
				for _, tk := range response.Tasks {
					ids = append(ids, tk.ID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
				assert.Equal(t, len(tt.expectedIDs), response.Total)
				if tt.expectEmpty != "" {
					require.NotNil(t, response.Empty)
					assert.Equal(t, tt.expectEmpty, response.Empty.Title)
				}
			}
			m.assert(t)
		})
	}
}

// TestTaskHandler_PostTask тестирует создание задачи
func TestTaskHandler_PostTask(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		contentType    string
		setupMock      func(mocks)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:        "success - create task",
			requestBody: `{"title":"Test Task","priority":"high","categoryId":1}`,
			contentType: "application/json",
			setupMock: func(m mocks) {
				m.tasks.On("Create", mock.Anything, mock.MatchedBy(func(n task.NewTask) bool {
					return n.Title == "Test Task" && n.Priority == task.PriorityHigh && n.CategoryID != nil && *n.CategoryID == 1
				})).Return(task.Task{ID: 12, Title: "Test Task", Priority: task.PriorityHigh}, nil)
				m.board.On("Refresh", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error - invalid content type",
			requestBody:    `{}`,
			contentType:    "text/plain",
			setupMock:      func(m mocks) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "error - invalid JSON",
			requestBody:    `{invalid json}`,
			contentType:    "application/json",
			setupMock:      func(m mocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error - validation",
			requestBody: `{"title":""}`,
			contentType: "application/json",
			setupMock: func(m mocks) {
				m.tasks.On("Create", mock.Anything, mock.Anything).
					Return(task.Task{}, service.NewValidationError("title", "title must not be empty"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name:        "error - unknown category",
			requestBody: `{"title":"x","categoryId":42}`,
			contentType: "application/json",
			setupMock: func(m mocks) {
				m.tasks.On("Create", mock.Anything, mock.Anything).
					Return(task.Task{}, service.NewNotFound(service.ResourceCategory, 42))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   service.CodeNotFound,
		},
		{
			name:        "error - service error",
			requestBody: `{"title":"x"}`,
			contentType: "application/json",
			setupMock: func(m mocks) {
				m.tasks.On("Create", mock.Anything, mock.Anything).Return(task.Task{}, errors.New("service error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   service.CodeOperationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMock(m)

			req := httptest.NewRequest("POST", "/tasks", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()
			newRouter(m).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var response task.Task
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, "Test Task", response.Title)
				assert.Equal(t, int64(12), response.ID)
			}
			if tt.expectedCode != "" {
				var body errorBody
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Error)
				assert.NotEmpty(t, body.Message)
			}
			m.assert(t)
		})
	}
}

// TestTaskHandler_GetTaskByID тестирует получение задачи по ID
func TestTaskHandler_GetTaskByID(t *testing.T) {
	tests := []struct {
		name           string
		taskID         string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name:   "success - get task",
			taskID: "6",
			setupMock: func(m *MockTaskService) {
				m.On("GetByID", mock.Anything, int64(6)).Return(task.Task{ID: 6, Title: "Buy milk"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - invalid id",
			taskID:         "abc",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - non positive id",
			taskID:         "0",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "error - task not found",
			taskID: "99",
			setupMock: func(m *MockTaskService) {
				m.On("GetByID", mock.Anything, int64(99)).Return(task.Task{}, service.NewNotFound(service.ResourceTask, 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMock(m.tasks)

			w := do(newRouter(m), "GET", "/tasks/"+tt.taskID, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusNotFound {
				var body errorBody
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, "Task not found", body.Message)
				assert.Equal(t, "Task", body.Details["resource"])
			}
			m.assert(t)
		})
	}
}

// TestTaskHandler_PatchTask тестирует частичное обновление
func TestTaskHandler_PatchTask(t *testing.T) {
	m := newMocks()
	m.tasks.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p task.Patch) bool {
		return p.Title != nil && *p.Title == "New" && p.CategoryID.Set && p.CategoryID.Value == nil
	})).Return(task.Task{ID: 5, Title: "New"}, nil)
	m.board.On("Refresh", mock.Anything).Return(errors.New("reload failed"))

	w := do(newRouter(m), "PATCH", "/tasks/5", `{"Id":100,"title":"New","categoryId":null}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var response task.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, int64(5), response.ID)
	m.assert(t)
}

// TestTaskHandler_Mutations тестирует переключение, удаление и редактирование
func TestTaskHandler_Mutations(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		setupMock      func(*MockBoard)
		expectedStatus int
	}{
		{
			name:   "toggle - success",
			method: "POST",
			path:   "/tasks/6/toggle",
			setupMock: func(m *MockBoard) {
				m.On("ToggleComplete", mock.Anything, int64(6)).Return(task.Task{ID: 6, Completed: true}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "toggle - not found",
			method: "POST",
			path:   "/tasks/99/toggle",
			setupMock: func(m *MockBoard) {
				m.On("ToggleComplete", mock.Anything, int64(99)).Return(task.Task{}, service.NewNotFound(service.ResourceTask, 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "delete - success",
			method: "DELETE",
			path:   "/tasks/6",
			setupMock: func(m *MockBoard) {
				m.On("Delete", mock.Anything, int64(6)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "delete - not found",
			method: "DELETE",
			path:   "/tasks/99",
			setupMock: func(m *MockBoard) {
				m.On("Delete", mock.Anything, int64(99)).Return(service.NewNotFound(service.ResourceTask, 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "edit - not implemented",
			method: "POST",
			path:   "/tasks/6/edit",
			setupMock: func(m *MockBoard) {
				m.On("Edit", int64(6)).Return(tasklist.ErrEditNotImplemented)
			},
			expectedStatus: http.StatusNotImplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMock(m.board)

			w := do(newRouter(m), tt.method, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			m.assert(t)
		})
	}
}

// TestTaskHandler_ByStatusAndPriority тестирует выборки по статусу и приоритету
func TestTaskHandler_ByStatusAndPriority(t *testing.T) {
	m := newMocks()
	m.tasks.On("GetByStatus", mock.Anything, true).Return([]task.Task{{ID: 2, Completed: true}}, nil)
	m.tasks.On("GetByPriority", mock.Anything, task.PriorityHigh).Return([]task.Task{{ID: 3}}, nil)
	m.tasks.On("GetByPriority", mock.Anything, task.Priority("urgent")).
		Return(nil, service.NewValidationError("priority", "must be one of low, medium, high"))
	router := newRouter(m)

	assert.Equal(t, http.StatusOK, do(router, "GET", "/tasks/status/completed", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, "GET", "/tasks/status/all", "").Code)
	assert.Equal(t, http.StatusOK, do(router, "GET", "/tasks/priority/high", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, "GET", "/tasks/priority/urgent", "").Code)
	m.assert(t)
}

// TestCategoryHandler тестирует операции с категориями
func TestCategoryHandler(t *testing.T) {
	t.Run("list with counts", func(t *testing.T) {
		m := newMocks()
		m.categories.On("GetAll", mock.Anything).Return([]category.View{
			category.WithCount(category.Category{ID: 1, Name: "Work"}, 2),
		}, nil)

		w := do(newRouter(m), "GET", "/categories", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"Id":1,"name":"Work","color":"","icon":"","taskCount":2}]`, w.Body.String())
		m.assert(t)
	})

	t.Run("delete conflict", func(t *testing.T) {
		m := newMocks()
		m.categories.On("Delete", mock.Anything, int64(1)).
			Return(service.NewConflict("Cannot delete category with existing tasks"))

		w := do(newRouter(m), "DELETE", "/categories/1", "")

		assert.Equal(t, http.StatusConflict, w.Code)
		var body errorBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, service.CodeConflict, body.Error)
		assert.Equal(t, "Cannot delete category with existing tasks", body.Message)
		m.assert(t)
	})

	t.Run("delete success refreshes board", func(t *testing.T) {
		m := newMocks()
		m.categories.On("Delete", mock.Anything, int64(5)).Return(nil)
		m.board.On("Refresh", mock.Anything).Return(nil)

		w := do(newRouter(m), "DELETE", "/categories/5", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		m.assert(t)
	})

	t.Run("create", func(t *testing.T) {
		m := newMocks()
		m.categories.On("Create", mock.Anything, category.NewCategory{Name: "Travel", Color: "#000", Icon: "Plane"}).
			Return(category.WithCount(category.Category{ID: 6, Name: "Travel"}, 0), nil)
		m.board.On("Refresh", mock.Anything).Return(nil)

		w := do(newRouter(m), "POST", "/categories", `{"name":"Travel","color":"#000","icon":"Plane"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		m.assert(t)
	})

	t.Run("tasks of missing category", func(t *testing.T) {
		m := newMocks()
		m.categories.On("GetByID", mock.Anything, int64(9)).
			Return(category.View{}, service.NewNotFound(service.ResourceCategory, 9))

		w := do(newRouter(m), "GET", "/categories/9/tasks", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		m.tasks.AssertNotCalled(t, "GetByCategory", mock.Anything, mock.Anything)
	})

	t.Run("tasks of category", func(t *testing.T) {
		m := newMocks()
		m.categories.On("GetByID", mock.Anything, int64(1)).Return(category.View{}, nil)
		m.tasks.On("GetByCategory", mock.Anything, int64(1)).Return([]task.Task{{ID: 3}}, nil)

		w := do(newRouter(m), "GET", "/categories/1/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		m.assert(t)
	})
}

// TestDashboardHandler тестирует операции панели
func TestDashboardHandler(t *testing.T) {
	t.Run("select category", func(t *testing.T) {
		m := newMocks()
		m.board.On("SelectCategory", mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 3 })).Return()
		m.board.On("Snapshot", mock.Anything).Return(dashboard.View{RefreshKey: 4}, nil)

		w := do(newRouter(m), "PUT", "/dashboard/category", `{"categoryId":3}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"refreshKey":4`)
		m.assert(t)
	})

	t.Run("clear category", func(t *testing.T) {
		m := newMocks()
		m.board.On("SelectCategory", (*int64)(nil)).Return()
		m.board.On("Snapshot", mock.Anything).Return(dashboard.View{}, nil)

		w := do(newRouter(m), "PUT", "/dashboard/category", `{"categoryId":null}`)

		assert.Equal(t, http.StatusOK, w.Code)
		m.assert(t)
	})

	t.Run("search", func(t *testing.T) {
		m := newMocks()
		m.board.On("SetSearch", "milk").Return()
		m.board.On("Snapshot", mock.Anything).Return(dashboard.View{Search: "milk"}, nil)

		w := do(newRouter(m), "PUT", "/dashboard/search", `{"search":"milk"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		m.assert(t)
	})

	t.Run("invalid filter", func(t *testing.T) {
		m := newMocks()

		w := do(newRouter(m), "PUT", "/dashboard/filter", `{"priority":"urgent"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.assert(t)
	})

	t.Run("quick add", func(t *testing.T) {
		m := newMocks()
		m.board.On("AddTask", mock.Anything, dashboard.QuickAdd{Title: "Water plants"}).
			Return(task.Task{ID: 12, Title: "Water plants"}, nil)

		w := do(newRouter(m), "POST", "/dashboard/tasks", `{"title":"Water plants"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		m.assert(t)
	})

	t.Run("quick add empty title", func(t *testing.T) {
		m := newMocks()
		m.board.On("AddTask", mock.Anything, mock.Anything).Return(task.Task{}, dashboard.ErrTitleRequired)

		w := do(newRouter(m), "POST", "/dashboard/tasks", `{"title":" "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("quick add failure", func(t *testing.T) {
		m := newMocks()
		m.board.On("AddTask", mock.Anything, mock.Anything).
			Return(task.Task{}, fmt.Errorf("%w: %w", dashboard.ErrCreateFailed, errors.New("io")))

		w := do(newRouter(m), "POST", "/dashboard/tasks", `{"title":"x"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body errorBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Failed to create task", body.Message)
	})

	t.Run("stats", func(t *testing.T) {
		m := newMocks()
		m.tasks.On("GetAll", mock.Anything).Return(seedTasks(), nil)

		w := do(newRouter(m), "GET", "/stats", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.EqualValues(t, 2, body["totalActive"])
		assert.EqualValues(t, 1, body["totalCompleted"])
		assert.Len(t, body["week"], 7)
		m.assert(t)
	})
}
