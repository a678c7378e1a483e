package handlers

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	"taskboard/internal/tasklist"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "taskboard"

type TaskHandler struct {
	TaskService TaskService
	Board       Board
}

func NewTaskHandler(taskService TaskService, board Board) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		Board:       board,
	}
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Service: serviceName})
		return
	}
	responseWithJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName})
}

// GetTasks отдаёт отфильтрованный и отсортированный список
func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	q := r.URL.Query()
	filter, err := tasklist.ParseFilter(q.Get("status"), q.Get("category"), q.Get("priority"))
	if err != nil {
		logger.Warn("HTTP: Неверное значение фильтра",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	tasks, err := s.TaskService.GetAll(r.Context())
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load tasks")
		return
	}

	search := q.Get("search")
	visible := tasklist.Apply(tasks, search, filter)

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(visible)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(visible, search))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request task.NewTask
	if !decodeJSON(w, r, &request) {
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задачи")
	created, err := s.TaskService.Create(r.Context(), request)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to create task")
		return
	}
	s.refresh(r)

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	t, err := s.TaskService.GetByID(r.Context(), id)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load task")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int64("task_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, t)
}

// PatchTask применяет явный патч; поле Id в теле игнорируется
func (s *TaskHandler) PatchTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var patch task.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := s.TaskService.Update(r.Context(), id, patch)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to update task")
		return
	}
	s.refresh(r)

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, updated)
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.Board.Delete(r.Context(), id); err != nil {
		handleBusinessError(w, r, err, "Failed to delete task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	updated, err := s.Board.ToggleComplete(r.Context(), id)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to update task")
		return
	}

	logger.Info("HTTP_OUT: Задача переключена",
		zap.Int64("task_id", id),
		zap.Bool("completed", updated.Completed),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, updated)
}

func (s *TaskHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.Board.Edit(id); errors.Is(err, tasklist.ErrEditNotImplemented) {
		responseWithError(w, http.StatusNotImplemented, codeNotImplemented, "Edit functionality would open here")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskHandler) GetTasksByStatus(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	status, err := tasklist.ParseStatus(chi.URLParam(r, "status"))
	if err != nil || status == tasklist.StatusAll {
		responseWithError(w, http.StatusBadRequest, codeBadRequest, "status должен быть active или completed")
		return
	}

	tasks, err := s.TaskService.GetByStatus(r.Context(), status == tasklist.StatusCompleted)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load tasks")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, ""))
}

func (s *TaskHandler) GetTasksByPriority(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, err := s.TaskService.GetByPriority(r.Context(), task.Priority(chi.URLParam(r, "priority")))
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load tasks")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, ""))
}

// refresh обновляет панель после мутаций, прошедших мимо неё
func (s *TaskHandler) refresh(r *http.Request) {
	if err := s.Board.Refresh(r.Context()); err != nil {
		logger.Warn("HTTP: Панель не обновлена", zap.Error(err))
	}
}
