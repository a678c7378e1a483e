package handlers

import (
	"errors"
	"net/http"
	"time"

	"taskboard/internal/dashboard"
	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/stats"
	"taskboard/internal/tasklist"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	Board       Board
	TaskService TaskService
	now         func() time.Time
}

func NewDashboardHandler(board Board, tasks TaskService) DashboardHandler {
	return DashboardHandler{
		Board:       board,
		TaskService: tasks,
		now:         time.Now,
	}
}

func (s *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	view, err := s.Board.Snapshot(r.Context())
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load tasks. Please try again.")
		return
	}
	responseWithJSON(w, http.StatusOK, view)
}

// GetStats пересчитывает статистику по всем задачам на каждый запрос
func (s *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, err := s.TaskService.GetAll(r.Context())
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load stats")
		return
	}
	responseWithJSON(w, http.StatusOK, stats.Compute(tasks, s.now()))
}

func (s *DashboardHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.SelectCategoryRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	s.Board.SelectCategory(request.CategoryID)
	s.GetDashboard(w, r)
}

func (s *DashboardHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.SearchRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	s.Board.SetSearch(request.Search)
	s.GetDashboard(w, r)
}

func (s *DashboardHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.FilterRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	filter, err := tasklist.ParseFilter(request.Status, request.Category, request.Priority)
	if err != nil {
		responseWithError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	s.Board.SetFilter(filter)
	s.GetDashboard(w, r)
}

func (s *DashboardHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dashboard.QuickAdd
	if !decodeJSON(w, r, &request) {
		return
	}

	created, err := s.Board.AddTask(r.Context(), request)
	if err != nil {
		if errors.Is(err, dashboard.ErrTitleRequired) {
			responseWithError(w, http.StatusBadRequest, codeBadRequest, "название не может быть пустым")
			return
		}
		handleBusinessError(w, r, err, "Failed to create task")
		return
	}

	logger.Info("HTTP_OUT: Задача добавлена с панели",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}
