package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/models/category"

	"go.uber.org/zap"
)

type CategoryHandler struct {
	CategoryService CategoryService
	TaskService     TaskService
	Board           Board
}

func NewCategoryHandler(categories CategoryService, tasks TaskService, board Board) CategoryHandler {
	return CategoryHandler{
		CategoryService: categories,
		TaskService:     tasks,
		Board:           board,
	}
}

func (s *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	categories, err := s.CategoryService.GetAll(r.Context())
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load categories")
		return
	}
	responseWithJSON(w, http.StatusOK, categories)
}

func (s *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := s.CategoryService.GetByID(r.Context(), id)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load category")
		return
	}
	responseWithJSON(w, http.StatusOK, c)
}

func (s *CategoryHandler) PostCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request category.NewCategory
	if !decodeJSON(w, r, &request) {
		return
	}

	created, err := s.CategoryService.Create(r.Context(), request)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to create category")
		return
	}
	s.refresh(r)

	logger.Info("HTTP_OUT: Категория создана",
		zap.Int64("category_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (s *CategoryHandler) PatchCategory(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var patch category.Patch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := s.CategoryService.Update(r.Context(), id, patch)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to update category")
		return
	}
	s.refresh(r)

	responseWithJSON(w, http.StatusOK, updated)
}

func (s *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := s.CategoryService.Delete(r.Context(), id); err != nil {
		handleBusinessError(w, r, err, "Failed to delete category")
		return
	}
	s.refresh(r)

	logger.Info("HTTP_OUT: Категория удалена",
		zap.Int64("category_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

func (s *CategoryHandler) GetCategoryTasks(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := s.CategoryService.GetByID(r.Context(), id); err != nil {
		handleBusinessError(w, r, err, "Failed to load category")
		return
	}

	tasks, err := s.TaskService.GetByCategory(r.Context(), id)
	if err != nil {
		handleBusinessError(w, r, err, "Failed to load tasks")
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, ""))
}

func (s *CategoryHandler) refresh(r *http.Request) {
	if err := s.Board.Refresh(r.Context()); err != nil {
		logger.Warn("HTTP: Панель не обновлена", zap.Error(err))
	}
}
