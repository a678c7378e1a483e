package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	repo "taskboard/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo       TaskRepository
	categories CategoryRepository
	latency    Latency
}

func NewTaskService(repo TaskRepository, categories CategoryRepository, latency Latency) *TaskService {
	return &TaskService{
		repo:       repo,
		categories: categories,
		latency:    latency,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) GetAll(ctx context.Context) ([]task.Task, error) {
	s.latency.Wait(OpTaskList)

	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения задач", err)
		return nil, NewOperationFailed("Failed to load tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (task.Task, error) {
	s.latency.Wait(OpTaskGet)

	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, s.translate(err, id, "Failed to load task")
	}
	return t, nil
}

func (s *TaskService) Create(ctx context.Context, data task.NewTask) (task.Task, error) {
	s.latency.Wait(OpTaskCreate)

	if strings.TrimSpace(data.Title) == "" {
		return task.Task{}, NewValidationError("title", "title must not be empty")
	}
	if data.Priority != "" && !data.Priority.Valid() {
		return task.Task{}, NewValidationError("priority", "must be one of low, medium, high")
	}
	if err := s.checkCategory(ctx, data.CategoryID); err != nil {
		return task.Task{}, err
	}

	created, err := s.repo.CreateTask(ctx, data.Build(time.Now()))
	if err != nil {
		logger.Error("Service: Ошибка создания задачи", err)
		return task.Task{}, NewOperationFailed("Failed to create task", err)
	}

	logger.Info("Service: Задача создана", zap.Int64("task_id", created.ID))
	return created, nil
}

// Update применяет явный патч. Id задачи патчем не меняется
func (s *TaskService) Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error) {
	s.latency.Wait(OpTaskUpdate)

	if patch.IsEmpty() {
		return task.Task{}, NewValidationError("patch", "nothing to update")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return task.Task{}, NewValidationError("title", "title must not be empty")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return task.Task{}, NewValidationError("priority", "must be one of low, medium, high")
	}
	if patch.CategoryID.Set {
		if err := s.checkCategory(ctx, patch.CategoryID.Value); err != nil {
			return task.Task{}, err
		}
	}

	updated, err := s.repo.UpdateTask(ctx, id, func(t *task.Task) error {
		patch.Apply(t)
		return nil
	})
	if err != nil {
		return task.Task{}, s.translate(err, id, "Failed to update task")
	}

	logger.Info("Service: Задача обновлена", zap.Int64("task_id", id))
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	s.latency.Wait(OpTaskDelete)

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return s.translate(err, id, "Failed to delete task")
	}

	logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) GetByCategory(ctx context.Context, categoryID int64) ([]task.Task, error) {
	return s.filter(ctx, func(t task.Task) bool {
		return t.InCategory(categoryID)
	})
}

func (s *TaskService) GetByStatus(ctx context.Context, completed bool) ([]task.Task, error) {
	return s.filter(ctx, func(t task.Task) bool {
		return t.Completed == completed
	})
}

func (s *TaskService) GetByPriority(ctx context.Context, priority task.Priority) ([]task.Task, error) {
	if !priority.Valid() {
		return nil, NewValidationError("priority", "must be one of low, medium, high")
	}
	return s.filter(ctx, func(t task.Task) bool {
		return t.Priority == priority
	})
}

func (s *TaskService) filter(ctx context.Context, keep func(task.Task) bool) ([]task.Task, error) {
	s.latency.Wait(OpTaskFilter)

	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения задач", err)
		return nil, NewOperationFailed("Failed to load tasks", err)
	}

	res := []task.Task{}
	for _, t := range tasks {
		if keep(t) {
			res = append(res, t)
		}
	}
	return res, nil
}

func (s *TaskService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.GetCategory(ctx, *categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Категория не найдена", zap.Int64("category_id", *categoryID))
			return NewNotFound(ResourceCategory, *categoryID)
		}
		return NewOperationFailed("Failed to load category", err)
	}
	return nil
}

func (s *TaskService) translate(err error, id int64, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
		return NewNotFound(ResourceTask, id)
	}

	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr
	}

	logger.Error("Service: Ошибка хранилища", err, zap.Int64("target_id", id))
	return NewOperationFailed(message, err)
}
