package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	repo "taskboard/internal/repository"

	"go.uber.org/zap"
)

const msgCategoryHasTasks = "Cannot delete category with existing tasks"

// CategoryService отдаёт категории вместе с taskCount, который
// пересчитывается при каждом чтении и нигде не хранится
type CategoryService struct {
	repo    CategoryRepository
	latency Latency
}

func NewCategoryService(repo CategoryRepository, latency Latency) *CategoryService {
	return &CategoryService{
		repo:    repo,
		latency: latency,
	}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]category.View, error) {
	s.latency.Wait(OpCategoryList)

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения категорий", err)
		return nil, NewOperationFailed("Failed to load categories", err)
	}

	counts, err := s.repo.ActiveTaskCounts(ctx)
	if err != nil {
		logger.Error("Service: Ошибка подсчёта задач", err)
		return nil, NewOperationFailed("Failed to load categories", err)
	}

	views := make([]category.View, 0, len(categories))
	for _, c := range categories {
		views = append(views, category.WithCount(c, counts[c.ID]))
	}
	return views, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (category.View, error) {
	s.latency.Wait(OpCategoryGet)

	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return category.View{}, s.translate(err, id, "Failed to load category")
	}
	return s.withCount(ctx, c)
}

func (s *CategoryService) Create(ctx context.Context, data category.NewCategory) (category.View, error) {
	s.latency.Wait(OpCategoryCreate)

	if strings.TrimSpace(data.Name) == "" {
		return category.View{}, NewValidationError("name", "name must not be empty")
	}

	created, err := s.repo.CreateCategory(ctx, data.Build())
	if err != nil {
		logger.Error("Service: Ошибка создания категории", err)
		return category.View{}, NewOperationFailed("Failed to create category", err)
	}

	logger.Info("Service: Категория создана", zap.Int64("category_id", created.ID))
	return category.WithCount(created, 0), nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, patch category.Patch) (category.View, error) {
	s.latency.Wait(OpCategoryUpdate)

	if patch.IsEmpty() {
		return category.View{}, NewValidationError("patch", "nothing to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return category.View{}, NewValidationError("name", "name must not be empty")
	}

	updated, err := s.repo.UpdateCategory(ctx, id, func(c *category.Category) error {
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return category.View{}, s.translate(err, id, "Failed to update category")
	}
	return s.withCount(ctx, updated)
}

// Delete запрещено, пока на категорию ссылается любая задача, выполненная или нет
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	s.latency.Wait(OpCategoryDelete)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repo.ErrHasTasks) {
			logger.Warn("Service: Категория используется задачами", zap.Int64("category_id", id))
			return NewConflict(msgCategoryHasTasks, ToDetail("id", id))
		}
		return s.translate(err, id, "Failed to delete category")
	}

	logger.Info("Service: Категория удалена", zap.Int64("category_id", id))
	return nil
}

func (s *CategoryService) withCount(ctx context.Context, c category.Category) (category.View, error) {
	counts, err := s.repo.ActiveTaskCounts(ctx)
	if err != nil {
		logger.Error("Service: Ошибка подсчёта задач", err)
		return category.View{}, NewOperationFailed("Failed to load category", err)
	}
	return category.WithCount(c, counts[c.ID]), nil
}

func (s *CategoryService) translate(err error, id int64, message string) error {
	if errors.Is(err, repo.ErrNotFound) {
		logger.Info("Service: Категория не найдена", zap.Int64("target_id", id))
		return NewNotFound(ResourceCategory, id)
	}
	logger.Error("Service: Ошибка хранилища", err, zap.Int64("target_id", id))
	return NewOperationFailed(message, err)
}
