package service

import (
	"context"

	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
)

// TaskRepository реализуют inmemory.Store и postgres.Storage.
// UpdateTask применяет изменения внутри критической секции хранилища
type TaskRepository interface {
	HealthCheck(context.Context) error
	ListTasks(context.Context) ([]task.Task, error)
	GetTask(context.Context, int64) (task.Task, error)
	CreateTask(context.Context, task.Task) (task.Task, error)
	UpdateTask(context.Context, int64, func(*task.Task) error) (task.Task, error)
	DeleteTask(context.Context, int64) error
}

type CategoryRepository interface {
	ListCategories(context.Context) ([]category.Category, error)
	GetCategory(context.Context, int64) (category.Category, error)
	CreateCategory(context.Context, category.Category) (category.Category, error)
	UpdateCategory(context.Context, int64, func(*category.Category) error) (category.Category, error)
	DeleteCategory(context.Context, int64) error
	ActiveTaskCounts(context.Context) (map[int64]int, error)
}

// Repository - хранилище целиком, обе коллекции в одном объекте
type Repository interface {
	TaskRepository
	CategoryRepository
}
