package handlers

import (
	"context"

	"taskboard/internal/dashboard"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/tasklist"
)

type TaskService interface {
	HealthCheck(ctx context.Context) error
	GetAll(ctx context.Context) ([]task.Task, error)
	GetByID(ctx context.Context, id int64) (task.Task, error)
	Create(ctx context.Context, data task.NewTask) (task.Task, error)
	Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]task.Task, error)
	GetByStatus(ctx context.Context, completed bool) ([]task.Task, error)
	GetByPriority(ctx context.Context, priority task.Priority) ([]task.Task, error)
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]category.View, error)
	GetByID(ctx context.Context, id int64) (category.View, error)
	Create(ctx context.Context, data category.NewCategory) (category.View, error)
	Update(ctx context.Context, id int64, patch category.Patch) (category.View, error)
	Delete(ctx context.Context, id int64) error
}

// Board - мутации, которые идут через панель: они шлют уведомления
// и увеличивают счётчик обновлений
type Board interface {
	Snapshot(ctx context.Context) (dashboard.View, error)
	SelectCategory(id *int64)
	SetSearch(q string)
	SetFilter(f tasklist.Filter)
	AddTask(ctx context.Context, q dashboard.QuickAdd) (task.Task, error)
	ToggleComplete(ctx context.Context, id int64) (task.Task, error)
	Delete(ctx context.Context, id int64) error
	Edit(id int64) error
	Refresh(ctx context.Context) error
}
