package tasklist

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/notify"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgLoadFailed   = "Failed to load tasks. Please try again."
	msgCompleted    = "Task completed! 🎉"
	msgReopened     = "Task reopened"
	msgUpdateFailed = "Failed to update task"
	msgDeleted      = "Task deleted"
	msgDeleteFailed = "Failed to delete task"
	msgEdit         = "Edit functionality would open here"
)

var ErrEditNotImplemented = errors.New("редактирование задач не реализовано")

type TaskService interface {
	GetAll(ctx context.Context) ([]task.Task, error)
	GetByID(ctx context.Context, id int64) (task.Task, error)
	Update(ctx context.Context, id int64, patch task.Patch) (task.Task, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]category.View, error)
}

// Controller хранит последнее успешно загруженное состояние списка.
// При ошибках сервиса состояние не меняется, пользователь получает уведомление
type Controller struct {
	mtx        sync.RWMutex
	tasks      []task.Task
	categories []category.View

	taskSvc     TaskService
	categorySvc CategoryService
	notifier    notify.Notifier
	onChange    func()
	now         func() time.Time
}

func NewController(tasks TaskService, categories CategoryService, n notify.Notifier) *Controller {
	if n == nil {
		n = notify.Discard{}
	}
	return &Controller{
		taskSvc:     tasks,
		categorySvc: categories,
		notifier:    n,
		onChange:    func() {},
		now:         time.Now,
	}
}

// OnChange задаёт обратный вызов, который дёргается после каждой успешной мутации
func (c *Controller) OnChange(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	c.mtx.Lock()
	c.onChange = fn
	c.mtx.Unlock()
}

func (c *Controller) Load(ctx context.Context) error {
	var (
		tasks      []task.Task
		categories []category.View
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = c.taskSvc.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.categorySvc.GetAll(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("TaskList: Ошибка загрузки списка", err)
		c.notifier.Notify(msgLoadFailed, notify.KindError)
		return err
	}

	c.mtx.Lock()
	c.tasks = tasks
	c.categories = categories
	c.mtx.Unlock()

	logger.Debug("TaskList: Список загружен",
		zap.Int("tasks", len(tasks)),
		zap.Int("categories", len(categories)),
	)
	return nil
}

func (c *Controller) Tasks() []task.Task {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return task.CloneAll(c.tasks)
}

func (c *Controller) Categories() []category.View {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	res := make([]category.View, len(c.categories))
	copy(res, c.categories)
	return res
}

func (c *Controller) Visible(search string, f Filter) []task.Task {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return task.CloneAll(Apply(c.tasks, search, f))
}

func (c *Controller) CategoryOf(t task.Task) (category.View, bool) {
	if t.CategoryID == nil {
		return category.View{}, false
	}

	c.mtx.RLock()
	defer c.mtx.RUnlock()

	for _, cat := range c.categories {
		if cat.ID == *t.CategoryID {
			return cat, true
		}
	}
	return category.View{}, false
}

// ToggleComplete переключает выполнение вместе с completedAt
func (c *Controller) ToggleComplete(ctx context.Context, id int64) (task.Task, error) {
	current, ok := c.find(id)
	if !ok {
		var err error
		current, err = c.taskSvc.GetByID(ctx, id)
		if err != nil {
			logger.Error("TaskList: Задача для переключения не найдена", err, zap.Int64("task_id", id))
			c.notifier.Notify(msgUpdateFailed, notify.KindError)
			return task.Task{}, err
		}
	}

	completed := !current.Completed
	updated, err := c.taskSvc.Update(ctx, id, task.CompletionPatch(completed, c.now()))
	if err != nil {
		logger.Error("TaskList: Ошибка переключения задачи", err, zap.Int64("task_id", id))
		c.notifier.Notify(msgUpdateFailed, notify.KindError)
		return task.Task{}, err
	}

	c.mtx.Lock()
	if i := c.index(id); i != -1 {
		c.tasks[i] = updated.Clone()
	}
	onChange := c.onChange
	c.mtx.Unlock()

	onChange()
	if updated.Completed {
		c.notifier.Notify(msgCompleted, notify.KindSuccess)
	} else {
		c.notifier.Notify(msgReopened, notify.KindSuccess)
	}
	return updated, nil
}

func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.taskSvc.Delete(ctx, id); err != nil {
		logger.Error("TaskList: Ошибка удаления задачи", err, zap.Int64("task_id", id))
		c.notifier.Notify(msgDeleteFailed, notify.KindError)
		return err
	}

	c.mtx.Lock()
	if i := c.index(id); i != -1 {
		c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
	}
	onChange := c.onChange
	c.mtx.Unlock()

	onChange()
	c.notifier.Notify(msgDeleted, notify.KindSuccess)
	return nil
}

// Edit - заглушка: редактирование не реализовано
func (c *Controller) Edit(id int64) error {
	logger.Debug("TaskList: Запрошено редактирование", zap.Int64("task_id", id))
	c.notifier.Notify(msgEdit, notify.KindInfo)
	return ErrEditNotImplemented
}

func (c *Controller) find(id int64) (task.Task, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	if i := c.index(id); i != -1 {
		return c.tasks[i].Clone(), true
	}
	return task.Task{}, false
}

func (c *Controller) index(id int64) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
