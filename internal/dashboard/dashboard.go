package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/notify"
	"taskboard/internal/stats"
	"taskboard/internal/tasklist"

	"go.uber.org/zap"
)

const (
	msgCreated      = "Task created successfully!"
	msgCreateFailed = "Failed to create task"
)

var (
	ErrCreateFailed  = errors.New(msgCreateFailed)
	ErrTitleRequired = errors.New("название задачи не может быть пустым")
)

type TaskCreator interface {
	Create(ctx context.Context, data task.NewTask) (task.Task, error)
}

// RefreshListener получает новое значение счётчика после каждого обновления
type RefreshListener interface {
	Refreshed(key int64)
}

// QuickAdd - данные формы быстрого добавления
type QuickAdd struct {
	Title      string        `json:"title"`
	CategoryID *int64        `json:"categoryId,omitempty"`
	Priority   task.Priority `json:"priority,omitempty"`
	DueDate    *time.Time    `json:"dueDate,omitempty"`
}

type View struct {
	Stats            stats.Stats          `json:"stats"`
	Categories       []category.View      `json:"categories"`
	Tasks            []task.Task          `json:"tasks"`
	Filter           tasklist.Filter      `json:"filter"`
	Search           string               `json:"search"`
	SelectedCategory *int64               `json:"selectedCategory"`
	RefreshKey       int64                `json:"refreshKey"`
	Empty            *tasklist.EmptyState `json:"empty,omitempty"`
}

// Dashboard связывает выбор категории, поиск, быструю форму, статистику и список.
// Счётчик обновлений растёт после каждой мутации и заставляет зависимые
// представления перечитать данные
type Dashboard struct {
	mtx        sync.Mutex
	selected   *int64
	search     string
	filter     tasklist.Filter
	refreshKey int64
	loaded     bool

	list      *tasklist.Controller
	creator   TaskCreator
	notifier  notify.Notifier
	listeners []RefreshListener
	now       func() time.Time
}

func New(list *tasklist.Controller, creator TaskCreator, n notify.Notifier, listeners ...RefreshListener) *Dashboard {
	if n == nil {
		n = notify.Discard{}
	}
	d := &Dashboard{
		filter:    tasklist.DefaultFilter(),
		list:      list,
		creator:   creator,
		notifier:  n,
		listeners: listeners,
		now:       time.Now,
	}
	list.OnChange(d.changed)
	return d
}

func (d *Dashboard) SelectCategory(id *int64) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if id != nil {
		v := *id
		id = &v
	}
	d.selected = id
}

func (d *Dashboard) SetSearch(q string) {
	d.mtx.Lock()
	d.search = q
	d.mtx.Unlock()
}

func (d *Dashboard) SetFilter(f tasklist.Filter) {
	d.mtx.Lock()
	d.filter = f
	d.mtx.Unlock()
}

// AddTask создаёт задачу из быстрой формы. Любая ошибка сервиса
// возвращается обёрнутой в ErrCreateFailed
func (d *Dashboard) AddTask(ctx context.Context, q QuickAdd) (task.Task, error) {
	title := strings.TrimSpace(q.Title)
	if title == "" {
		return task.Task{}, ErrTitleRequired
	}

	priority := q.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}

	now := d.now()
	order := now.UnixMilli()
	created, err := d.creator.Create(ctx, task.NewTask{
		Title:      title,
		CategoryID: q.CategoryID,
		Priority:   priority,
		Completed:  false,
		CreatedAt:  &now,
		Order:      &order,
		DueDate:    q.DueDate,
	})
	if err != nil {
		logger.Error("Dashboard: Ошибка создания задачи", err)
		d.notifier.Notify(msgCreateFailed, notify.KindError)
		return task.Task{}, fmt.Errorf("%w: %w", ErrCreateFailed, err)
	}

	if err := d.Refresh(ctx); err != nil {
		logger.Warn("Dashboard: Список не обновлён после создания", zap.Error(err))
	}
	d.notifier.Notify(msgCreated, notify.KindSuccess)

	logger.Info("Dashboard: Задача добавлена", zap.Int64("task_id", created.ID))
	return created, nil
}

// Refresh увеличивает счётчик и перечитывает зависимые представления
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.bump()

	err := d.list.Load(ctx)
	if err == nil {
		d.mtx.Lock()
		d.loaded = true
		d.mtx.Unlock()
	}
	return err
}

func (d *Dashboard) Snapshot(ctx context.Context) (View, error) {
	d.mtx.Lock()
	loaded := d.loaded
	d.mtx.Unlock()

	if !loaded {
		if err := d.list.Load(ctx); err != nil {
			return View{}, err
		}
		d.mtx.Lock()
		d.loaded = true
		d.mtx.Unlock()
	}

	d.mtx.Lock()
	search := d.search
	filter := d.effectiveFilter()
	v := View{
		Filter:           filter,
		Search:           search,
		SelectedCategory: d.selected,
		RefreshKey:       d.refreshKey,
	}
	d.mtx.Unlock()

	v.Stats = stats.Compute(d.list.Tasks(), d.now())
	v.Categories = d.list.Categories()
	v.Tasks = d.list.Visible(search, filter)
	if len(v.Tasks) == 0 {
		empty := tasklist.Empty(search)
		v.Empty = &empty
	}
	return v, nil
}

func (d *Dashboard) ToggleComplete(ctx context.Context, id int64) (task.Task, error) {
	return d.list.ToggleComplete(ctx, id)
}

func (d *Dashboard) Delete(ctx context.Context, id int64) error {
	return d.list.Delete(ctx, id)
}

func (d *Dashboard) Edit(id int64) error {
	return d.list.Edit(id)
}

func (d *Dashboard) RefreshKey() int64 {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.refreshKey
}

// effectiveFilter: выбранная в боковой панели категория перекрывает фильтр списка
func (d *Dashboard) effectiveFilter() tasklist.Filter {
	f := d.filter
	if d.selected != nil {
		id := *d.selected
		f.Category = &id
	}
	return f
}

// changed вызывается списком после переключения или удаления: следующий Snapshot
// перечитает задачи и категории
func (d *Dashboard) changed() {
	d.mtx.Lock()
	d.loaded = false
	d.mtx.Unlock()

	d.bump()
}

func (d *Dashboard) bump() {
	d.mtx.Lock()
	d.refreshKey++
	key := d.refreshKey
	d.mtx.Unlock()

	for _, l := range d.listeners {
		l.Refreshed(key)
	}
}
