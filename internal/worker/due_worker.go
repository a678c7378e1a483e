package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/logger"
	"taskboard/internal/models/task"
	"taskboard/internal/notify"

	"go.uber.org/zap"
)

type TaskLister interface {
	GetAll(ctx context.Context) ([]task.Task, error)
}

// DueWorker периодически ищет просроченные невыполненные задачи
// и уведомляет о каждой один раз
type DueWorker struct {
	tasks    TaskLister
	notifier notify.Notifier
	interval time.Duration
	now      func() time.Time

	mtx      sync.Mutex
	notified map[int64]time.Time
}

func NewDueWorker(tasks TaskLister, notifier notify.Notifier, interval *time.Duration) *DueWorker {
	intervalToSet := time.Minute
	if interval != nil && *interval > 0 {
		intervalToSet = *interval
	}

	return &DueWorker{
		tasks:    tasks,
		notifier: notifier,
		interval: intervalToSet,
		now:      time.Now,
		notified: make(map[int64]time.Time),
	}
}

func (w *DueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Worker: Фоновая проверка сроков запущена", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

// Check возвращает число новых уведомлений
func (w *DueWorker) Check(ctx context.Context) int {
	start := time.Now()

	tasks, err := w.tasks.GetAll(ctx)
	if err != nil {
		logger.Warn("Worker: Ошибка получения задач", zap.Error(err))
		return 0
	}

	now := w.now()
	overdue := make([]task.Task, 0)

	// набор пересобирается на каждой проверке: удалённые id уходят из него,
	// а задача с переиспользованным id или новым сроком уведомляется заново
	notified := make(map[int64]time.Time)

	w.mtx.Lock()
	for _, t := range tasks {
		if !isOverdue(t, now) {
			continue
		}
		notified[t.ID] = *t.DueDate
		if due, ok := w.notified[t.ID]; ok && due.Equal(*t.DueDate) {
			continue
		}
		overdue = append(overdue, t)
	}
	w.notified = notified
	w.mtx.Unlock()

	for _, t := range overdue {
		w.notifier.Notify(fmt.Sprintf("Task %q is overdue", t.Title), notify.KindInfo)
	}

	logger.Info(
		"Worker: Завершение проверки сроков",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("overdue", len(overdue)),
	)
	return len(overdue)
}

func isOverdue(t task.Task, now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}
