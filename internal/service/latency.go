package service

import "time"

type Operation string

const (
	OpTaskList       Operation = "task.list"
	OpTaskGet        Operation = "task.get"
	OpTaskCreate     Operation = "task.create"
	OpTaskUpdate     Operation = "task.update"
	OpTaskDelete     Operation = "task.delete"
	OpTaskFilter     Operation = "task.filter"
	OpCategoryList   Operation = "category.list"
	OpCategoryGet    Operation = "category.get"
	OpCategoryCreate Operation = "category.create"
	OpCategoryUpdate Operation = "category.update"
	OpCategoryDelete Operation = "category.delete"
)

var baseDelays = map[Operation]time.Duration{
	OpTaskList:       300 * time.Millisecond,
	OpTaskGet:        200 * time.Millisecond,
	OpTaskCreate:     400 * time.Millisecond,
	OpTaskUpdate:     300 * time.Millisecond,
	OpTaskDelete:     250 * time.Millisecond,
	OpTaskFilter:     300 * time.Millisecond,
	OpCategoryList:   250 * time.Millisecond,
	OpCategoryGet:    200 * time.Millisecond,
	OpCategoryCreate: 350 * time.Millisecond,
	OpCategoryUpdate: 300 * time.Millisecond,
	OpCategoryDelete: 250 * time.Millisecond,
}

// Latency имитирует сетевую задержку бэкенда. Ожидание не прерывается
// отменой контекста: начатая операция всегда доходит до конца
type Latency struct {
	scale float64
	sleep func(time.Duration)
}

func NewLatency(scale float64) Latency {
	return Latency{scale: scale, sleep: time.Sleep}
}

func NoLatency() Latency {
	return Latency{}
}

func (l Latency) Delay(op Operation) time.Duration {
	if l.scale <= 0 {
		return 0
	}
	return time.Duration(float64(baseDelays[op]) * l.scale)
}

func (l Latency) Wait(op Operation) {
	d := l.Delay(op)
	if d <= 0 || l.sleep == nil {
		return
	}
	l.sleep(d)
}
