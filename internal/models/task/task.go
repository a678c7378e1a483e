package task

import (
	"strings"
	"time"
)

type Task struct {
	ID          int64      `json:"Id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	CategoryID  *int64     `json:"categoryId" db:"category_id"`
	Priority    Priority   `json:"priority" db:"priority"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	Order       int64      `json:"order,omitempty" db:"order"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
}

type Priority string

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// NewTask - данные для создания задачи, Id назначает хранилище
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  *int64     `json:"categoryId,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	Order       *int64     `json:"order,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Build собирает задачу без Id, подставляя значения по умолчанию
func (n NewTask) Build(now time.Time) Task {
	t := Task{
		Title:       strings.TrimSpace(n.Title),
		Description: n.Description,
		CategoryID:  copyPtr(n.CategoryID),
		Priority:    n.Priority,
		Completed:   n.Completed,
		CompletedAt: copyPtr(n.CompletedAt),
		CreatedAt:   now,
		Order:       now.UnixMilli(),
		DueDate:     copyPtr(n.DueDate),
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if n.CreatedAt != nil {
		t.CreatedAt = *n.CreatedAt
	}
	if n.Order != nil {
		t.Order = *n.Order
	}
	return t
}

// Clone возвращает копию без общих указателей с оригиналом
func (t Task) Clone() Task {
	t.CategoryID = copyPtr(t.CategoryID)
	t.CompletedAt = copyPtr(t.CompletedAt)
	t.DueDate = copyPtr(t.DueDate)
	return t
}

func (t Task) InCategory(categoryID int64) bool {
	return t.CategoryID != nil && *t.CategoryID == categoryID
}

func CloneAll(tasks []Task) []Task {
	res := make([]Task, len(tasks))
	for i, t := range tasks {
		res[i] = t.Clone()
	}
	return res
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
