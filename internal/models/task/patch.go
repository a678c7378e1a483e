package task

import (
	"encoding/json"
	"strings"
	"time"
)

// Nullable различает "поле не передано" и "поле явно сброшено в null"
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func (n Nullable[T]) IsZero() bool {
	return !n.Set
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Patch перечисляет поля, которые разрешено менять. Id сюда не входит.
type Patch struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	CategoryID  Nullable[int64]     `json:"categoryId,omitzero"`
	Priority    *Priority           `json:"priority,omitempty"`
	Completed   *bool               `json:"completed,omitempty"`
	CompletedAt Nullable[time.Time] `json:"completedAt,omitzero"`
	Order       *int64              `json:"order,omitempty"`
	DueDate     Nullable[time.Time] `json:"dueDate,omitzero"`
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.CategoryID.Set &&
		p.Priority == nil && p.Completed == nil && !p.CompletedAt.Set &&
		p.Order == nil && !p.DueDate.Set
}

func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.CategoryID.Set {
		t.CategoryID = copyPtr(p.CategoryID.Value)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt.Set {
		t.CompletedAt = copyPtr(p.CompletedAt.Value)
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
	if p.DueDate.Set {
		t.DueDate = copyPtr(p.DueDate.Value)
	}
}

// CompletionPatch переключает признак выполнения вместе с completedAt
func CompletionPatch(completed bool, now time.Time) Patch {
	p := Patch{Completed: &completed, CompletedAt: Null[time.Time]()}
	if completed {
		p.CompletedAt = Value(now)
	}
	return p
}
