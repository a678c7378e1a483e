package dto

import (
	"taskboard/internal/models/task"
	"taskboard/internal/tasklist"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type SelectCategoryRequest struct {
	CategoryID *int64 `json:"categoryId"`
}

type SearchRequest struct {
	Search string `json:"search"`
}

// FilterRequest - фильтры в строковом виде, как в query-параметрах
type FilterRequest struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

type TaskListResponse struct {
	Tasks []task.Task          `json:"tasks"`
	Total int                  `json:"total"`
	Empty *tasklist.EmptyState `json:"empty,omitempty"`
}

// FromTaskList добавляет описание пустого состояния, если задач нет
func FromTaskList(tasks []task.Task, search string) TaskListResponse {
	if tasks == nil {
		tasks = []task.Task{}
	}
	res := TaskListResponse{Tasks: tasks, Total: len(tasks)}
	if len(tasks) == 0 {
		empty := tasklist.Empty(search)
		res.Empty = &empty
	}
	return res
}
