package tasklist

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"taskboard/internal/models/task"
)

var ErrInvalidFilter = errors.New("недопустимое значение фильтра")

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// AnyPriority пропускает задачи с любым приоритетом
const AnyPriority task.Priority = "all"

// Filter - состояние фильтров списка. Пустые значения эквивалентны "all",
// Category == nil означает все категории
type Filter struct {
	Status   Status        `json:"status"`
	Category *int64        `json:"category"`
	Priority task.Priority `json:"priority"`
}

func DefaultFilter() Filter {
	return Filter{Status: StatusAll, Priority: AnyPriority}
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: status %q", ErrInvalidFilter, s)
}

// ParseFilter разбирает фильтры из строк запроса
func ParseFilter(status, categoryID, priority string) (Filter, error) {
	f := DefaultFilter()

	st, err := ParseStatus(status)
	if err != nil {
		return Filter{}, err
	}
	f.Status = st

	if c := strings.TrimSpace(categoryID); c != "" && !strings.EqualFold(c, "all") {
		id, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: category %q", ErrInvalidFilter, categoryID)
		}
		f.Category = &id
	}

	if p := strings.TrimSpace(priority); p != "" && !strings.EqualFold(p, string(AnyPriority)) {
		pr, ok := task.ParsePriority(p)
		if !ok {
			return Filter{}, fmt.Errorf("%w: priority %q", ErrInvalidFilter, priority)
		}
		f.Priority = pr
	}

	return f, nil
}

func (f Filter) Match(t task.Task, search string) bool {
	if search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(search)) {
		return false
	}

	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if f.Category != nil && !t.InCategory(*f.Category) {
		return false
	}

	if f.Priority != "" && f.Priority != AnyPriority && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply отбирает задачи по поиску и фильтрам и сортирует: сначала
// невыполненные, внутри группы новые раньше старых. Входной срез не меняется
func Apply(tasks []task.Task, search string, f Filter) []task.Task {
	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t, search) {
			res = append(res, t)
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Completed != res[j].Completed {
			return !res[i].Completed
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}
