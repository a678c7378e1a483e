package stats

import (
	"math"
	"time"

	"taskboard/internal/models/task"
)

type Day struct {
	Day       string `json:"day"`
	Date      int    `json:"date"`
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
	IsToday   bool   `json:"isToday"`
}

type Stats struct {
	TodayTasks     int   `json:"todayTasks"`
	CompletedToday int   `json:"completedToday"`
	TotalActive    int   `json:"totalActive"`
	TotalCompleted int   `json:"totalCompleted"`
	CompletionRate int   `json:"completionRate"`
	Week           []Day `json:"week"`
}

// Compute пересчитывает статистику целиком при каждом вызове.
// Календарные дни берутся в часовом поясе now
func Compute(tasks []task.Task, now time.Time) Stats {
	loc := now.Location()
	today := dayStart(now)

	var s Stats
	for _, t := range tasks {
		if t.Completed {
			s.TotalCompleted++
		} else {
			s.TotalActive++
		}
		if dayKey(t.CreatedAt, loc) == dayKey(today, loc) {
			s.TodayTasks++
			if t.Completed {
				s.CompletedToday++
			}
		}
	}
	if s.TodayTasks > 0 {
		s.CompletionRate = int(math.Round(float64(s.CompletedToday) / float64(s.TodayTasks) * 100))
	}

	s.Week = week(tasks, today, loc)
	return s
}

// week строит семь дней недели, начинающейся с воскресенья
func week(tasks []task.Task, today time.Time, loc *time.Location) []Day {
	start := today.AddDate(0, 0, -int(today.Weekday()))

	days := make([]Day, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = Day{
			Day:     d.Weekday().String()[:3],
			Date:    d.Day(),
			IsToday: d.Equal(today),
		}
		index[dayKey(d, loc)] = i
	}

	for _, t := range tasks {
		if i, ok := index[dayKey(t.CreatedAt, loc)]; ok {
			days[i].Created++
		}
		if t.Completed && t.CompletedAt != nil {
			if i, ok := index[dayKey(*t.CompletedAt, loc)]; ok {
				days[i].Completed++
			}
		}
	}
	return days
}

// dayKey - календарная дата в loc, не зависит от указателя *time.Location в значениях
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
