package seed

import (
	_ "embed"
	"fmt"
	"time"

	"taskboard/internal/models/category"
	"taskboard/internal/models/task"

	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

type Dataset struct {
	Categories []category.Category
	Tasks      []task.Task
}

type file struct {
	Categories []categoryRecord `yaml:"categories"`
	Tasks      []taskRecord     `yaml:"tasks"`
}

type categoryRecord struct {
	ID    int64  `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

type taskRecord struct {
	ID          int64      `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	CategoryID  *int64     `yaml:"category_id"`
	Priority    string     `yaml:"priority"`
	Completed   bool       `yaml:"completed"`
	CompletedAt *time.Time `yaml:"completed_at"`
	CreatedAt   time.Time  `yaml:"created_at"`
	Order       int64      `yaml:"order"`
	DueDate     *time.Time `yaml:"due_date"`
}

// Default - встроенный начальный набор данных
func Default() (Dataset, error) {
	return Parse(defaultData)
}

func Parse(data []byte) (Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Dataset{}, fmt.Errorf("разбор начальных данных: %w", err)
	}

	ds := Dataset{
		Categories: make([]category.Category, 0, len(f.Categories)),
		Tasks:      make([]task.Task, 0, len(f.Tasks)),
	}

	for _, c := range f.Categories {
		ds.Categories = append(ds.Categories, category.Category{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
			Icon:  c.Icon,
		})
	}

	for _, t := range f.Tasks {
		priority, ok := task.ParsePriority(t.Priority)
		if !ok {
			return Dataset{}, fmt.Errorf("задача %d: неизвестный приоритет %q", t.ID, t.Priority)
		}
		ds.Tasks = append(ds.Tasks, task.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			CategoryID:  t.CategoryID,
			Priority:    priority,
			Completed:   t.Completed,
			CompletedAt: t.CompletedAt,
			CreatedAt:   t.CreatedAt,
			Order:       t.Order,
			DueDate:     t.DueDate,
		})
	}

	return ds, nil
}

// MustDefault используется там, где битые встроенные данные - ошибка сборки
func MustDefault() Dataset {
	ds, err := Default()
	if err != nil {
		panic(err)
	}
	return ds
}
