package category

import "strings"

type Category struct {
	ID    int64  `json:"Id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
	Icon  string `json:"icon" db:"icon"`
}

// View - категория с вычисляемым счётчиком активных задач, не хранится
type View struct {
	Category
	TaskCount int `json:"taskCount"`
}

func WithCount(c Category, count int) View {
	return View{Category: c, TaskCount: count}
}

type NewCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (n NewCategory) Build() Category {
	return Category{
		Name:  strings.TrimSpace(n.Name),
		Color: n.Color,
		Icon:  n.Icon,
	}
}

type Patch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Icon == nil
}

func (p Patch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}
