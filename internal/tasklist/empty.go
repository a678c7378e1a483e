package tasklist

import "fmt"

type EmptyState struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func Empty(search string) EmptyState {
	if search != "" {
		return EmptyState{
			Title:       "No matching tasks",
			Description: fmt.Sprintf("No tasks match your search for %q", search),
			Icon:        "Search",
		}
	}
	return EmptyState{
		Title:       "No tasks found",
		Description: "Tasks matching your current filters will appear here.",
		Icon:        "CheckSquare",
	}
}
