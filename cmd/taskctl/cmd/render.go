package cmd

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	"taskboard/internal/stats"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	titleStyle = color.New(color.FgCyan, color.Bold).SprintFunc()
	mutedStyle = color.New(color.FgHiBlack).SprintFunc()
)

func priorityLabel(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return color.New(color.FgHiRed).Sprint(p)
	case task.PriorityMedium:
		return color.New(color.FgHiYellow).Sprint(p)
	default:
		return color.New(color.FgHiBlue).Sprint(p)
	}
}

func statusLabel(t task.Task) string {
	if t.Completed {
		return text.FgHiGreen.Sprintf("✔ done")
	}
	return text.FgHiRed.Sprintf("● active")
}

func renderTasks(w io.Writer, res dto.TaskListResponse, categories []category.View) {
	if len(res.Tasks) == 0 {
		if res.Empty != nil {
			fmt.Fprintln(w, titleStyle(res.Empty.Title))
			fmt.Fprintln(w, mutedStyle(res.Empty.Description))
		}
		return
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDouble)
	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("ID"),
		text.FgGreen.Sprintf("Title"),
		text.FgGreen.Sprintf("Category"),
		text.FgGreen.Sprintf("Priority"),
		text.FgGreen.Sprintf("Due"),
		text.FgGreen.Sprintf("Status"),
	})

	for _, tk := range res.Tasks {
		categoryName := "-"
		if tk.CategoryID != nil {
			if name, ok := names[*tk.CategoryID]; ok {
				categoryName = name
			}
		}
		due := "-"
		if tk.DueDate != nil {
			due = tk.DueDate.Format("Jan 2")
		}
		t.AppendRow(table.Row{tk.ID, tk.Title, categoryName, priorityLabel(tk.Priority), due, statusLabel(tk)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tasks", res.Total)})
	t.Render()
}

func renderCategories(w io.Writer, categories []category.View) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDouble)
	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("ID"),
		text.FgGreen.Sprintf("Name"),
		text.FgGreen.Sprintf("Icon"),
		text.FgGreen.Sprintf("Tasks"),
	})
	for _, c := range categories {
		t.AppendRow(table.Row{c.ID, c.Name, c.Icon, c.TaskCount})
	}
	t.Render()
}

func renderStats(w io.Writer, st stats.Stats) {
	fmt.Fprintf(w, "%s %d/%d completed today, %d active, %d completed, %d%% rate\n",
		titleStyle("Today:"), st.CompletedToday, st.TodayTasks, st.TotalActive, st.TotalCompleted, st.CompletionRate)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleDouble)
	t.AppendHeader(table.Row{
		text.FgGreen.Sprintf("Day"),
		text.FgGreen.Sprintf("Date"),
		text.FgGreen.Sprintf("Created"),
		text.FgGreen.Sprintf("Completed"),
		text.FgGreen.Sprintf(""),
	})
	for _, d := range st.Week {
		bar := strings.Repeat("█", d.Completed) + strings.Repeat("░", max(d.Created-d.Completed, 0))
		day := d.Day
		if d.IsToday {
			day = text.FgHiCyan.Sprintf("%s", d.Day)
		}
		t.AppendRow(table.Row{day, d.Date, d.Created, d.Completed, bar})
	}
	t.Render()
}
