package cmd

import (
	"fmt"
	"strconv"
	"time"

	"taskboard/internal/client"
	"taskboard/internal/dashboard"
	"taskboard/internal/models/task"

	"github.com/spf13/cobra"
)

var (
	taskSearchQuery string
	taskStatus      string
	taskCategory    string
	taskPriority    string

	newTaskCategory int64
	newTaskPriority string
	newTaskDue      string
)

var listTaskCmd = &cobra.Command{
	Use:     "list",
	Short:   "Показать задачи",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		res, err := c.ListTasks(cmd.Context(), client.ListOptions{
			Search:   taskSearchQuery,
			Status:   taskStatus,
			Category: taskCategory,
			Priority: taskPriority,
		})
		if err != nil {
			return failed(cmd, "Failed to load tasks", err)
		}

		categories, err := c.Categories(cmd.Context())
		if err != nil {
			return failed(cmd, "Failed to load categories", err)
		}

		renderTasks(cmd.OutOrStdout(), res, categories)
		return nil
	},
}

var addTaskCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Добавить задачу",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := dashboard.QuickAdd{
			Title:    args[0],
			Priority: task.Priority(newTaskPriority),
		}
		if cmd.Flags().Changed("category") {
			q.CategoryID = &newTaskCategory
		}
		if newTaskDue != "" {
			due, err := time.ParseInLocation(time.DateOnly, newTaskDue, time.Local)
			if err != nil {
				return fmt.Errorf("неверная дата %q, ожидается YYYY-MM-DD: %w", newTaskDue, err)
			}
			q.DueDate = &due
		}

		created, err := newClient().AddTask(cmd.Context(), q)
		if err != nil {
			return failed(cmd, "Failed to create task", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task created successfully! [%d] %s\n", created.ID, created.Title)
		return nil
	},
}

var toggleTaskCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Отметить задачу выполненной или вернуть в работу",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("неверный id %q", args[0])
		}

		updated, err := newClient().ToggleTask(cmd.Context(), id)
		if err != nil {
			return failed(cmd, "Failed to update task", err)
		}

		if updated.Completed {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Task completed! 🎉 [%d] %s\n", updated.ID, updated.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "↩️  Task reopened [%d] %s\n", updated.ID, updated.Title)
		}
		return nil
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:     "rm [id]",
	Short:   "Удалить задачу",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("неверный id %q", args[0])
		}

		if err := newClient().DeleteTask(cmd.Context(), id); err != nil {
			return failed(cmd, "Failed to delete task", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Task deleted [%d]\n", id)
		return nil
	},
}

func init() {
	listTaskCmd.Flags().StringVarP(&taskSearchQuery, "search", "q", "", "Поиск по названию")
	listTaskCmd.Flags().StringVar(&taskStatus, "status", "", "all, active или completed")
	listTaskCmd.Flags().StringVar(&taskCategory, "category", "", "Id категории или all")
	listTaskCmd.Flags().StringVar(&taskPriority, "priority", "", "low, medium, high или all")

	addTaskCmd.Flags().Int64Var(&newTaskCategory, "category", 0, "Id категории")
	addTaskCmd.Flags().StringVar(&newTaskPriority, "priority", "", "low, medium или high (по умолчанию medium)")
	addTaskCmd.Flags().StringVar(&newTaskDue, "due", "", "Срок в формате YYYY-MM-DD")

	rootCmd.AddCommand(listTaskCmd)
	rootCmd.AddCommand(addTaskCmd)
	rootCmd.AddCommand(toggleTaskCmd)
	rootCmd.AddCommand(deleteTaskCmd)
}
