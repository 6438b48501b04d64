package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Joseda-hg/taskify/internal/model"
)

var (
	taskDescription string
	taskCategory    string
	taskDue         string
	taskPriority    string
	taskStatus      string
	taskTitle       string

	taskListStatus   string
	taskListCategory string
	taskListSearch   string
	taskListJSON     bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := model.TaskInput{
			Title:  strings.Join(args, " "),
			Status: model.Status(taskStatus),
		}
		if taskDescription != "" {
			input.Description = &taskDescription
		}
		if taskCategory != "" {
			input.Category = &taskCategory
		}
		if taskPriority != "" {
			priority := model.Priority(taskPriority)
			input.Priority = &priority
		}
		if taskDue != "" {
			due, err := model.ParseDate(taskDue)
			if err != nil {
				return fmt.Errorf("invalid --due %q: %w", taskDue, err)
			}
			input.DueDate = &due
		}

		task, err := app.ws.Tasks.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Println(formatTaskLine(task, time.Now()))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			tasks []model.Task
			err   error
		)
		switch {
		case taskListSearch != "":
			tasks, err = app.ws.Tasks.Search(ctx, taskListSearch)
		case taskListStatus != "":
			tasks, err = app.ws.Tasks.ListByStatus(ctx, model.Status(taskListStatus))
		case taskListCategory != "":
			tasks, err = app.ws.Tasks.ListByCategory(ctx, taskListCategory)
		default:
			tasks, err = app.ws.Tasks.List(ctx)
		}
		if err != nil {
			return err
		}

		if taskListJSON {
			if tasks == nil {
				tasks = []model.Task{}
			}
			return writeJSON(os.Stdout, tasks)
		}
		if len(tasks) == 0 {
			fmt.Println(dimStyle.Render("No tasks."))
			return nil
		}
		now := time.Now()
		for _, task := range tasks {
			fmt.Println(formatTaskLine(task, now))
		}
		return nil
	},
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change task fields; an empty value clears an optional field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := taskPatchFromFlags(cmd)
		if err != nil {
			return err
		}
		if patch.Empty() {
			return fmt.Errorf("nothing to update")
		}
		task, err := app.ws.Tasks.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		fmt.Println(formatTaskLine(task, time.Now()))
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed := model.StatusCompleted
		task, err := app.ws.Tasks.Update(cmd.Context(), args[0], model.TaskPatch{Status: &completed})
		if err != nil {
			return err
		}
		fmt.Println(formatTaskLine(task, time.Now()))
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.ws.Tasks.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted task %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskUpdateCmd, taskDoneCmd, taskRmCmd)

	for _, cmd := range []*cobra.Command{taskAddCmd, taskUpdateCmd} {
		cmd.Flags().StringVarP(&taskDescription, "description", "d", "", "task description")
		cmd.Flags().StringVarP(&taskCategory, "category", "c", "", "category")
		cmd.Flags().StringVar(&taskDue, "due", "", "due date (YYYY-MM-DD)")
		cmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "low, medium or high")
		cmd.Flags().StringVarP(&taskStatus, "status", "s", "", "pending, in-progress or completed")
	}
	taskUpdateCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "new title")

	taskListCmd.Flags().StringVarP(&taskListStatus, "status", "s", "", "only tasks with this status")
	taskListCmd.Flags().StringVarP(&taskListCategory, "category", "c", "", "only tasks in this category")
	taskListCmd.Flags().StringVar(&taskListSearch, "search", "", "only tasks whose title or description contains this text")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "output as JSON")
}

// taskPatchFromFlags sets only the fields whose flags were given.
func taskPatchFromFlags(cmd *cobra.Command) (model.TaskPatch, error) {
	var patch model.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &taskTitle
	}
	if flags.Changed("description") {
		patch.Description = &taskDescription
	}
	if flags.Changed("category") {
		patch.Category = &taskCategory
	}
	if flags.Changed("status") {
		status := model.Status(taskStatus)
		patch.Status = &status
	}
	if flags.Changed("priority") {
		priority := model.Priority(taskPriority)
		patch.Priority = &priority
	}
	if flags.Changed("due") {
		due := model.Date{}
		if taskDue != "" {
			parsed, err := model.ParseDate(taskDue)
			if err != nil {
				return model.TaskPatch{}, fmt.Errorf("invalid --due %q: %w", taskDue, err)
			}
			due = parsed
		}
		patch.DueDate = &due
	}
	return patch, nil
}
