package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/errors"
	"lsp-fixtures/internal/manager"
)

// TaskCommand handles the task subcommands for one owner.
type TaskCommand struct {
	app   *App
	owner string
}

func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app, owner: app.config.Tasks.DefaultOwner}
}

// Add creates a task from the joined arguments.
func (c *TaskCommand) Add(ctx context.Context, args []string, description string, priority int) error {
	title := strings.Join(args, " ")

	task, err := c.app.api.AddTask(ctx, c.owner, title,
		manager.WithDescription(description),
		manager.WithPriority(priority),
	)
	if err != nil {
		return c.app.errors.Handle("add task", err)
	}

	fmt.Fprintf(c.app.out, "Added task %s\n", task)
	return nil
}

// Complete marks the task with the given id as completed.
func (c *TaskCommand) Complete(ctx context.Context, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return c.app.errors.Handle("complete task", errors.NewInvalidInputError("id", args[0], "must be an integer"))
	}

	ok, err := c.app.api.CompleteTask(ctx, c.owner, id)
	if err != nil {
		return c.app.errors.Handle("complete task", err)
	}
	if !ok {
		return c.app.errors.Handle("complete task", errors.NewNotFoundError("task", args[0]))
	}

	fmt.Fprintf(c.app.out, "Task %d marked as completed\n", id)
	return nil
}

// List prints the owner's tasks matching filter in creation order.
func (c *TaskCommand) List(ctx context.Context, filter string) error {
	completion, err := domain.ParseCompletionFilter(filter)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}

	tasks, err := c.app.api.ListTasks(ctx, c.owner, completion)
	if err != nil {
		return c.app.errors.Handle("list tasks", err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(c.app.out, "No tasks found")
		return nil
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s (priority %d)", t, t.Priority)
		if t.Description != "" {
			line += " - " + t.Description
		}
		fmt.Fprintln(c.app.out, line)
	}
	return nil
}

// Owners prints every owner that has stored tasks.
func (c *TaskCommand) Owners(ctx context.Context) error {
	owners, err := c.app.api.ListOwners(ctx)
	if err != nil {
		return c.app.errors.Handle("list owners", err)
	}

	if len(owners) == 0 {
		fmt.Fprintln(c.app.out, "No owners found")
		return nil
	}
	for _, owner := range owners {
		fmt.Fprintln(c.app.out, owner)
	}
	return nil
}

// Summary prints completion and priority counts for the owner.
func (c *TaskCommand) Summary(ctx context.Context) error {
	summary, err := c.app.api.SummarizeTasks(ctx, c.owner)
	if err != nil {
		return c.app.errors.Handle("summarize tasks", err)
	}

	fmt.Fprintf(c.app.out, "Owner: %s\n", summary.Owner)
	fmt.Fprintf(c.app.out, "Total: %d  Completed: %d  Pending: %d\n", summary.Total, summary.Completed, summary.Pending)
	for _, p := range summary.Priorities() {
		fmt.Fprintf(c.app.out, "Priority %d: %d\n", p, summary.ByPriority[p])
	}
	return nil
}
