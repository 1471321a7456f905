package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/export"
)

// ExportCommand writes the owner's task list to stdout or a file.
type ExportCommand struct {
	app *App
}

func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

func (c *ExportCommand) Execute(ctx context.Context, format, path string) error {
	if format == "" {
		format = c.app.config.Export.DefaultFormat
	}
	owner := c.app.config.Tasks.DefaultOwner

	tasks, err := c.app.api.ListTasks(ctx, owner, domain.FilterAll)
	if err != nil {
		return c.app.errors.Handle("export tasks", err)
	}

	var w io.Writer = c.app.out
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return c.app.errors.Handle("export tasks", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Export(w, format, owner, tasks); err != nil {
		return c.app.errors.Handle("export tasks", err)
	}

	if path != "" {
		fmt.Fprintf(c.app.out, "Exported %d tasks to %s\n", len(tasks), path)
	}
	return nil
}
