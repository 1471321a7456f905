package cli

import (
	"context"
	"fmt"

	"lsp-fixtures/internal/server"
)

// ServeCommand exposes the api over HTTP until the context is canceled.
type ServeCommand struct {
	app *App
}

func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app}
}

func (c *ServeCommand) Execute(ctx context.Context) error {
	addr := c.app.config.Server.Addr
	router := server.NewRouter(c.app.api, c.app.config.Tasks.DefaultOwner)
	fmt.Fprintf(c.app.out, "Serving on http://%s\n", addr)

	if err := server.Run(ctx, addr, router); err != nil {
		return c.app.errors.Handle("serve", err)
	}
	return nil
}
