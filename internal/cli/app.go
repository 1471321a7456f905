package cli

import (
	"io"
	"time"

	"lsp-fixtures/internal/api"
	"lsp-fixtures/internal/config"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App carries what a command handler needs for one invocation.
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	errors *ErrorHandler
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    out,
		errors: NewErrorHandler(),
	}
}
