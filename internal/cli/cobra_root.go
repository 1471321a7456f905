package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lsp-fixtures/internal/api"
	"lsp-fixtures/internal/calc"
	"lsp-fixtures/internal/config"
	"lsp-fixtures/internal/logging"
	"lsp-fixtures/internal/repository/sqlite"
)

// RepositoryOpener opens the repository described by the final configuration.
type RepositoryOpener func(cfg *config.Config) (sqlite.Repository, error)

// RootCommand is the fx command tree. It owns the lazily opened repository.
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	open   RepositoryOpener
	repo   sqlite.Repository
	api    api.API
}

// NewRootCommand creates the root cobra command with global flags. The
// repository is opened on first use, after flag overrides are applied.
func NewRootCommand(cfg *config.Config, open RepositoryOpener) *RootCommand {
	root := &RootCommand{
		config: cfg,
		open:   open,
	}

	root.cmd = &cobra.Command{
		Use:   "fx",
		Short: "Task lists, users and small calculations",
		Long: `fx keeps per-owner task lists and user records in a local SQLite
database and runs a few calculations.

EXAMPLES:
  fx task add "Learn LSP" -p 2           # Add a task for the default owner
  fx task complete 1                     # Mark task 1 as completed
  fx task list --filter pending          # List incomplete tasks
  fx user create "John Doe" john@example.com
  fx calc interest 1000 0.05 5 --compounds 12
  fx export --format pdf --out tasks.pdf
  fx serve --addr 127.0.0.1:8080
  fx demo

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    FX_DB_DIR                Database directory (default: ~/.fx)
    FX_DB_FILENAME           Database filename (default: fx.db)
    FX_DB_QUERY_TIMEOUT      Query timeout (default: 10s)
    FX_TASKS_OWNER           Task list owner (default: Admin)
    FX_TASKS_PRIORITY        Default task priority (default: 1)
    FX_SERVER_ADDR           HTTP listen address (default: 127.0.0.1:8080)
    FX_APP_TIMEOUT           Application timeout (default: 60s)
    FX_APP_VERBOSE           Enable verbose output (default: false)
    FX_EXPORT_FORMAT         Default export format (default: csv)
    FX_DEBUG                 Print debug output to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.applyFlags(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command, mainly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command and closes the repository if one was opened.
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.Close()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) Close() error {
	if r.repo == nil {
		return nil
	}
	err := r.repo.Close()
	r.repo = nil
	r.api = nil
	return err
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides FX_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides FX_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides FX_DB_QUERY_TIMEOUT)")

	// Task configuration
	flags.String("owner", "", "Task list owner (overrides FX_TASKS_OWNER)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides FX_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides FX_APP_VERBOSE)")
	flags.String("export-format", "", "Default export format (overrides FX_EXPORT_FORMAT)")
}

// applyFlags copies explicitly set flags into the configuration. cmd is the
// command being run, whose local flags may also carry overrides.
func (r *RootCommand) applyFlags(cmd *cobra.Command) error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.Overrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("owner") {
		v, _ := flags.GetString("owner")
		overrides.Owner = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("export-format") {
		v, _ := flags.GetString("export-format")
		overrides.ExportFormat = &v
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		v := f.Value.String()
		overrides.ServerAddr = &v
	}

	overrides.Apply(r.config)
	r.config.Normalize()
	if err := r.config.Validate(); err != nil {
		return err
	}

	logging.SetVerbose(r.config.Application.Verbose)
	return nil
}

// newApp opens the repository if needed and binds the command's output.
func (r *RootCommand) newApp(cmd *cobra.Command) (*App, error) {
	if r.api == nil {
		repo, err := r.open(r.config)
		if err != nil {
			return nil, err
		}
		r.repo = repo
		r.api = api.New(repo)
		logging.Debugf("opened database %s\n", r.config.DatabasePath())
	}
	return NewApp(r.api, r.config, cmd.OutOrStdout()), nil
}

func (r *RootCommand) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
}

func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.taskCommand(),
		r.userCommand(),
		r.calcCommand(),
		r.exportCommand(),
		r.serveCommand(),
		r.demoCommand(),
	)
}

func (r *RootCommand) taskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the owner's task list",
	}

	var description string
	var priority int
	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a pending task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			if !cmd.Flags().Changed("priority") {
				priority = r.config.Tasks.DefaultPriority
			}
			return NewTaskCommand(app).Add(ctx, args, description, priority)
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	addCmd.Flags().IntVarP(&priority, "priority", "p", 0, "Task priority, 1-5 by convention (default from FX_TASKS_PRIORITY)")

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewTaskCommand(app).Complete(ctx, args)
		},
	}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in creation order",
		Long: `List the owner's tasks.

Filters: all (default), pending, completed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewTaskCommand(app).List(ctx, filter)
		},
	}
	listCmd.Flags().StringVarP(&filter, "filter", "f", "all", "Completion filter: all, pending or completed")

	ownersCmd := &cobra.Command{
		Use:   "owners",
		Short: "List owners that have tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewTaskCommand(app).Owners(ctx)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show completion and priority counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewTaskCommand(app).Summary(ctx)
		},
	}

	taskCmd.AddCommand(addCmd, completeCmd, listCmd, ownersCmd, summaryCmd)
	return taskCmd
}

func (r *RootCommand) userCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user records",
	}

	run := func(fn func(ctx context.Context, c *UserCommand, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return fn(ctx, NewUserCommand(app), args)
		}
	}

	createCmd := &cobra.Command{
		Use:   "create [name] [email]",
		Short: "Create a user with a random display id",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(ctx context.Context, c *UserCommand, args []string) error {
			return c.Create(ctx, args)
		}),
	}
	showCmd := &cobra.Command{
		Use:   "show [key]",
		Short: "Show a user's display name",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, c *UserCommand, args []string) error {
			return c.Show(ctx, args)
		}),
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users in creation order",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, c *UserCommand, args []string) error {
			return c.List(ctx)
		}),
	}
	emailCmd := &cobra.Command{
		Use:   "email [key] [subject] [message]",
		Short: "Simulate sending an email to a user",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(func(ctx context.Context, c *UserCommand, args []string) error {
			return c.Email(ctx, args)
		}),
	}

	userCmd.AddCommand(createCmd, showCmd, listCmd, emailCmd)
	return userCmd
}

func (r *RootCommand) calcCommand() *cobra.Command {
	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Run calculations",
	}

	var compounds float64
	interestCmd := &cobra.Command{
		Use:   "interest [principal] [rate] [time]",
		Short: "Compound interest: principal * (1 + rate/compounds)^(compounds*time)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCalcCommand(cmd.OutOrStdout()).Interest(args, compounds)
		},
	}
	interestCmd.Flags().Float64VarP(&compounds, "compounds", "n", calc.DefaultCompounds, "Compounding periods per unit of time")

	areaCmd := &cobra.Command{
		Use:   "area [width] [height]",
		Short: "Rectangle area",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCalcCommand(cmd.OutOrStdout()).Area(args)
		},
	}

	ageCmd := &cobra.Command{
		Use:   "age [YYYY-MM-DD]",
		Short: "Whole years since a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCalcCommand(cmd.OutOrStdout()).Age(args)
		},
	}

	futureCmd := &cobra.Command{
		Use:   "future [days]",
		Short: "Date a number of days from today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCalcCommand(cmd.OutOrStdout()).Future(args)
		},
	}

	calcCmd.AddCommand(interestCmd, areaCmd, ageCmd, futureCmd)
	return calcCmd
}

func (r *RootCommand) exportCommand() *cobra.Command {
	var format, out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the owner's task list",
		Long: `Export the owner's task list.

Supported formats:
  csv   Comma-separated values
  json  Indented JSON document
  pdf   A4 report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := r.withTimeout(cmd)
			defer cancel()

			return NewExportCommand(app).Execute(ctx, format, out)
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "", "Export format: csv, json or pdf (default from FX_EXPORT_FORMAT)")
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return exportCmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tasks, users and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(cmd)
			if err != nil {
				return err
			}
			return NewServeCommand(app).Execute(cmd.Context())
		},
	}
	// Read by applyFlags as a config override.
	serveCmd.Flags().String("addr", "", "Listen address (overrides FX_SERVER_ADDR)")
	return serveCmd
}

func (r *RootCommand) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run every core operation in memory and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewDemoCommand(cmd.OutOrStdout()).Execute()
		},
	}
}
