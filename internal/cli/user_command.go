package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lsp-fixtures/internal/errors"
)

// UserCommand handles the user subcommands.
type UserCommand struct {
	app *App
}

func NewUserCommand(app *App) *UserCommand {
	return &UserCommand{app: app}
}

func (c *UserCommand) Create(ctx context.Context, args []string) error {
	user, err := c.app.api.CreateUser(ctx, args[0], args[1])
	if err != nil {
		return c.app.errors.Handle("create user", err)
	}

	fmt.Fprintf(c.app.out, "Created %s\n", user.DisplayName())
	fmt.Fprintf(c.app.out, "Key: %s\n", user.Key)
	return nil
}

func (c *UserCommand) Show(ctx context.Context, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return c.app.errors.Handle("show user", err)
	}

	user, err := c.app.api.GetUser(ctx, key)
	if err != nil {
		return c.app.errors.Handle("show user", err)
	}

	fmt.Fprintln(c.app.out, user.DisplayName())
	fmt.Fprintln(c.app.out, user)
	return nil
}

func (c *UserCommand) List(ctx context.Context) error {
	users, err := c.app.api.ListUsers(ctx)
	if err != nil {
		return c.app.errors.Handle("list users", err)
	}

	if len(users) == 0 {
		fmt.Fprintln(c.app.out, "No users found")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(c.app.out, "%s  %s <%s>\n", u.Key, u.DisplayName(), u.Email)
	}
	return nil
}

// Email simulates sending a message; the remaining arguments form the body.
func (c *UserCommand) Email(ctx context.Context, args []string) error {
	key, err := parseKey(args[0])
	if err != nil {
		return c.app.errors.Handle("send email", err)
	}

	sent, err := c.app.api.SendEmail(ctx, c.app.out, key, args[1], strings.Join(args[2:], " "))
	if err != nil {
		return c.app.errors.Handle("send email", err)
	}

	fmt.Fprintf(c.app.out, "Email sent: %t\n", sent)
	return nil
}

func parseKey(s string) (uuid.UUID, error) {
	key, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.NewInvalidInputError("key", s, "must be a UUID")
	}
	return key, nil
}
