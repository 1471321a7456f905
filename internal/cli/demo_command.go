package cli

import (
	"fmt"
	"io"
	"time"

	"lsp-fixtures/internal/calc"
	"lsp-fixtures/internal/domain"
	"lsp-fixtures/internal/manager"
)

// DemoCommand walks through every core operation in memory and prints the
// results. Nothing is persisted.
type DemoCommand struct {
	out io.Writer
}

func NewDemoCommand(out io.Writer) *DemoCommand {
	return &DemoCommand{out: out}
}

func (c *DemoCommand) Execute() error {
	w := c.out

	investment := calc.CompoundInterest(1000, 0.05, 5, 12)
	fmt.Fprintf(w, "Final investment value: %.2f\n", investment)
	fmt.Fprintf(w, "Area: %g\n", calc.RectangleArea(5, 10))

	tm := manager.NewTaskManager("")
	first := tm.AddTask("Learn LSP", manager.WithDescription("hover, completion, go to definition"))
	second := tm.AddTask("Write fixtures", manager.WithPriority(3))
	fmt.Fprintf(w, "Owner: %s\n", tm.Owner())
	fmt.Fprintf(w, "Added task %s\n", first)
	fmt.Fprintf(w, "Added task %s\n", second)
	fmt.Fprintf(w, "Complete task %d: %t\n", first.ID, tm.CompleteTask(first.ID))
	fmt.Fprintf(w, "Complete task %d: %t\n", 99, tm.CompleteTask(99))
	fmt.Fprintf(w, "Completed tasks: %d\n", len(tm.Tasks(domain.FilterCompleted)))
	fmt.Fprintf(w, "Pending tasks: %d\n", len(tm.Tasks(domain.FilterPending)))
	fmt.Fprintf(w, "All tasks: %d\n", len(tm.Tasks(domain.FilterAll)))

	user := domain.NewUser("John Doe", "john@example.com")
	fmt.Fprintln(w, user.DisplayName())
	fmt.Fprintln(w, user)
	if user.IsValid() {
		fmt.Fprintln(w, "User is valid!")
	}
	user.SendEmail(w, "Welcome", "Thanks for signing up")

	now := timeNow()
	birth := time.Date(1990, time.June, 15, 0, 0, 0, 0, now.Location())
	fmt.Fprintf(w, "Age: %d years\n", calc.Age(birth, now))
	fmt.Fprintf(w, "Future date: %s\n", calc.FutureDate(now, 10).Format(dateLayout))
	return nil
}
