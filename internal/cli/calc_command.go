package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"lsp-fixtures/internal/calc"
	"lsp-fixtures/internal/errors"
)

const dateLayout = "2006-01-02"

// CalcCommand runs the calculations. It needs no database.
type CalcCommand struct {
	out    io.Writer
	errors *ErrorHandler
}

func NewCalcCommand(out io.Writer) *CalcCommand {
	return &CalcCommand{out: out, errors: NewErrorHandler()}
}

// Interest prints the compounded value of principal rate time.
func (c *CalcCommand) Interest(args []string, compounds float64) error {
	values, err := parseFloats([]string{"principal", "rate", "time"}, args)
	if err != nil {
		return c.errors.Handle("calculate interest", err)
	}

	result := calc.CompoundInterest(values[0], values[1], values[2], compounds)
	fmt.Fprintf(c.out, "Final investment value: %.2f\n", result)
	return nil
}

func (c *CalcCommand) Area(args []string) error {
	values, err := parseFloats([]string{"width", "height"}, args)
	if err != nil {
		return c.errors.Handle("calculate area", err)
	}

	fmt.Fprintf(c.out, "Area: %g\n", calc.RectangleArea(values[0], values[1]))
	return nil
}

// Age prints the whole years elapsed since a YYYY-MM-DD birth date.
func (c *CalcCommand) Age(args []string) error {
	birth, err := time.ParseInLocation(dateLayout, args[0], time.Local)
	if err != nil {
		return c.errors.Handle("calculate age", errors.NewInvalidInputError("birth date", args[0], "expected YYYY-MM-DD"))
	}

	fmt.Fprintf(c.out, "Age: %d years\n", calc.Age(birth, timeNow()))
	return nil
}

func (c *CalcCommand) Future(args []string) error {
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return c.errors.Handle("calculate future date", errors.NewInvalidInputError("days", args[0], "must be an integer"))
	}

	fmt.Fprintf(c.out, "Future date: %s\n", calc.FutureDate(timeNow(), days).Format(dateLayout))
	return nil
}

func parseFloats(names, args []string) ([]float64, error) {
	values := make([]float64, len(names))
	for i, name := range names {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, errors.NewInvalidInputError(name, args[i], "must be a number")
		}
		values[i] = v
	}
	return values, nil
}
