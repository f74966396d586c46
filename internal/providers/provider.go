package providers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mmrzaf/mocker/internal/domain"
)

// Provider produces the values of one column. Reset is called once per
// column with the arguments written in the configuration, Provide once per
// row.
type Provider interface {
	Reset(args []domain.Argument) error
	Provide() (domain.CellValue, error)
}

// Context is handed to every provider factory.
type Context struct {
	RowCount    int
	Rand        *rand.Rand
	WordListDir string
}

type Factory func(ctx Context) (Provider, error)

var processRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func (c Context) rng() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	return processRand
}

// NopReset is embedded by providers that take no arguments.
type NopReset struct{}

func (NopReset) Reset([]domain.Argument) error { return nil }

type UnexpectedArgumentError struct {
	Value    string
	Expected string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("unexpected argument %q, expected %s", e.Value, e.Expected)
}

// UnknownError wraps failures that are internal to a provider, such as an
// unreadable word list.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown provider error: %v", e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

func intArg(arg domain.Argument) (int64, error) {
	if arg.Kind != domain.ArgInt {
		return 0, &UnexpectedArgumentError{Value: arg.String(), Expected: "int"}
	}
	return arg.Int, nil
}

func floatArg(arg domain.Argument) (float64, error) {
	switch arg.Kind {
	case domain.ArgFloat:
		return arg.Float, nil
	case domain.ArgInt:
		return float64(arg.Int), nil
	default:
		return 0, &UnexpectedArgumentError{Value: arg.String(), Expected: "float"}
	}
}

func maxArgs(args []domain.Argument, n int) error {
	if len(args) > n {
		return domain.TooManyArguments(len(args), n)
	}
	return nil
}
