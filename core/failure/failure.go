// Package failure provides named errors. A failure carries the name of the
// error kind it belongs to and the stack trace of the place it was created,
// so callers can match on the kind with errors.Is while still being able to
// print where it came from.
package failure

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

type Failure interface {
	error
	Named
}

type NamedWithStackTrace interface {
	Failure
	WithStackTrace
}

// Kind is a failure with no message, used as a sentinel to match against.
type Kind string

func (k Kind) Name() string {
	return string(k)
}

func (k Kind) Error() string {
	return string(k)
}

// Is reports whether target is a failure of the same kind.
func (k Kind) Is(target error) bool {
	named, ok := target.(Named)
	return ok && named.Name() == string(k)
}

type failure struct {
	name    string
	message string
	cause   error
	stack   errors.StackTrace
}

func (f *failure) Name() string {
	return f.name
}

func (f *failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s", f.message, f.cause)
	}
	return f.message
}

func (f *failure) Stack() string {
	return fmt.Sprintf("%+v", f.stack)
}

func (f *failure) Unwrap() error {
	return f.cause
}

func (f *failure) Is(target error) bool {
	named, ok := target.(Named)
	return ok && named.Name() == f.name
}

// New creates a failure of the given kind, recording the current stack trace.
func New(kind Kind, format string, args ...any) NamedWithStackTrace {
	return &failure{
		name:    kind.Name(),
		message: fmt.Sprintf(format, args...),
		stack:   callers(),
	}
}

// Wrap creates a failure of the given kind caused by err.
func Wrap(kind Kind, err error, format string, args ...any) NamedWithStackTrace {
	return &failure{
		name:    kind.Name(),
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   callers(),
	}
}

func callers() errors.StackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	f := make(errors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = errors.Frame(pcs[i])
	}
	return f
}
