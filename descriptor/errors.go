package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrConstructorIsNotAFunction = errors.New("provided constructor is not a function")
	ErrIsNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrVariadicConstructor       = errors.New("variadic constructors are not supported")
	ErrForeignConstructor        = errors.New("constructor does not produce the declaring type")
	ErrNotImplemented            = errors.New("type does not implement the interface")
	ErrArgumentMismatch          = errors.New("arguments do not match constructor parameters")
	ErrRestricted                = errors.New("constructor is restricted")
	ErrAccessViolation           = errors.New("constructor access cannot be bypassed")
)

// InvocationError wraps a failure raised by a constructor body: its returned
// error or a recovered panic.
type InvocationError struct {
	Constructor string
	Err         error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("constructor %s failed: %v", e.Constructor, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
