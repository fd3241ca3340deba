package inspect

import (
	"errors"
	"fmt"
	"strings"

	"class-inspector/descriptor"
)

var (
	ErrNoConstructor = errors.New("no constructor matches the arguments")
	ErrInstanceType  = errors.New("constructed instance has an unexpected type")
)

// ConstructionError reports that a type could not be instantiated from the
// given arguments.
type ConstructionError struct {
	Type string   // descriptor name
	Args []string // argument type names, "nil" for untyped nil
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s from %d argument(s) (%s): %v",
		e.Type, len(e.Args), strings.Join(e.Args, ", "), e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func newConstructionError(td descriptor.TypeDescriptor, args []any, err error) *ConstructionError {
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = argTypeName(arg)
	}

	return &ConstructionError{Type: td.Name(), Args: names, Err: err}
}
