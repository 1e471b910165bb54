package typegraph

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid naming configuration, such as an
	// unknown convention. It is never retried.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnsupportedShape marks a type that matches no classification rule.
	ErrUnsupportedShape = errors.New("unsupported shape")
)

// ResolveError reports the type that failed to resolve and the member path
// leading to it from the root.
type ResolveError struct {
	Type Type
	Path string // e.g. "Order.Lines[].Product"
	Err  error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Type == nil || e.Type.String() == e.Path {
		return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("resolve %s (type %s): %v", e.Path, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

func configError(err error) error {
	if errors.Is(err, ErrConfiguration) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}

func wrapError(t Type, path *TypePath, err error) error {
	var re *ResolveError
	if errors.As(err, &re) {
		return err
	}

	return &ResolveError{Type: t, Path: path.String(), Err: err}
}
