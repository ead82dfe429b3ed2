package vdom

import "github.com/cockroachdb/errors"

var (
	// ErrConstruction is returned when a tree description cannot be built:
	// an unsupported tag or argument type.
	ErrConstruction = errors.New("vdom: invalid tree construction")

	// ErrNotHandled is returned by an event handler that declines an event,
	// letting it propagate to the enclosing handlers.
	ErrNotHandled = errors.New("vdom: event not handled")
)

func constructionErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConstruction)
}
