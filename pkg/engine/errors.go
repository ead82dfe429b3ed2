package engine

import "github.com/cockroachdb/errors"

var (
	// ErrShapeConsistency is returned by a pass in validation mode when the
	// logical tree and the host tree disagree: a node patched twice, or a
	// cached host node that no longer sits where the tree says it does.
	ErrShapeConsistency = errors.New("engine: logical and host tree out of sync")

	// ErrNotMounted is returned when unmounting an instance that is not
	// (or no longer) registered.
	ErrNotMounted = errors.New("engine: instance not mounted")

	// ErrMissingElement is returned when a render path walks off the
	// children of a host element.
	ErrMissingElement = errors.New("engine: host element missing")
)

// shapeErrorf reports an internal inconsistency detected by validation.
func shapeErrorf(format string, args ...any) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), ErrShapeConsistency)
}
