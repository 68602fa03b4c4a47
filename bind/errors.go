package bind

import (
	"errors"
	"fmt"
)

var (
	// ErrPathResolution is matched by every *PathResolutionError.
	ErrPathResolution = errors.New("bind: path resolution failed")

	// ErrInvalidPath is returned when a dotted path cannot be parsed.
	ErrInvalidPath = errors.New("bind: invalid path")

	// ErrNotifyDepthExceeded is matched by every *DepthError.
	ErrNotifyDepthExceeded = errors.New("bind: notify depth exceeded")
)

// PathResolutionError reports a path whose intermediate segment is missing or
// is not an object.
type PathResolutionError struct {
	Path    Path
	Segment int
	Reason  string
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("bind: resolve %q at segment %d (%q): %s", e.Path.String(), e.Segment, e.Path[e.Segment], e.Reason)
}

func (e *PathResolutionError) Unwrap() error {
	return ErrPathResolution
}

// DepthError is returned by a write whose notification would nest deeper than
// the system allows. The write itself has been stored.
type DepthError struct {
	Key   string
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("bind: notify of %q suppressed at depth %d", e.Key, e.Depth)
}

func (e *DepthError) Unwrap() error {
	return ErrNotifyDepthExceeded
}
