package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Defined terminal failure states, reported to the callback verbatim.
var (
	ErrNoMoments = errors.New("no viral moments detected")
	ErrNoClips   = errors.New("no clips produced")
)

const maxErrorLen = 500

// ToolError is raised when an external process exits non-zero or times out.
// Stderr is truncated at construction so the excerpt is safe to forward.
type ToolError struct {
	Tool   string
	Err    error
	Stderr string
}

func NewToolError(tool string, err error, stderr string) *ToolError {
	return &ToolError{
		Tool:   tool,
		Err:    err,
		Stderr: Truncate(strings.TrimSpace(stderr), maxErrorLen),
	}
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Truncate bounds a human-readable message to max bytes.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
