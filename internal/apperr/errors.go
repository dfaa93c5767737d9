// Package apperr defines the failure kinds reported while creating a project
// from an archetype. Every error surfaced by the core wraps exactly one kind,
// so callers branch with errors.Is instead of matching message text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("archetype not found")
	ErrManifestMissing   = errors.New("archetype manifest missing")
	ErrManifestInvalid   = errors.New("archetype manifest invalid")
	ErrDestinationExists = errors.New("destination already exists")
	ErrIO                = errors.New("i/o error")
	ErrRender            = errors.New("template render error")
	ErrHookEmpty         = errors.New("empty hook command")
	ErrHookFailed        = errors.New("hook command failed")
)

// Error pairs a failure kind with the context needed to act on it.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an error of the given kind with a formatted message.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind around cause. A nil cause yields nil.
func Wrap(kind, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// IO wraps a filesystem failure on path.
func IO(op, path string, cause error) error {
	return Wrap(ErrIO, cause, "%s %s", op, path)
}

// Render wraps a template failure for the named template.
func Render(name string, cause error) error {
	return Wrap(ErrRender, cause, "rendering %s", name)
}

// HookError reports a hook that could not be spawned or exited non-zero.
type HookError struct {
	Command    string
	ExitStatus int // -1 when the process never started
	Err        error
}

func (e *HookError) Error() string {
	if e.ExitStatus < 0 {
		return fmt.Sprintf("hook command failed to start: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("hook command failed (exit status %d): %s", e.ExitStatus, e.Command)
}

func (e *HookError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrHookFailed}
	}
	return []error{ErrHookFailed, e.Err}
}

// Kind returns the sentinel kind carried by err, or nil if err has none.
func Kind(err error) error {
	for _, k := range []error{
		ErrNotFound, ErrManifestMissing, ErrManifestInvalid, ErrDestinationExists,
		ErrIO, ErrRender, ErrHookEmpty, ErrHookFailed,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
