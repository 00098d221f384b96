package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoMatchingHosts  = errors.New("no matching hosts")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// RenderError is returned when a template is missing or cannot be rendered
// with the execution context.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("unable to render '%s': %s", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RemoteExecError is returned when a command exits with a non-zero status or
// the host cannot be reached.
type RemoteExecError struct {
	Host    string
	Command string
	Err     error
}

func (e *RemoteExecError) Error() string {
	return fmt.Sprintf("%s: '%s' failed: %s", e.Host, e.Command, e.Err)
}

func (e *RemoteExecError) Unwrap() error {
	return e.Err
}

// PermissionError is returned when the owner or the mode of an installed file
// cannot be set.
type PermissionError struct {
	Host string
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: unable to set permissions of %s: %s", e.Host, e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// IsRenderError indicates if err is a RenderError.
func IsRenderError(err error) bool {
	var target *RenderError
	return errors.As(err, &target)
}

// IsRemoteExecError indicates if err is a RemoteExecError.
func IsRemoteExecError(err error) bool {
	var target *RemoteExecError
	return errors.As(err, &target)
}

// IsPermissionError indicates if err is a PermissionError.
func IsPermissionError(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

// IsNoMatchingHosts indicates if err is ErrNoMatchingHosts.
func IsNoMatchingHosts(err error) bool {
	return errors.Is(err, ErrNoMatchingHosts)
}

// IsTaskNotFound indicates if err is ErrTaskNotFound.
func IsTaskNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}
