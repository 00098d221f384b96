package domain

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type TaskID string

type TaskAction func(ctx context.Context, s *Session) error

type Task struct {
	Name        TaskID
	Description string
	// Roles restricts the hosts the task runs on. Empty means every host.
	Roles  []Role
	Action TaskAction
}

// Execute runs the task on the hosts matching its roles. A task without any
// matching host is skipped.
func (t Task) Execute(ctx context.Context, s *Session) error {
	scoped := s.WithRoles(t.Roles...)
	if len(scoped.Hosts()) == 0 {
		fmt.Fprintf(s.Out, "Task '%s' skipped: no host with role %v.\n", t.Name, t.Roles)
		return nil
	}

	fmt.Fprintf(s.Out, "\n %s %s\n", color.YellowString("▶"), t.Name)

	if err := t.Action(ctx, scoped); err != nil {
		return errors.Wrapf(err, "task '%s'", t.Name)
	}

	return nil
}
