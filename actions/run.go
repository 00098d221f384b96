package actions

import (
	"context"
	"fmt"

	"github.com/Songmu/prompter"
	"github.com/fatih/color"

	"webup/monit/domain"
	"webup/monit/tasks"
)

// RunTasksActionHandler executes the tasks in order, each followed by its
// hooks. It stops at the first failure.
func RunTasksActionHandler(ctx context.Context, s *domain.Session, names []domain.TaskID, confirmed bool) error {
	// check every name before running anything
	for _, name := range names {
		if _, err := tasks.CreateTaskWithName(name); err != nil {
			return err
		}
	}

	if s.Context.IsProd() && !confirmed {
		ok := prompter.YN("You're in production. Are you sure you want to continue?", false)
		if !ok {
			return nil
		}
	}

	for _, name := range names {
		if err := tasks.Invoke(ctx, s, name); err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "\n %s Task '%s' executed.\n", color.GreenString("✓"), name)
	}

	return nil
}
