package tasks

import (
	"context"

	"webup/monit/domain"
)

// afterHooks lists the tasks triggered once a task succeeds.
var afterHooks = map[domain.TaskID][]domain.TaskID{
	"deploy:setup": {"monit:setup"},
}

// After returns the tasks run after the task 'name'.
func After(name domain.TaskID) []domain.TaskID {
	return afterHooks[name]
}

// Invoke executes the task 'name' followed by its after hooks.
func Invoke(ctx context.Context, s *domain.Session, name domain.TaskID) error {
	task, err := CreateTaskWithName(name)
	if err != nil {
		return err
	}

	if err := task.Execute(ctx, s); err != nil {
		return err
	}

	for _, next := range After(name) {
		if err := Invoke(ctx, s, next); err != nil {
			return err
		}
	}

	return nil
}
