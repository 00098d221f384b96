package tasks

import (
	"github.com/pkg/errors"

	"webup/monit/domain"
)

// AllTasks returns every task that can be run, in display order.
func AllTasks() []domain.Task {
	tasks := []domain.Task{
		DeploySetupTask(),
		SetupTask(),
		NginxTask(),
		MySQLTask(),
		PostgreSQLTask(),
		UnicornTask(),
	}
	for _, c := range LifecycleCommands {
		tasks = append(tasks, LifecycleTask(c))
	}

	return tasks
}

func CreateTaskWithName(name domain.TaskID) (domain.Task, error) {
	for _, t := range AllTasks() {
		if t.Name == name {
			return t, nil
		}
	}

	return domain.Task{}, errors.Wrapf(domain.ErrTaskNotFound, "unable to find the task '%s'", name)
}
