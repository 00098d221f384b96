package tasks

import (
	"context"
	"fmt"
	"strings"

	"webup/monit/domain"
)

const initScript = "/etc/init.d/monit"

// LifecycleCommand is an operation of the monit init script.
type LifecycleCommand string

const (
	Start       LifecycleCommand = "start"
	Stop        LifecycleCommand = "stop"
	Restart     LifecycleCommand = "restart"
	Syntax      LifecycleCommand = "syntax"
	ForceReload LifecycleCommand = "force_reload"
)

var LifecycleCommands = []LifecycleCommand{Start, Stop, Restart, Syntax, ForceReload}

// SubCommand returns the init script argument (i.e. "force-reload").
func (c LifecycleCommand) SubCommand() string {
	return strings.Replace(string(c), "_", "-", -1)
}

func (c LifecycleCommand) TaskID() domain.TaskID {
	return domain.TaskID("monit:" + string(c))
}

// LifecycleTask runs the init script with the command on every server.
func LifecycleTask(c LifecycleCommand) domain.Task {
	task := domain.Task{Name: c.TaskID(), Description: fmt.Sprintf("Run Monit %s script", c)}

	task.Action = func(ctx context.Context, s *domain.Session) error {
		return s.Run(ctx, domain.NewPrivilegedCommand(s.Context.Sudo, []string{initScript, c.SubCommand()}))
	}

	return task
}
