package actions

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"webup/monit/domain"
	"webup/monit/tasks"
)

func ListTasksActionHandler(out io.Writer) {
	fmt.Fprintln(out, "Available tasks:")
	for _, task := range tasks.AllTasks() {
		line := fmt.Sprintf("   %-20s %s", task.Name, task.Description)
		if len(task.Roles) > 0 {
			line += color.HiBlackString(" (roles: %v)", task.Roles)
		}
		if hooks := tasks.After(task.Name); len(hooks) > 0 {
			names := []string{}
			for _, h := range hooks {
				names = append(names, string(h))
			}
			line += color.HiBlackString(" (then %s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(out, line)
	}
}

func ListHostsActionHandler(out io.Writer, ctx domain.ExecutionContext) {
	fmt.Fprintf(out, "Hosts of '%s' (database: %s):\n", ctx.Application, domain.DatabaseForApplication(ctx.Application))
	for _, host := range ctx.Hosts {
		fmt.Fprintf(out, "   %s@%s   %s\n", host.User, host.Dial(), color.HiBlackString(host.RoleNames()))
	}
}
