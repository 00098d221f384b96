package tasks

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"webup/monit/domain"
)

const monitrcPath = "/etc/monit/monitrc"

// SetupTask installs every monit config then reloads the daemon. Every
// service watched needs at least one host with its role: setup fails before
// touching it otherwise.
func SetupTask() domain.Task {
	task := domain.Task{Name: "monit:setup", Description: "Setup all Monit configuration"}

	task.Action = func(ctx context.Context, s *domain.Session) error {
		db := domain.DatabaseForApplication(s.Context.Application)

		if err := InstallConfig(ctx, s, "monitrc", monitrcPath); err != nil {
			return err
		}

		steps := []domain.Task{
			NginxTask(),
			DatabaseTask(db),
			UnicornTask(),
			LifecycleTask(Syntax),
			LifecycleTask(ForceReload),
		}
		for _, step := range steps {
			if len(s.WithRoles(step.Roles...).Hosts()) == 0 {
				return errors.Wrapf(domain.ErrNoMatchingHosts, "task '%s' needs a host with role %v", step.Name, step.Roles)
			}
			if err := step.Execute(ctx, s); err != nil {
				return err
			}
		}

		return nil
	}

	return task
}

// NginxTask installs the nginx watch on the web servers.
func NginxTask() domain.Task {
	return serviceConfigTask("nginx", domain.RoleWeb)
}

// MySQLTask installs the mysql watch on the db servers.
func MySQLTask() domain.Task {
	return serviceConfigTask("mysql", domain.RoleDb)
}

// PostgreSQLTask installs the postgresql watch on the db servers.
func PostgreSQLTask() domain.Task {
	return serviceConfigTask("postgresql", domain.RoleDb)
}

// DatabaseTask returns the watch task of the database variant.
func DatabaseTask(db domain.Database) domain.Task {
	if db == domain.MySQL {
		return MySQLTask()
	}
	return PostgreSQLTask()
}

// UnicornTask installs the unicorn watch on the app servers. The file is named
// after the application so several applications can share a host.
func UnicornTask() domain.Task {
	task := domain.Task{
		Name:        "monit:unicorn",
		Description: "Install the Monit config of unicorn",
		Roles:       []domain.Role{domain.RoleApp},
	}

	task.Action = func(ctx context.Context, s *domain.Session) error {
		return InstallConfig(ctx, s, "unicorn", UnicornDestination(s.Context.Application))
	}

	return task
}

func UnicornDestination(application string) string {
	return fmt.Sprintf("%s/unicorn_%s.conf", monitConfDir, application)
}

func serviceConfigTask(name string, role domain.Role) domain.Task {
	task := domain.Task{
		Name:        domain.TaskID("monit:" + name),
		Description: fmt.Sprintf("Install the Monit config of %s", name),
		Roles:       []domain.Role{role},
	}

	task.Action = func(ctx context.Context, s *domain.Session) error {
		return InstallConfig(ctx, s, name, "")
	}

	return task
}
