package tasks

import (
	"context"
	"path"

	"webup/monit/domain"
)

var sharedChildren = []string{"system", "log", "pids"}

// DeploySetupTask prepares the deployment directories. Monit is set up right
// after it (see hooks.go).
func DeploySetupTask() domain.Task {
	task := domain.Task{Name: "deploy:setup", Description: "Prepare the servers for deployment"}

	task.Action = func(ctx context.Context, s *domain.Session) error {
		dirs := deployDirs(s.Context)
		sudo := s.Context.TrySudo()

		if err := s.Run(ctx, domain.NewPrivilegedCommand(sudo, append([]string{"mkdir", "-p"}, dirs...))); err != nil {
			return err
		}

		if s.Context.GroupWritable {
			return s.Run(ctx, domain.NewPrivilegedCommand(sudo, append([]string{"chmod", "g+w"}, dirs...)))
		}

		return nil
	}

	return task
}

func deployDirs(ctx domain.ExecutionContext) []string {
	dirs := []string{ctx.DeployTo, ctx.ReleasesPath(), ctx.SharedPath()}
	for _, child := range sharedChildren {
		dirs = append(dirs, path.Join(ctx.SharedPath(), child))
	}
	return dirs
}
