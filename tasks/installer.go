package tasks

import (
	"context"
	"path"

	"github.com/pkg/errors"

	"webup/monit/domain"
)

const (
	monitConfDir      = "/etc/monit/conf.d"
	privilegedAccount = "root"
	configMode        = "600"
)

// TemplateID returns the template used to render the config 'name'.
func TemplateID(name string) string {
	return "monit/" + name
}

// DefaultDestination returns where the config 'name' is installed when no
// destination is given.
func DefaultDestination(name string) string {
	return path.Join(monitConfDir, name+".conf")
}

func uploadPath(name string) string {
	return "/tmp/monit_" + name
}

// InstallConfig renders the monit config 'name', moves it to destination with
// sudo, then restricts it to root (mode 600). An empty destination means
// DefaultDestination(name).
//
// Nothing is rolled back on failure: a file whose chown fails stays at its
// destination.
func InstallConfig(ctx context.Context, s *domain.Session, name string, destination string) error {
	if destination == "" {
		destination = DefaultDestination(name)
	}
	tmp := uploadPath(name)
	sudo := s.Context.Sudo

	if err := s.Template(ctx, TemplateID(name), tmp); err != nil {
		return err
	}

	if err := s.Run(ctx, domain.NewPrivilegedCommand(sudo, []string{"mv", tmp, destination})); err != nil {
		return err
	}

	if err := s.Run(ctx, domain.NewPrivilegedCommand(sudo, []string{"chown", privilegedAccount, destination})); err != nil {
		return permissionError(err, destination)
	}

	if err := s.Run(ctx, domain.NewPrivilegedCommand(sudo, []string{"chmod", configMode, destination})); err != nil {
		return permissionError(err, destination)
	}

	return nil
}

func permissionError(err error, destination string) error {
	permErr := &domain.PermissionError{Path: destination, Err: err}

	var execErr *domain.RemoteExecError
	if errors.As(err, &execErr) {
		permErr.Host = execErr.Host
	}

	return permErr
}
