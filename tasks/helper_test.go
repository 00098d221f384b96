package tasks

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"webup/monit/domain"
)

var errCommandFailed = errors.New("exit status 1")

// recordingTransport records the commands as "host: command line" and the
// uploads as "host: upload destination".
type recordingTransport struct {
	calls  []string
	failOn string
}

func (t *recordingTransport) Run(ctx context.Context, host domain.Host, cmd domain.Command) error {
	line := cmd.String()
	t.calls = append(t.calls, host.Name+": "+line)
	if t.failOn != "" && strings.Contains(line, t.failOn) {
		return errCommandFailed
	}
	return nil
}

func (t *recordingTransport) Upload(ctx context.Context, host domain.Host, content []byte, destination string) error {
	t.calls = append(t.calls, host.Name+": upload "+destination)
	return nil
}

type stubRenderer struct {
	rendered []string
	missing  string
}

func (r *stubRenderer) Render(templateID string, ctx domain.ExecutionContext) ([]byte, error) {
	if templateID == r.missing {
		return nil, &domain.RenderError{Template: templateID, Err: domain.ErrTemplateNotFound}
	}
	r.rendered = append(r.rendered, templateID)
	return []byte("# " + templateID + "\n"), nil
}

func allRolesHost(name string) domain.Host {
	return domain.Host{
		Name:    name,
		Address: name,
		Roles:   []domain.Role{domain.RoleWeb, domain.RoleApp, domain.RoleDb},
	}
}

func prepareSession(t *testing.T, application string, hosts ...domain.Host) (*domain.Session, *recordingTransport, *stubRenderer) {
	t.Helper()

	ctx := domain.ExecutionContext{
		Application:   application,
		Hosts:         hosts,
		Sudo:          "sudo",
		UseSudo:       true,
		DeployTo:      "/home/deployer/apps/" + application,
		GroupWritable: true,
	}
	transport := &recordingTransport{}
	renderer := &stubRenderer{}

	return domain.NewSession(ctx, transport, renderer, io.Discard), transport, renderer
}

// installCalls lists the calls InstallConfig makes on a host.
func installCalls(host, name, destination string) []string {
	return []string{
		host + ": upload /tmp/monit_" + name,
		host + ": sudo mv /tmp/monit_" + name + " " + destination,
		host + ": sudo chown root " + destination,
		host + ": sudo chmod 600 " + destination,
	}
}

func concat(lists ...[]string) []string {
	all := []string{}
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}
