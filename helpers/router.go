package helpers

import (
	"context"

	"webup/monit/domain"
)

// HostRouter sends the commands of local hosts to Local and the others to Remote.
type HostRouter struct {
	Local  domain.Transport
	Remote domain.Transport
}

var _ domain.Transport = HostRouter{}

func (r HostRouter) Run(ctx context.Context, host domain.Host, cmd domain.Command) error {
	return r.pick(host).Run(ctx, host, cmd)
}

func (r HostRouter) Upload(ctx context.Context, host domain.Host, content []byte, destination string) error {
	return r.pick(host).Upload(ctx, host, content, destination)
}

func (r HostRouter) pick(host domain.Host) domain.Transport {
	if host.IsLocal() {
		return r.Local
	}
	return r.Remote
}
