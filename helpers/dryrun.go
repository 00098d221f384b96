package helpers

import (
	"context"

	"webup/monit/domain"
)

// DryRunTransport executes nothing. The session still echoes every command.
type DryRunTransport struct{}

var _ domain.Transport = DryRunTransport{}

func (DryRunTransport) Run(ctx context.Context, host domain.Host, cmd domain.Command) error {
	return ctx.Err()
}

func (DryRunTransport) Upload(ctx context.Context, host domain.Host, content []byte, destination string) error {
	return ctx.Err()
}
