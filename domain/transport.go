package domain

import "context"

// Transport executes commands and writes files on a host.
type Transport interface {
	Run(ctx context.Context, host Host, cmd Command) error
	Upload(ctx context.Context, host Host, content []byte, destination string) error
}

// Renderer renders a template (i.e. "monit/nginx") with the execution context.
type Renderer interface {
	Render(templateID string, ctx ExecutionContext) ([]byte, error)
}
