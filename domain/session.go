package domain

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Session binds the execution context to the collaborators used by the tasks.
// A session is scoped to a set of hosts, see WithRoles.
type Session struct {
	Context   ExecutionContext
	Transport Transport
	Renderer  Renderer
	Out       io.Writer

	hosts []Host
}

func NewSession(ctx ExecutionContext, transport Transport, renderer Renderer, out io.Writer) *Session {
	return &Session{
		Context:   ctx,
		Transport: transport,
		Renderer:  renderer,
		Out:       out,
		hosts:     ctx.Hosts,
	}
}

// Hosts returns the hosts targeted by the session.
func (s *Session) Hosts() []Host {
	return s.hosts
}

// WithRoles returns a copy of the session targeting the hosts carrying one of
// the roles. Without roles, every host is targeted.
func (s *Session) WithRoles(roles ...Role) *Session {
	scoped := *s
	scoped.hosts = s.Context.HostsWithRole(roles...)
	return &scoped
}

// Run executes the command on every targeted host, one after the other.
// It stops at the first failure.
func (s *Session) Run(ctx context.Context, cmd Command) error {
	for _, host := range s.hosts {
		fmt.Fprintf(s.Out, "   %s %s: %s\n", color.CyanString("→"), host, cmd)

		if err := s.Transport.Run(ctx, host, cmd); err != nil {
			if IsRemoteExecError(err) {
				return err
			}
			return &RemoteExecError{Host: host.String(), Command: cmd.String(), Err: err}
		}
	}

	return nil
}

// Put writes the content to the destination on every targeted host.
func (s *Session) Put(ctx context.Context, content []byte, destination string) error {
	for _, host := range s.hosts {
		fmt.Fprintf(s.Out, "   %s %s: upload %s (%d bytes)\n", color.CyanString("→"), host, destination, len(content))

		if err := s.Transport.Upload(ctx, host, content, destination); err != nil {
			if IsRemoteExecError(err) {
				return err
			}
			return &RemoteExecError{Host: host.String(), Command: "upload " + destination, Err: err}
		}
	}

	return nil
}

// Template renders the template and puts the result on every targeted host.
func (s *Session) Template(ctx context.Context, templateID string, destination string) error {
	content, err := s.Renderer.Render(templateID, s.Context)
	if err != nil {
		if IsRenderError(err) {
			return err
		}
		return &RenderError{Template: templateID, Err: err}
	}

	return s.Put(ctx, content, destination)
}
