package helpers

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"webup/monit/domain"
)

// LocalTransport runs the commands with the local shell. It serves the
// servers declared as 'localhost'.
type LocalTransport struct {
	out          io.Writer
	sudoPassword string
}

var _ domain.Transport = (*LocalTransport)(nil)

func NewLocalTransport(out io.Writer, sudoPassword string) *LocalTransport {
	return &LocalTransport{out: out, sudoPassword: sudoPassword}
}

func (t *LocalTransport) Run(ctx context.Context, host domain.Host, c domain.Command) error {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", c.String())

	stdout := newPrefixWriter(t.out, color.HiBlackString("[%s]", host))
	stderr := newPrefixWriter(t.out, color.RedString("[%s]", host))
	defer stdout.Flush()
	defer stderr.Flush()

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if c.IsPrivileged() && t.sudoPassword != "" {
		cmd.Stdin = strings.NewReader(t.sudoPassword + "\n")
	}

	return cmd.Run()
}

func (t *LocalTransport) Upload(ctx context.Context, host domain.Host, content []byte, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(destination, content, 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(destination, 0600)
}
