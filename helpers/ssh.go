package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"webup/monit/domain"
	"webup/monit/utils"
)

// SSHTransport runs the commands over SSH. One connection is opened per host
// and kept until Close.
type SSHTransport struct {
	config       domain.SSHConfig
	sudoPassword string
	out          io.Writer

	mu        sync.Mutex
	clients   map[string]*ssh.Client
	agentConn net.Conn
}

var _ domain.Transport = (*SSHTransport)(nil)

func NewSSHTransport(config domain.SSHConfig, sudoPassword string, out io.Writer) *SSHTransport {
	return &SSHTransport{
		config:       config,
		sudoPassword: sudoPassword,
		out:          out,
		clients:      map[string]*ssh.Client{},
	}
}

func (t *SSHTransport) Run(ctx context.Context, host domain.Host, cmd domain.Command) error {
	session, err := t.session(host)
	if err != nil {
		return err
	}
	defer session.Close()

	stdout := newPrefixWriter(t.out, color.HiBlackString("[%s]", host))
	stderr := newPrefixWriter(t.out, color.RedString("[%s]", host))
	defer stdout.Flush()
	defer stderr.Flush()

	session.Stdout = stdout
	session.Stderr = stderr
	if cmd.IsPrivileged() && t.sudoPassword != "" {
		session.Stdin = strings.NewReader(t.sudoPassword + "\n")
	}

	return wait(ctx, session, cmd.String())
}

func (t *SSHTransport) Upload(ctx context.Context, host domain.Host, content []byte, destination string) error {
	session, err := t.session(host)
	if err != nil {
		return err
	}
	defer session.Close()

	stderr := newPrefixWriter(t.out, color.RedString("[%s]", host))
	defer stderr.Flush()

	session.Stdin = bytes.NewReader(content)
	session.Stderr = stderr

	return wait(ctx, session, uploadCommand(destination))
}

// Close closes every connection.
func (t *SSHTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var firstErr error
	for addr, client := range t.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(t.clients, addr)
	}

	if t.agentConn != nil {
		t.agentConn.Close()
		t.agentConn = nil
	}

	return firstErr
}

func (t *SSHTransport) session(host domain.Host) (*ssh.Session, error) {
	client, err := t.client(host)
	if err != nil {
		return nil, err
	}

	session, err := client.NewSession()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open a session on %s", host)
	}

	return session, nil
}

func (t *SSHTransport) client(host domain.Host) (*ssh.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	addr := t.address(host)
	if client, ok := t.clients[addr]; ok {
		return client, nil
	}

	config, err := t.clientConfig(host)
	if err != nil {
		return nil, err
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %s", addr)
	}
	t.clients[addr] = client

	return client, nil
}

func (t *SSHTransport) address(host domain.Host) string {
	if host.Port == 0 && t.config.Port != 0 {
		host.Port = t.config.Port
	}
	return host.Dial()
}

func (t *SSHTransport) clientConfig(host domain.Host) (*ssh.ClientConfig, error) {
	user := host.User
	if user == "" {
		user = t.config.User
	}

	auths := []ssh.AuthMethod{}

	if t.config.Agent {
		if conn := t.dialAgent(); conn != nil {
			auths = append(auths, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
		}
	}

	if t.config.Key != "" {
		key, err := os.ReadFile(utils.ExpandHome(t.config.Key))
		if err != nil {
			return nil, errors.Wrap(err, "unable to read the ssh key")
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse the ssh key")
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	if len(auths) == 0 {
		return nil, fmt.Errorf("no ssh authentication method available for %s", host)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if !t.config.Insecure {
		var err error
		hostKeyCallback, err = knownhosts.New(utils.ExpandHome(t.config.KnownHosts))
		if err != nil {
			return nil, errors.Wrap(err, "unable to read the known hosts")
		}
	}

	return &ssh.ClientConfig{
		User:            user,
		Auth:            auths,
		HostKeyCallback: hostKeyCallback,
		Timeout:         t.config.Timeout,
	}, nil
}

// dialAgent must be called with t.mu held.
func (t *SSHTransport) dialAgent() net.Conn {
	if t.agentConn != nil {
		return t.agentConn
	}

	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil
	}
	t.agentConn = conn

	return conn
}

// wait runs the command and closes the session if ctx is cancelled first.
func wait(ctx context.Context, session *ssh.Session, line string) error {
	done := make(chan error, 1)
	go func() {
		done <- session.Run(line)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		session.Signal(ssh.SIGTERM)
		session.Close()
		return ctx.Err()
	}
}

// uploadCommand writes stdin to destination, readable by the ssh user only.
func uploadCommand(destination string) string {
	return "umask 077; cat > " + shellQuote(destination)
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}
