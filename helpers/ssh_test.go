package helpers

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"webup/monit/domain"
)

type execRequest struct {
	command string
	stdin   string
}

// sshServer is an in-process ssh server accepting one client key. It records
// every exec request with what was sent on stdin.
//   - 'echo hello' prints hello
//   - 'false' exits with 1
//   - 'sleep' blocks until the test ends
type sshServer struct {
	port    int
	keyFile string
	started chan struct{}

	mu          sync.Mutex
	execs       []execRequest
	connections int32
}

func newSSHServer(t *testing.T) *sshServer {
	hostKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	hostSigner, err := ssh.NewSignerFromKey(hostKey)
	require.NoError(t, err)

	clientKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	authorized, err := ssh.NewPublicKey(&clientKey.PublicKey)
	require.NoError(t, err)

	der, err := x509.MarshalECPrivateKey(clientKey)
	require.NoError(t, err)
	keyFile := filepath.Join(t.TempDir(), "id_ecdsa")
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), 0600))

	config := &ssh.ServerConfig{
		PublicKeyCallback: func(c ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if c.User() == "deployer" && bytes.Equal(key.Marshal(), authorized.Marshal()) {
				return nil, nil
			}
			return nil, fmt.Errorf("unknown key for %s", c.User())
		},
	}
	config.AddHostKey(hostSigner)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	release := make(chan struct{})
	t.Cleanup(func() {
		close(release)
		listener.Close()
	})

	s := &sshServer{
		port:    listener.Addr().(*net.TCPAddr).Port,
		keyFile: keyFile,
		started: make(chan struct{}, 1),
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			atomic.AddInt32(&s.connections, 1)
			go s.serve(conn, config, release)
		}
	}()

	return s
}

func (s *sshServer) serve(conn net.Conn, config *ssh.ServerConfig, release chan struct{}) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			newCh.Reject(ssh.UnknownChannelType, "unsupported channel type")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}

		go func() {
			for req := range requests {
				if req.Type != "exec" {
					if req.WantReply {
						req.Reply(false, nil)
					}
					continue
				}

				var payload struct{ Command string }
				if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
					req.Reply(false, nil)
					continue
				}
				req.Reply(true, nil)
				go s.exec(ch, payload.Command, release)
			}
		}()
	}
}

func (s *sshServer) exec(ch ssh.Channel, command string, release chan struct{}) {
	defer ch.Close()

	stdin, _ := io.ReadAll(ch)

	s.mu.Lock()
	s.execs = append(s.execs, execRequest{command: command, stdin: string(stdin)})
	s.mu.Unlock()

	var status uint32
	switch command {
	case "echo hello":
		io.WriteString(ch, "hello\n")
	case "false":
		status = 1
	case "sleep":
		s.started <- struct{}{}
		<-release
	}

	ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
}

func (s *sshServer) received() []execRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]execRequest{}, s.execs...)
}

func (s *sshServer) host() domain.Host {
	return domain.Host{Name: "srv", Address: "127.0.0.1", Port: s.port}
}

func (s *sshServer) transport(out io.Writer, sudoPassword string) *SSHTransport {
	return NewSSHTransport(domain.SSHConfig{
		User:     "deployer",
		Key:      s.keyFile,
		Insecure: true,
		Timeout:  5 * time.Second,
	}, sudoPassword, out)
}

func TestSSHTransportRun(t *testing.T) {
	server := newSSHServer(t)
	out := &bytes.Buffer{}
	transport := server.transport(out, "pw")
	defer transport.Close()

	move := domain.NewPrivilegedCommand("sudo -S -p ''", []string{"mv", "/tmp/monit_nginx", "/etc/monit/conf.d/nginx.conf"})
	require.NoError(t, transport.Run(context.Background(), server.host(), move))
	require.NoError(t, transport.Run(context.Background(), server.host(), domain.NewCommand([]string{"echo", "hello"})))

	// the password is sent on stdin of privileged commands only
	assert.Equal(t, []execRequest{
		{command: move.String(), stdin: "pw\n"},
		{command: "echo hello", stdin: ""},
	}, server.received())
	assert.Contains(t, out.String(), "[srv] hello\n")

	// one connection per host
	assert.Equal(t, int32(1), atomic.LoadInt32(&server.connections))

	err := transport.Run(context.Background(), server.host(), domain.NewCommand([]string{"false"}))
	var exitErr *ssh.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitStatus())
}

func TestSSHTransportUpload(t *testing.T) {
	server := newSSHServer(t)
	transport := server.transport(&bytes.Buffer{}, "pw")
	defer transport.Close()

	content := []byte("check process nginx\n")
	require.NoError(t, transport.Upload(context.Background(), server.host(), content, "/tmp/monit_nginx"))

	// the upload never gets the sudo password
	assert.Equal(t, []execRequest{
		{command: "umask 077; cat > '/tmp/monit_nginx'", stdin: "check process nginx\n"},
	}, server.received())
}

func TestSSHTransportCancel(t *testing.T) {
	server := newSSHServer(t)
	transport := server.transport(&bytes.Buffer{}, "")
	defer transport.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Run(ctx, server.host(), domain.NewCommand([]string{"sleep"}))
	}()

	select {
	case <-server.started:
	case <-time.After(5 * time.Second):
		t.Fatal("the command never started")
	}
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSSHTransportNoAuth(t *testing.T) {
	server := newSSHServer(t)
	transport := NewSSHTransport(domain.SSHConfig{User: "deployer", Insecure: true}, "", &bytes.Buffer{})

	err := transport.Run(context.Background(), server.host(), domain.NewCommand([]string{"echo", "hello"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ssh authentication method available for srv")
	assert.Empty(t, server.received())
}

func TestUploadCommand(t *testing.T) {
	assert.Equal(t, "umask 077; cat > '/tmp/monit_nginx'", uploadCommand("/tmp/monit_nginx"))
	assert.Equal(t, `umask 077; cat > '/tmp/it'\''s'`, uploadCommand("/tmp/it's"))
}
