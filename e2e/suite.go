package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

const testTopic = "e2e.logs"

// lockedBuffer is a thread-safe bytes.Buffer for capturing process output
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer with mutex protection
func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

// String returns the buffer contents with mutex protection
func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// Env isolates the broadcast channel of one test
type Env struct {
	t         *testing.T
	bin       string
	socketDir string
	workDir   string
}

// NewEnv resolves the orslog binary and creates a private socket directory
func NewEnv(t *testing.T) *Env {
	t.Helper()

	bin := os.Getenv("ORSLOG_BIN")
	if bin == "" {
		bin = "orslog"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		t.Skipf("orslog binary not found (%s), set ORSLOG_BIN to run e2e tests", bin)
	}

	socketDir, err := os.MkdirTemp("", "orslog-e2e")
	if err != nil {
		t.Fatalf("failed to create socket dir: %v", err)
	}

	t.Cleanup(func() { os.RemoveAll(socketDir) })

	return &Env{
		t:         t,
		bin:       path,
		socketDir: socketDir,
		workDir:   t.TempDir(),
	}
}

// SocketPath returns the endpoint the viewer is expected to create
func (e *Env) SocketPath() string {
	return filepath.Join(e.socketDir, "orslog-"+testTopic+".sock")
}

func (e *Env) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.bin, args...)
	cmd.Dir = e.workDir
	cmd.Env = append(os.Environ(),
		"ORSLOG_TRANSPORT_SOCKET_DIR="+e.socketDir,
		"ORSLOG_TRANSPORT_TOPIC="+testTopic,
	)

	return cmd
}

// Emit runs a single emit command and returns its stdout
func (e *Env) Emit(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := e.command(append([]string{"emit"}, args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("emit failed: %w\nStderr:\n%s", err, stderr.String())
	}

	return stdout.String(), nil
}

// Runner manages a long lived orslog process for e2e tests
type Runner struct {
	env    *Env
	cmd    *exec.Cmd
	stdout *lockedBuffer
	stderr *lockedBuffer
}

// NewRunner creates a runner bound to env
func NewRunner(env *Env) *Runner {
	return &Runner{
		env:    env,
		stdout: &lockedBuffer{},
		stderr: &lockedBuffer{},
	}
}

// Start launches orslog with the given arguments
func (r *Runner) Start(args ...string) error {
	r.cmd = r.env.command(args...)
	r.cmd.Stdout = r.stdout
	r.cmd.Stderr = r.stderr

	if err := r.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start orslog: %w", err)
	}

	return nil
}

// StartViewer launches the headless viewer
func (r *Runner) StartViewer() error {
	return r.Start("--no-ui")
}

// Stop sends SIGTERM and waits for graceful shutdown
func (r *Runner) Stop() error {
	if r.cmd == nil || r.cmd.Process == nil || r.cmd.ProcessState != nil {
		return nil
	}

	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to send SIGTERM: %w", err)
	}

	done := make(chan error, 1)

	go func() {
		done <- r.cmd.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-time.After(10 * time.Second):
		r.cmd.Process.Kill()
		<-done

		return fmt.Errorf("process did not exit gracefully, killed")
	}
}

// WaitForLog blocks until pattern appears in stdout or timeout
func (r *Runner) WaitForLog(pattern string, timeout time.Duration) error {
	return waitFor(pattern, timeout, r.Output)
}

// WaitForStderr blocks until pattern appears in stderr or timeout
func (r *Runner) WaitForStderr(pattern string, timeout time.Duration) error {
	return waitFor(pattern, timeout, r.Stderr)
}

// WaitForSocket blocks until the viewer endpoint exists
func (r *Runner) WaitForSocket(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for socket %s\nStderr:\n%s", r.env.SocketPath(), r.Stderr())
		case <-ticker.C:
			if _, err := os.Stat(r.env.SocketPath()); err == nil {
				return nil
			}
		}
	}
}

// Output returns current stdout content
func (r *Runner) Output() string {
	return r.stdout.String()
}

// Stderr returns current stderr content
func (r *Runner) Stderr() string {
	return r.stderr.String()
}

// ExitCode returns process exit code (after Stop)
func (r *Runner) ExitCode() int {
	if r.cmd == nil || r.cmd.ProcessState == nil {
		return -1
	}

	return r.cmd.ProcessState.ExitCode()
}

func waitFor(pattern string, timeout time.Duration, output func() string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for log pattern %q\nOutput:\n%s", pattern, output())
		case <-ticker.C:
			if strings.Contains(output(), pattern) {
				return nil
			}
		}
	}
}

// indexOf returns the index of substr in s, or -1 if not found
func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
