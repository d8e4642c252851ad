// Package shell runs external build commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/ui/style"
	"go.trai.ch/zerr"
)

// DefaultWaitDelay is how long a child gets to exit after an interrupt before it is killed.
const DefaultWaitDelay = 10 * time.Second

// Runner implements ports.CommandRunner using os/exec and, on interactive
// terminals, a pseudo-terminal.
type Runner struct {
	logger    ports.Logger
	stdout    io.Writer
	stderr    io.Writer
	usePTY    bool
	waitDelay time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the writers receiving the child's output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithPTY attaches children to a pseudo-terminal when enable is true.
func WithPTY(enable bool) Option {
	return func(r *Runner) {
		r.usePTY = enable
	}
}

// WithWaitDelay overrides DefaultWaitDelay.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.waitDelay = d
	}
}

// NewRunner creates a Runner streaming to the process stdout and stderr.
func NewRunner(logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{
		logger:    logger,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		waitDelay: DefaultWaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and waits for it. No timeout is applied; only ctx
// cancellation stops the child.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	if len(cmd.Args) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrEmptyCommand, string(cmd.Phase)), "phase", string(cmd.Phase))
	}

	line := cmd.String()
	if cmd.DryRun {
		r.logger.Info("[dry-run] " + line)
		return nil
	}

	if ctx.Err() != nil {
		return interrupted(cmd.Phase, line)
	}

	r.logger.Info(style.Arrow + " " + line)

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...) //nolint:gosec // commands are assembled from the build plan
	c.Dir = cmd.Dir
	if cmd.Env.Len() > 0 {
		c.Env = cmd.Env.Entries()
	}
	c.Cancel = func() error {
		return interrupt(c.Process)
	}
	c.WaitDelay = r.waitDelay

	var err error
	if c.Err != nil {
		err = c.Err
	} else {
		err = r.execute(c)
	}
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return interrupted(cmd.Phase, line)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ExecutionError{
			Phase:    cmd.Phase,
			Command:  line,
			ExitCode: exitErr.ExitCode(),
			Err:      err,
		}
	}

	return &domain.ExecutionError{
		Phase:    cmd.Phase,
		Command:  line,
		ExitCode: -1,
		Err:      domain.Cause(domain.ErrCommandStart, err),
	}
}

func (r *Runner) execute(c *exec.Cmd) error {
	if r.usePTY && runtime.GOOS != "windows" {
		ptmx, err := pty.Start(c)
		if err != nil {
			return zerr.Wrap(err, "failed to start pty")
		}
		return waitPTY(c, ptmx, r.stdout)
	}

	c.Stdin = os.Stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr
	if err := c.Start(); err != nil {
		return err
	}
	return c.Wait()
}

// waitPTY copies the merged terminal output until the child exits.
func waitPTY(c *exec.Cmd, ptmx *os.File, out io.Writer) error {
	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading a pty after the child exits returns EIO; that is the normal end.
		_, _ = io.Copy(out, ptmx)
	}()

	err := c.Wait()
	_ = ptmx.Close()
	<-ioDone
	return err
}

func interrupt(p *os.Process) error {
	if p == nil {
		return nil
	}
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.Signal(os.Interrupt)
}

func interrupted(phase domain.Phase, line string) error {
	return zerr.With(zerr.Wrap(domain.ErrInterrupted, string(phase)), "command", line)
}
