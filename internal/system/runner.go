package system

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Cmd is an external command run during the build.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
	// Stdout captures the command's output instead of the runner's writer.
	Stdout io.Writer
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *slog.Logger
}

// Run implements Runner. A non-zero exit status is an error.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdout = writerOr(cmd.Stdout, writerOr(r.Stdout, os.Stdout))
	c.Stderr = writerOr(r.Stderr, os.Stderr)

	if r.Log != nil {
		r.Log.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir, "env", cmd.Env)
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

// RecordingRunner records commands instead of running them.
type RecordingRunner struct {
	mu   sync.Mutex
	Cmds []Cmd
	// RunFunc, when set, is called for every command and may fail it.
	RunFunc func(ctx context.Context, cmd Cmd) error
}

// Run implements Runner.
func (r *RecordingRunner) Run(ctx context.Context, cmd Cmd) error {
	r.mu.Lock()
	r.Cmds = append(r.Cmds, cmd)
	r.mu.Unlock()
	if r.RunFunc != nil {
		return r.RunFunc(ctx, cmd)
	}
	return nil
}

// Names returns the recorded command lines.
func (r *RecordingRunner) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Cmds))
	for i, c := range r.Cmds {
		out[i] = c.String()
	}
	return out
}
