package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// WaitLauncher runs the child with inherited stdio and waits for it to exit.
type WaitLauncher struct {
	Log *Logger

	// Stdin, Stdout and Stderr default to the process's own streams.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Launch starts cmd and blocks until it exits. Interrupt, terminate and hangup
// signals received meanwhile are forwarded to the child. A non-zero exit is
// reported as *ExitError.
func (w *WaitLauncher) Launch(ctx context.Context, cmd *Command) error {
	log := w.Log
	if log == nil {
		log = Discard()
	}

	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdin = pick(w.Stdin, os.Stdin)
	c.Stdout = pick(w.Stdout, os.Stdout)
	c.Stderr = pick(w.Stderr, os.Stderr)

	// Registered before Start so a signal arriving during startup is queued
	// for the child instead of killing the launcher.
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	log.Debug("starting process", "path", cmd.Path, "args", cmd.Args, "dir", cmd.Dir)
	if err := c.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	log.Debug("process started", "pid", c.Process.Pid)

	done := make(chan error, 1)
	go func() { done <- c.Wait() }()

	for {
		select {
		case sig := <-sigs:
			log.Debug("forwarding signal to child", "signal", sig, "pid", c.Process.Pid)
			_ = c.Process.Signal(sig)
		case <-ctx.Done():
			log.Debug("context cancelled, interrupting child", "pid", c.Process.Pid)
			_ = c.Process.Signal(os.Interrupt)
			ctx = context.Background()
		case err := <-done:
			return exitResult(err, log)
		}
	}
}

func exitResult(err error, log *Logger) error {
	if err == nil {
		log.Debug("process completed successfully")
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal.
			code = 128
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				code += int(status.Signal())
			}
		}
		log.Debug("process exited", "code", code)
		return &ExitError{Code: code}
	}
	return fmt.Errorf("wait for child: %w", err)
}

func pick(f, fallback *os.File) *os.File {
	if f != nil {
		return f
	}
	return fallback
}
