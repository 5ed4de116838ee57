package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// DetachLauncher starts the child in its own session and returns without
// waiting, so the launcher can exit while the terminal keeps running.
type DetachLauncher struct {
	Log *Logger
}

// Launch starts cmd and releases it.
func (d *DetachLauncher) Launch(ctx context.Context, cmd *Command) error {
	log := d.Log
	if log == nil {
		log = Discard()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer func() { _ = devNull.Close() }()

	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdin = devNull
	c.Stdout = devNull
	c.Stderr = devNull
	c.SysProcAttr = detachedAttr()

	log.Debug("starting detached process", "path", cmd.Path, "args", cmd.Args, "dir", cmd.Dir)
	if err := c.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	log.Debug("detached process started", "pid", c.Process.Pid)

	if err := c.Process.Release(); err != nil {
		return fmt.Errorf("release child process: %w", err)
	}
	return nil
}
