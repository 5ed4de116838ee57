// Package launch starts the terminal emulator with the editor as its command.
package launch

import (
	"context"
	"fmt"
)

// Strategy selects how the child process is started.
type Strategy int

const (
	// StrategyWait starts the child and waits for it, propagating its exit status.
	StrategyWait Strategy = iota
	// StrategyDetach starts the child in its own session and returns immediately.
	StrategyDetach
)

// String returns a string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyWait:
		return "wait"
	case StrategyDetach:
		return "detach"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a strategy name back into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "wait":
		return StrategyWait, nil
	case "detach":
		return StrategyDetach, nil
	default:
		return 0, fmt.Errorf("unknown launch strategy %q", name)
	}
}

// Launcher starts a resolved command.
type Launcher interface {
	Launch(ctx context.Context, cmd *Command) error
}

// ExitError reports a child that exited unsuccessfully.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("child exited with status %d", e.Code)
}

// ExitCode returns the child's exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Manager dispatches to the launcher for the configured strategy.
type Manager struct {
	Strategy Strategy

	waitLauncher   Launcher
	detachLauncher Launcher
	log            *Logger
}

// New creates a manager with the default launchers.
func New(strategy Strategy, log *Logger) *Manager {
	return NewWithLaunchers(strategy, &WaitLauncher{Log: log}, &DetachLauncher{Log: log}, log)
}

// NewWithLaunchers creates a manager with custom launchers.
func NewWithLaunchers(strategy Strategy, wait, detach Launcher, log *Logger) *Manager {
	if log == nil {
		log = Discard()
	}
	return &Manager{
		Strategy:       strategy,
		waitLauncher:   wait,
		detachLauncher: detach,
		log:            log,
	}
}

// Launch starts cmd using the configured strategy.
func (m *Manager) Launch(ctx context.Context, cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}
	m.log.Debug("selected launch strategy", "strategy", m.Strategy)

	switch m.Strategy {
	case StrategyWait:
		return m.waitLauncher.Launch(ctx, cmd)
	case StrategyDetach:
		return m.detachLauncher.Launch(ctx, cmd)
	default:
		return fmt.Errorf("unknown launch strategy: %v", m.Strategy)
	}
}
