package launch

import (
	"fmt"
	"path/filepath"

	"github.com/warpnine/wezlix/internal/envfile"
)

// Executable names expected in the install directory.
const (
	TerminalExecutable = "wezterm-gui"
	EditorExecutable   = "hx"
)

// Options are the resolved inputs for one launch.
type Options struct {
	// WeztermConfig is passed to wezterm-gui as --config-file.
	WeztermConfig string
	// HelixConfig is passed to hx as --config.
	HelixConfig string
	// WorkDir is the terminal's starting directory.
	WorkDir string
	// InstallDir holds wezterm-gui, hx and runtime/.
	InstallDir string
	// Files are forwarded to hx unmodified and in order.
	Files []string
	// Env is merged into the inherited environment.
	Env envfile.Vars
}

// Command is a fully resolved child process invocation.
type Command struct {
	// Path is the executable to run.
	Path string
	// Args are the arguments after the program name.
	Args []string
	// Dir is the working directory of the child.
	Dir string
	// Env is the complete child environment as KEY=VALUE entries.
	Env []string
}

// Build constructs the terminal invocation that runs the editor:
//
//	<install>/wezterm-gui --config-file <wezterm> start --cwd <dir> <install>/hx --config <helix> files...
func Build(opts Options, environ []string) (*Command, error) {
	if opts.InstallDir == "" {
		return nil, fmt.Errorf("install directory cannot be empty")
	}
	if opts.WorkDir == "" {
		return nil, fmt.Errorf("working directory cannot be empty")
	}
	if opts.WeztermConfig == "" {
		return nil, fmt.Errorf("wezterm config path cannot be empty")
	}
	if opts.HelixConfig == "" {
		return nil, fmt.Errorf("helix config path cannot be empty")
	}

	args := make([]string, 0, 8+len(opts.Files))
	args = append(args,
		"--config-file", opts.WeztermConfig,
		"start",
		"--cwd", opts.WorkDir,
		filepath.Join(opts.InstallDir, EditorExecutable),
		"--config", opts.HelixConfig,
	)
	args = append(args, opts.Files...)

	return &Command{
		Path: filepath.Join(opts.InstallDir, TerminalExecutable),
		Args: args,
		Dir:  opts.WorkDir,
		Env:  envfile.Merge(environ, opts.Env),
	}, nil
}

// String renders the command line for logging.
func (c *Command) String() string {
	return fmt.Sprintf("%s %v", c.Path, c.Args)
}
