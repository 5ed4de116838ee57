package wezlix

import (
	"context"
	"errors"
	"os"

	"github.com/warpnine/wezlix/internal/envfile"
	"github.com/warpnine/wezlix/internal/launch"
	"github.com/warpnine/wezlix/internal/paths"
	"github.com/warpnine/wezlix/internal/system"
)

// Config holds the options of one launch.
// Empty paths fall back to the files in the configuration directory.
type Config struct {
	// WeztermConfig overrides the WezTerm configuration file.
	WeztermConfig string
	// HelixConfig overrides the Helix configuration file.
	HelixConfig string
	// EnvFile overrides the environment file. An explicit file must exist.
	EnvFile string
	// Files are opened by Helix, passed through unmodified.
	Files []string
	// Strategy selects whether the launcher waits for the terminal.
	Strategy launch.Strategy
	// Debug enables debug logging.
	Debug bool
}

// FromEnv loads configuration from environment variables.
func (c *Config) FromEnv() *Config {
	if c == nil {
		c = &Config{}
	}
	if system.IsDebugEnabled() {
		c.Debug = true
	}
	if system.IsDetachEnabled() {
		c.Strategy = launch.StrategyDetach
	}
	return c
}

// WithFiles appends files to open in the editor.
func (c *Config) WithFiles(files ...string) *Config {
	if c == nil {
		c = &Config{}
	}
	c.Files = append(c.Files, files...)
	return c
}

// WithDetach makes the launcher exit once the terminal has started.
func (c *Config) WithDetach() *Config {
	if c == nil {
		c = &Config{}
	}
	c.Strategy = launch.StrategyDetach
	return c
}

// Runtime supplies the process environment a launch depends on.
// Tests replace its members with fakes.
type Runtime struct {
	Dirs       paths.Dirs
	Executable system.ExecutableResolver
	Getwd      func() (string, error)
	Home       func() (string, error)
	// Environ is the inherited environment; nil means os.Environ.
	Environ func() []string
	// Launcher starts the command. When nil, Run uses a launch.Manager for
	// the configured strategy.
	Launcher launch.Launcher
	Log      *launch.Logger
}

// DefaultRuntime wires the real implementations.
func DefaultRuntime(log *launch.Logger) Runtime {
	if log == nil {
		log = launch.Discard()
	}
	return Runtime{
		Dirs:       paths.Default(),
		Executable: system.OSExecutable{},
		Getwd:      os.Getwd,
		Home:       system.HomeDir,
		Environ:    os.Environ,
		Log:        log,
	}
}

// Prepare resolves cfg into the terminal command. It stops at the first
// failure.
func Prepare(cfg *Config, rt Runtime) (*launch.Command, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	log := rt.Log
	if log == nil {
		log = launch.Discard()
	}

	weztermConfig, err := rt.Dirs.Resolve(cfg.WeztermConfig, paths.WeztermConfigName)
	if err != nil {
		return nil, configError("wezterm", err)
	}
	helixConfig, err := rt.Dirs.Resolve(cfg.HelixConfig, paths.HelixConfigName)
	if err != nil {
		return nil, configError("helix", err)
	}
	envPath, err := rt.Dirs.Resolve(cfg.EnvFile, paths.EnvFileName)
	if err != nil {
		return nil, configError("environment", err)
	}

	if rt.Executable == nil {
		return nil, &Error{Op: "resolve install directory", Err: errors.New("no executable resolver")}
	}
	installDir, err := system.InstallDir(rt.Executable)
	if err != nil {
		return nil, &Error{
			Op:   "resolve install directory",
			Err:  err,
			Help: "wezlix must be installed next to wezterm-gui and hx",
		}
	}

	workDir, err := system.WorkingDir(rt.Getwd, rt.Home)
	if err != nil {
		return nil, &Error{Op: "resolve working directory", Err: err}
	}

	vars, err := envfile.Load(envPath, cfg.EnvFile != "")
	if err != nil {
		return nil, &Error{
			Op:   "load environment file",
			Err:  err,
			Help: "values in env.toml must be strings, e.g. EDITOR = \"hx\"",
		}
	}

	environ := os.Environ
	if rt.Environ != nil {
		environ = rt.Environ
	}
	cmd, err := launch.Build(launch.Options{
		WeztermConfig: weztermConfig,
		HelixConfig:   helixConfig,
		WorkDir:       workDir,
		InstallDir:    installDir,
		Files:         cfg.Files,
		Env:           vars,
	}, environ())
	if err != nil {
		return nil, &Error{Op: "build command", Err: err}
	}

	log.Debug("resolved launch",
		"install_dir", installDir,
		"work_dir", workDir,
		"wezterm_config", weztermConfig,
		"helix_config", helixConfig,
		"env_file", envPath,
		"env_keys", vars.Keys(),
		"files", len(cfg.Files))
	return cmd, nil
}

// Run prepares the command and starts it. A non-zero exit of the terminal is
// returned as *launch.ExitError.
func Run(ctx context.Context, cfg *Config, rt Runtime) error {
	if cfg == nil {
		cfg = &Config{}
	}
	cmd, err := Prepare(cfg, rt)
	if err != nil {
		return err
	}

	launcher := rt.Launcher
	if launcher == nil {
		log := rt.Log
		if log == nil {
			log = launch.Discard()
		}
		launcher = launch.New(cfg.Strategy, log)
	}

	if err := launcher.Launch(ctx, cmd); err != nil {
		var exit *launch.ExitError
		if errors.As(err, &exit) {
			return exit
		}
		return &Error{
			Op:   "start terminal",
			Err:  err,
			Help: "check that wezterm-gui in the install directory is executable",
		}
	}
	return nil
}

func configError(kind string, err error) error {
	return &Error{
		Op:   "resolve " + kind + " config",
		Err:  err,
		Help: "set XDG_CONFIG_HOME or pass the file explicitly",
	}
}
