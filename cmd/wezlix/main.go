// Command wezlix opens files in Helix running inside a WezTerm window.
//
// It is installed next to wezterm-gui and hx, typically as
// Wezlix.app/Contents/MacOS/wezlix, and exits with the terminal's exit status.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/warpnine/wezlix"
	"github.com/warpnine/wezlix/internal/launch"
	"github.com/warpnine/wezlix/internal/system"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, wezlix.DefaultRuntime))
}

// run executes the launcher and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, newRuntime func(*launch.Logger) wezlix.Runtime) int {
	cmd := newRootCmd(stderr, newRuntime)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// The wait launcher forwards signals to the terminal itself.
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var exit *launch.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func newRootCmd(stderr io.Writer, newRuntime func(*launch.Logger) wezlix.Runtime) *cobra.Command {
	cfg := new(wezlix.Config).FromEnv()
	var (
		detach   bool
		strategy string
	)

	cmd := &cobra.Command{
		Use:           "wezlix [flags] [files...]",
		Short:         "Open files in Helix inside WezTerm",
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Files = args
			if strategy != "" {
				s, err := launch.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				cfg.Strategy = s
			}
			if detach {
				cfg.WithDetach()
			}
			log := launch.NewLoggerTo(stderr, cfg.Debug)
			return wezlix.Run(cmd.Context(), cfg, newRuntime(log))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.WeztermConfig, "wezterm-config", "", "WezTerm configuration file (default: <config>/wezlix/wezlix.lua)")
	flags.StringVar(&cfg.HelixConfig, "helix-config", "", "Helix configuration file (default: <config>/wezlix/helix.toml)")
	flags.StringVar(&cfg.EnvFile, "env", "", "environment variables file (default: <config>/wezlix/env.toml)")
	flags.StringVar(&strategy, "strategy", system.GetString(system.EnvStrategy, ""), `launch strategy, "wait" or "detach" (env WEZLIX_STRATEGY)`)
	flags.BoolVar(&detach, "detach", false, "start the terminal and exit without waiting; same as --strategy detach")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	return cmd
}
