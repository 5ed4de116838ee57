// Command wezlix-builder builds WezTerm, Helix and the wezlix launcher, and
// assembles Wezlix.app on macOS.
//
// Run it from the repository root, next to the wezterm and helix checkouts.
// Every flag can also be set through the environment with the
// WEZLIX_BUILDER_ prefix, e.g. WEZLIX_BUILDER_RELEASE=1.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/warpnine/wezlix/internal/build"
	"github.com/warpnine/wezlix/internal/launch"
	"github.com/warpnine/wezlix/internal/plist"
	"github.com/warpnine/wezlix/internal/system"
)

// EnvPrefix prefixes the environment variables bound to flags.
const EnvPrefix = "WEZLIX_BUILDER"

// hostOS decides whether the app is packaged after a build.
var hostOS = runtime.GOOS

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes the builder and returns the process exit code. A nil runner
// executes commands for real.
func run(args []string, stdout, stderr io.Writer, runner system.Runner) int {
	cmd := newRootCmd(stdout, stderr, runner)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = color.New(color.FgRed, color.Bold).Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// cargo and go also honor the variables their own tooling uses.
	_ = v.BindEnv("cargo", EnvPrefix+"_CARGO", "CARGO")
	_ = v.BindEnv("go", EnvPrefix+"_GO", "GO")
	return v
}

func newRootCmd(stdout, stderr io.Writer, runner system.Runner) *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:           "wezlix-builder",
		Short:         "Build WezTerm, Helix and the Wezlix app bundle",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBuilder(v, stdout, stderr, runner)
			if err != nil {
				return err
			}
			return b.Build(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("root", "", "repository root (default: current directory)")
	pf.Bool("release", false, "build with the release profiles")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("app-version", "0.1.0", "version written to Info.plist")

	f := cmd.Flags()
	f.Bool("clean", false, "run cargo clean for wezterm and helix first")
	f.String("cargo", "cargo", "cargo executable (env CARGO)")
	f.String("go", "go", "go executable (env GO)")
	f.Bool("package", false, "assemble the app bundle even when not on macOS")
	f.String("sign", "", `code signing identity for the bundle ("-" for ad-hoc)`)

	bindFlags(v, pf, f)

	cmd.AddCommand(
		newIconsCmd(v, stdout, stderr, runner),
		newVerifyCmd(v, stdout),
		newInspectCmd(v, stdout),
	)
	return cmd
}

// bindFlags makes every flag readable through v, so WEZLIX_BUILDER_<FLAG>
// applies when the flag is not given.
func bindFlags(v *viper.Viper, sets ...*pflag.FlagSet) {
	for _, set := range sets {
		set.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
		})
	}
}

func newIconsCmd(v *viper.Viper, stdout, stderr io.Writer, runner system.Runner) *cobra.Command {
	return &cobra.Command{
		Use:          "icons",
		Short:        "Render the iconset and convert it to wezlix.icns",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newBuilder(v, stdout, stderr, runner)
			if err != nil {
				return err
			}
			return b.CreateIcons(cmd.Context())
		},
	}
}

func newVerifyCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:          "verify [APP]",
		Short:        "Check that an app bundle contains what the launcher needs",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := appPath(v, args)
			if err != nil {
				return err
			}
			if err := build.Verify(app); err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintf(stdout, "%s is complete\n", app)
			return nil
		},
	}
}

func newInspectCmd(v *viper.Viper, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:          "inspect [APP]",
		Short:        "Print the Info.plist of an app bundle",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := appPath(v, args)
			if err != nil {
				return err
			}
			info, err := plist.Read(system.BundleInfoPlistPath(app))
			if err != nil {
				return err
			}
			return printInfo(stdout, info)
		},
	}
}

func printInfo(w io.Writer, info plist.InfoPlist) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		key   string
		value any
	}{
		{"CFBundleIdentifier", info.Identifier},
		{"CFBundleName", info.Name},
		{"CFBundleDisplayName", info.DisplayName},
		{"CFBundleExecutable", info.Executable},
		{"CFBundleShortVersionString", info.ShortVersionString},
		{"CFBundleVersion", info.Version},
		{"CFBundleIconFile", info.IconFile},
		{"CFBundlePackageType", info.PackageType},
		{"NSHighResolutionCapable", info.HighResolutionCapable},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%v\n", r.key, r.value)
	}
	return tw.Flush()
}

func projectRoot(v *viper.Viper) (string, error) {
	if root := v.GetString("root"); root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}

func appPath(v *viper.Viper, args []string) (string, error) {
	if len(args) == 1 {
		if !system.IsAppBundle(args[0]) {
			return "", fmt.Errorf("%s is not an app bundle", args[0])
		}
		return args[0], nil
	}
	root, err := projectRoot(v)
	if err != nil {
		return "", err
	}
	return build.NewLayout(root, v.GetBool("release")).AppDir(), nil
}

func newBuilder(v *viper.Viper, stdout, stderr io.Writer, runner system.Runner) (*build.Builder, error) {
	root, err := projectRoot(v)
	if err != nil {
		return nil, err
	}

	log := launch.NewLoggerTo(stderr, v.GetBool("debug") || system.IsDebugEnabled()).Logger
	if runner == nil {
		runner = &system.ExecRunner{Stdout: stdout, Stderr: stderr, Log: log}
	}

	b := build.New(root, build.Options{
		Release:      v.GetBool("release"),
		Clean:        v.GetBool("clean"),
		Cargo:        v.GetString("cargo"),
		Go:           v.GetString("go"),
		Version:      v.GetString("app-version"),
		Package:      v.GetBool("package"),
		SignIdentity: v.GetString("sign"),
	}, runner, stdout, log)
	b.GOOS = hostOS
	return b, nil
}
