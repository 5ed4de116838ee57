package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"

	"github.com/warpnine/wezlix/internal/bundle"
	"github.com/warpnine/wezlix/internal/icon"
	"github.com/warpnine/wezlix/internal/plist"
	"github.com/warpnine/wezlix/internal/system"
)

// Options control a build.
type Options struct {
	// Release builds WezTerm with the release profile and Helix with opt.
	Release bool
	// Clean runs cargo clean for both dependencies first.
	Clean bool
	// Cargo is the cargo executable.
	Cargo string
	// Go is the go executable used to build the launcher.
	Go string
	// Version is the marketing version written to Info.plist.
	Version string
	// Package assembles the bundle even when not running on macOS.
	Package bool
	// SignIdentity code signs the finished bundle when set. "auto" picks an
	// identity from the keychain.
	SignIdentity string
}

// Builder runs the build steps.
type Builder struct {
	Layout  Layout
	Options Options
	Runner  system.Runner
	Out     io.Writer
	Log     *slog.Logger

	// GOOS overrides runtime.GOOS.
	GOOS string
	// Identities lists keychain signing identities for SignIdentity "auto".
	Identities bundle.IdentityQuery
}

// New returns a Builder for the project at root.
func New(root string, opts Options, runner system.Runner, out io.Writer, log *slog.Logger) *Builder {
	if opts.Cargo == "" {
		opts.Cargo = "cargo"
	}
	if opts.Go == "" {
		opts.Go = "go"
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		Layout:     NewLayout(root, opts.Release),
		Options:    opts,
		Runner:     runner,
		Out:        out,
		Log:        log,
		GOOS:       runtime.GOOS,
		Identities: bundle.KeychainIdentities(runner),
	}
}

var stepColor = color.New(color.FgCyan, color.Bold)

func (b *Builder) step(format string, args ...any) {
	_, _ = stepColor.Fprintf(b.Out, format+"\n", args...)
}

// Build compiles the dependencies and the launcher, then packages the app on
// macOS. Any failing command stops the build.
func (b *Builder) Build(ctx context.Context) error {
	if b.Options.Clean {
		b.step("Cleaning app Wezterm and Helix dependencies")
		if err := b.cleanDependency(ctx, b.Layout.WeztermRoot()); err != nil {
			return err
		}
		if err := b.cleanDependency(ctx, b.Layout.HelixRoot()); err != nil {
			return err
		}
	}

	b.step("Building Wezterm")
	// wezterm-gui's build script expects its own target/release directory.
	if err := system.EnsureDir(filepath.Join(b.Layout.WeztermRoot(), "target", "release"), 0755); err != nil {
		return fmt.Errorf("create wezterm target directory: %w", err)
	}
	if err := b.buildDependency(ctx, b.Layout.WeztermRoot(), b.Layout.WeztermProfile()); err != nil {
		return err
	}

	b.step("Building Helix")
	if err := b.buildDependency(ctx, b.Layout.HelixRoot(), b.Layout.HelixProfile()); err != nil {
		return err
	}

	b.step("Building Wezlix launcher")
	if err := b.buildLauncher(ctx); err != nil {
		return err
	}

	if b.GOOS != "darwin" && !b.Options.Package {
		b.Log.Info("skipping app package on non-macOS host", "goos", b.GOOS)
		return nil
	}
	return b.Package(ctx)
}

func (b *Builder) cleanDependency(ctx context.Context, dir string) error {
	return b.Runner.Run(ctx, system.Cmd{
		Name: b.Options.Cargo,
		Args: []string{"clean"},
		Dir:  dir,
		Env:  []string{"CARGO_TARGET_DIR=../target"},
	})
}

func (b *Builder) buildDependency(ctx context.Context, dir, profile string) error {
	args := []string{"build"}
	if profile != "" {
		args = append(args, "--profile", profile)
	}
	return b.Runner.Run(ctx, system.Cmd{
		Name: b.Options.Cargo,
		Args: args,
		Dir:  dir,
		Env:  []string{"CARGO_TARGET_DIR=../target"},
	})
}

func (b *Builder) buildLauncher(ctx context.Context) error {
	out := filepath.Join(b.Layout.WeztermReleaseDir(), "wezlix")
	return b.Runner.Run(ctx, system.Cmd{
		Name: b.Options.Go,
		Args: []string{
			"build",
			"-ldflags", "-X main.version=" + b.Options.Version,
			"-o", out,
			"./cmd/wezlix",
		},
		Dir: b.Layout.Root,
	})
}

// Package assembles Wezlix.app from already built binaries.
func (b *Builder) Package(ctx context.Context) error {
	app, err := bundle.New(b.Layout.AppDir())
	if err != nil {
		return err
	}

	b.step("Cleaning app package")
	if err := app.Reset(); err != nil {
		return err
	}

	b.step("Creating icons")
	if err := b.CreateIcons(ctx); err != nil {
		return err
	}

	b.step("Building app package")
	if err := app.WriteInfoPlist(plist.WezlixInfo(b.Options.Version)); err != nil {
		return err
	}
	if err := app.AddExecutables(b.binaries()...); err != nil {
		return err
	}
	if err := app.AddToRoot(b.glLibraries()...); err != nil {
		return err
	}
	if err := app.AddRuntime(b.runtimeDirs()...); err != nil {
		return err
	}

	if b.Options.SignIdentity != "" {
		b.step("Signing app package")
		identity, err := bundle.ResolveIdentity(ctx, b.Options.SignIdentity, b.Identities)
		if err != nil {
			return err
		}
		if err := app.Sign(ctx, b.Runner, identity, plist.DefaultBundleID); err != nil {
			return err
		}
		if err := app.VerifySignature(ctx, b.Runner); err != nil {
			return err
		}
	}

	b.step("Created '%s' in '%s'", AppName, b.Layout.AppParentDir())
	return nil
}

// CreateIcons renders the iconset and converts it to the bundle's .icns.
// Conversion needs iconutil and only runs on macOS.
func (b *Builder) CreateIcons(ctx context.Context) error {
	svg, err := os.ReadFile(b.Layout.IconSVG())
	if err != nil {
		return fmt.Errorf("read icon: %w", err)
	}
	if err := icon.WriteIconset(ctx, svg, b.Layout.IconsetDir()); err != nil {
		return fmt.Errorf("render iconset: %w", err)
	}

	if b.GOOS != "darwin" {
		b.Log.Warn("iconutil unavailable, skipping icns conversion", "goos", b.GOOS)
		return nil
	}
	return icon.ConvertICNS(ctx, b.Runner, b.Layout.IconsetDir(), b.Layout.ICNSPath())
}

func (b *Builder) binaries() []string {
	wez := b.Layout.WeztermReleaseDir()
	return []string{
		filepath.Join(b.Layout.HelixReleaseDir(), "hx"),
		filepath.Join(wez, "wezlix"),
		filepath.Join(wez, "wezterm"),
		filepath.Join(wez, "wezterm-mux-server"),
		filepath.Join(wez, "wezterm-gui"),
		filepath.Join(wez, "strip-ansi-escapes"),
	}
}

func (b *Builder) glLibraries() []string {
	assets := filepath.Join(b.Layout.WeztermRoot(), "assets", "macos", "WezTerm.app")
	return []string{
		filepath.Join(assets, "libEGL.dylib"),
		filepath.Join(assets, "libGLESv1_CM.dylib"),
		filepath.Join(assets, "libGLESv2.dylib"),
	}
}

func (b *Builder) runtimeDirs() []string {
	rt := filepath.Join(b.Layout.HelixRoot(), "runtime")
	return []string{
		filepath.Join(rt, "queries"),
		filepath.Join(rt, "themes"),
		filepath.Join(rt, "tutor"),
	}
}

// Verify checks that the bundle at appDir can be launched.
func Verify(appDir string) error {
	app, err := bundle.New(appDir)
	if err != nil {
		return err
	}
	return app.Verify()
}
