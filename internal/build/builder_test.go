package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warpnine/wezlix/internal/plist"
	"github.com/warpnine/wezlix/internal/system"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16"><rect width="16" height="16" fill="#336699"/></svg>`

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

// fakeProject lays out the build outputs and sources Package copies from.
func fakeProject(t *testing.T, release bool) string {
	t.Helper()
	root := t.TempDir()
	l := NewLayout(root, release)

	writeFile(t, l.IconSVG(), testSVG, 0644)
	writeFile(t, filepath.Join(l.HelixReleaseDir(), "hx"), "#!/bin/sh\n", 0755)
	for _, name := range []string{"wezlix", "wezterm", "wezterm-mux-server", "wezterm-gui", "strip-ansi-escapes"} {
		writeFile(t, filepath.Join(l.WeztermReleaseDir(), name), "#!/bin/sh\n", 0755)
	}
	for _, lib := range []string{"libEGL.dylib", "libGLESv1_CM.dylib", "libGLESv2.dylib"} {
		writeFile(t, filepath.Join(l.WeztermRoot(), "assets", "macos", "WezTerm.app", lib), "dylib", 0644)
	}
	rt := filepath.Join(l.HelixRoot(), "runtime")
	writeFile(t, filepath.Join(rt, "queries", "rust", "highlights.scm"), "(identifier) @variable", 0644)
	writeFile(t, filepath.Join(rt, "themes", "onedark.toml"), "", 0644)
	writeFile(t, filepath.Join(rt, "tutor"), "Welcome to the Helix editor", 0644)
	return root
}

func TestBuilder_Build_Commands(t *testing.T) {
	root := t.TempDir()
	runner := &system.RecordingRunner{}
	var out bytes.Buffer

	b := New(root, Options{Release: true, Clean: true, Cargo: "/usr/local/bin/cargo", Version: "0.2.0"}, runner, &out, nil)
	b.GOOS = "linux"

	require.NoError(t, b.Build(context.Background()))

	assert.Equal(t, []string{
		"/usr/local/bin/cargo clean",
		"/usr/local/bin/cargo clean",
		"/usr/local/bin/cargo build --profile release",
		"/usr/local/bin/cargo build --profile opt",
		"go build -ldflags -X main.version=0.2.0 -o " + filepath.Join(root, "target", "release", "wezlix") + " ./cmd/wezlix",
	}, runner.Names())

	assert.Equal(t, filepath.Join(root, "wezterm"), runner.Cmds[0].Dir)
	assert.Equal(t, filepath.Join(root, "helix"), runner.Cmds[1].Dir)
	assert.Equal(t, filepath.Join(root, "wezterm"), runner.Cmds[2].Dir)
	assert.Equal(t, filepath.Join(root, "helix"), runner.Cmds[3].Dir)
	assert.Equal(t, root, runner.Cmds[4].Dir)
	for _, c := range runner.Cmds[:4] {
		assert.Equal(t, []string{"CARGO_TARGET_DIR=../target"}, c.Env)
	}

	assert.DirExists(t, filepath.Join(root, "wezterm", "target", "release"))
	assert.Contains(t, out.String(), "Building Wezterm")
	assert.Contains(t, out.String(), "Building Helix")
	assert.NotContains(t, out.String(), "Building app package")
}

func TestBuilder_Build_DebugProfile(t *testing.T) {
	runner := &system.RecordingRunner{}
	b := New(t.TempDir(), Options{}, runner, &bytes.Buffer{}, nil)
	b.GOOS = "linux"

	require.NoError(t, b.Build(context.Background()))

	names := runner.Names()
	require.Len(t, names, 3)
	assert.Equal(t, "cargo build", names[0])
	assert.Equal(t, "cargo build", names[1])
	assert.Contains(t, names[2], filepath.Join("target", "debug", "wezlix"))
}

func TestBuilder_Build_StopsOnFailure(t *testing.T) {
	runner := &system.RecordingRunner{RunFunc: func(_ context.Context, c system.Cmd) error {
		if c.Dir != "" && filepath.Base(c.Dir) == "helix" {
			return errors.New("exit status 101")
		}
		return nil
	}}
	b := New(t.TempDir(), Options{}, runner, &bytes.Buffer{}, nil)
	b.GOOS = "darwin"

	err := b.Build(context.Background())
	require.Error(t, err)
	assert.Len(t, runner.Cmds, 2, "launcher must not be built after helix fails")
}

func TestBuilder_Package(t *testing.T) {
	root := fakeProject(t, true)
	runner := &system.RecordingRunner{}
	var out bytes.Buffer

	b := New(root, Options{Release: true, Version: "0.3.1", Package: true}, runner, &out, nil)
	b.GOOS = "linux"

	require.NoError(t, b.Package(context.Background()))

	l := b.Layout
	for _, name := range []string{"hx", "wezlix", "wezterm", "wezterm-mux-server", "wezterm-gui", "strip-ansi-escapes"} {
		assert.FileExists(t, filepath.Join(l.BinaryDir(), name))
	}
	for _, lib := range []string{"libEGL.dylib", "libGLESv1_CM.dylib", "libGLESv2.dylib"} {
		assert.FileExists(t, filepath.Join(l.AppDir(), lib))
	}
	assert.FileExists(t, filepath.Join(l.RuntimeDir(), "queries", "rust", "highlights.scm"))
	assert.FileExists(t, filepath.Join(l.RuntimeDir(), "themes", "onedark.toml"))
	assert.FileExists(t, filepath.Join(l.RuntimeDir(), "tutor"))
	assert.FileExists(t, filepath.Join(l.IconsetDir(), "icon_512x512@2x.png"))

	info, err := plist.Read(filepath.Join(l.ContentsDir(), "Info.plist"))
	require.NoError(t, err)
	assert.Equal(t, "0.3.1", info.ShortVersionString)
	assert.Equal(t, "wezlix", info.Executable)

	// iconutil only runs on macOS.
	assert.Empty(t, runner.Cmds)
	require.NoError(t, Verify(l.AppDir()))
	assert.Contains(t, out.String(), "Created 'Wezlix.app'")
}

func TestBuilder_Package_Darwin(t *testing.T) {
	root := fakeProject(t, false)
	runner := &system.RecordingRunner{}

	b := New(root, Options{SignIdentity: "-"}, runner, &bytes.Buffer{}, nil)
	b.GOOS = "darwin"

	require.NoError(t, b.Package(context.Background()))

	l := b.Layout
	assert.Equal(t, []string{
		"iconutil --convert icns " + l.IconsetDir() + " --output " + l.ICNSPath(),
		"codesign --sign - --force --deep --identifier io.warpnine.wezlix " + l.AppDir(),
		"codesign --verify --deep --strict " + l.AppDir(),
	}, runner.Names())
}

func TestBuilder_Package_AutoIdentity(t *testing.T) {
	root := fakeProject(t, true)
	runner := &system.RecordingRunner{}

	b := New(root, Options{Release: true, SignIdentity: "auto"}, runner, &bytes.Buffer{}, nil)
	b.GOOS = "linux"
	b.Identities = func(context.Context) ([]byte, error) {
		return []byte(`  1) ABCDEF "Developer ID Application: Warp Nine (TEAM123456)"` + "\n"), nil
	}

	require.NoError(t, b.Package(context.Background()))
	names := runner.Names()
	require.Len(t, names, 2)
	assert.Contains(t, names[0], "--sign Developer ID Application: Warp Nine (TEAM123456) --force --deep --timestamp --options runtime")
}

func TestBuilder_Package_MissingBinary(t *testing.T) {
	root := fakeProject(t, true)
	l := NewLayout(root, true)
	require.NoError(t, os.Remove(filepath.Join(l.WeztermReleaseDir(), "wezterm-gui")))

	b := New(root, Options{Release: true}, &system.RecordingRunner{}, &bytes.Buffer{}, nil)
	b.GOOS = "linux"

	err := b.Package(context.Background())
	assert.ErrorContains(t, err, "wezterm-gui")
}

func TestBuilder_CreateIcons_MissingSVG(t *testing.T) {
	b := New(t.TempDir(), Options{}, &system.RecordingRunner{}, &bytes.Buffer{}, nil)
	err := b.CreateIcons(context.Background())
	assert.ErrorContains(t, err, "read icon")
}

func TestNew_Defaults(t *testing.T) {
	b := New("/src", Options{}, &system.RecordingRunner{}, nil, nil)
	assert.Equal(t, "cargo", b.Options.Cargo)
	assert.Equal(t, "go", b.Options.Go)
	assert.Equal(t, "0.1.0", b.Options.Version)
	assert.NotNil(t, b.Out)
	assert.NotNil(t, b.Log)
}
