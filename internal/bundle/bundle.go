// Package bundle assembles and checks the Wezlix macOS app bundle.
//
// The launcher expects wezterm-gui, hx and the Helix runtime directory to be
// siblings in Contents/MacOS; Verify checks exactly that contract.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/warpnine/wezlix/internal/plist"
	"github.com/warpnine/wezlix/internal/system"
)

// Required members of the install directory.
var (
	RequiredExecutables = []string{"wezterm-gui", "hx"}
	// RuntimeEntries live under runtime/. Helix ships tutor as a plain file.
	RuntimeEntries = []string{"queries", "themes", "tutor"}
)

// Bundle is an app bundle directory on disk.
type Bundle struct {
	// Path is the full path to the .app bundle directory.
	Path string
}

// New returns a Bundle at path.
func New(path string) (*Bundle, error) {
	if path == "" {
		return nil, fmt.Errorf("bundle path cannot be empty")
	}
	return &Bundle{Path: path}, nil
}

// ContentsDir returns Contents.
func (b *Bundle) ContentsDir() string { return system.BundleContentsPath(b.Path) }

// BinaryDir returns Contents/MacOS.
func (b *Bundle) BinaryDir() string { return system.BundleExecutableDir(b.Path) }

// ResourcesDir returns Contents/Resources.
func (b *Bundle) ResourcesDir() string { return system.BundleResourcesDir(b.Path) }

// RuntimeDir returns Contents/MacOS/runtime.
func (b *Bundle) RuntimeDir() string { return filepath.Join(b.BinaryDir(), "runtime") }

// InfoPlistPath returns Contents/Info.plist.
func (b *Bundle) InfoPlistPath() string { return system.BundleInfoPlistPath(b.Path) }

// Reset removes any previous bundle and recreates the empty skeleton.
func (b *Bundle) Reset() error {
	if err := os.RemoveAll(b.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old bundle: %w", err)
	}
	for _, dir := range []string{
		b.BinaryDir(),
		b.ResourcesDir(),
		filepath.Join(b.RuntimeDir(), "queries"),
		filepath.Join(b.RuntimeDir(), "themes"),
	} {
		if err := system.EnsureDir(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// WriteInfoPlist writes Contents/Info.plist.
func (b *Bundle) WriteInfoPlist(info plist.InfoPlist) error {
	if err := plist.Write(b.InfoPlistPath(), info); err != nil {
		return fmt.Errorf("write Info.plist: %w", err)
	}
	return nil
}

// CopyInto copies each source file or directory into dir, keeping its base
// name. Existing files are overwritten.
func CopyInto(dir string, sources ...string) error {
	if err := system.EnsureDir(dir, 0755); err != nil {
		return err
	}
	opts := copy.Options{
		OnDirExists: func(src, dest string) copy.DirExistsAction { return copy.Merge },
	}
	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("missing bundle item %s: %w", src, err)
		}
		dest := filepath.Join(dir, filepath.Base(src))
		if err := copy.Copy(src, dest, opts); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
		}
	}
	return nil
}

// AddExecutables copies binaries into Contents/MacOS.
func (b *Bundle) AddExecutables(paths ...string) error {
	return CopyInto(b.BinaryDir(), paths...)
}

// AddRuntime copies Helix runtime directories into Contents/MacOS/runtime.
func (b *Bundle) AddRuntime(dirs ...string) error {
	return CopyInto(b.RuntimeDir(), dirs...)
}

// AddToRoot copies items into the bundle root, next to Contents.
func (b *Bundle) AddToRoot(paths ...string) error {
	return CopyInto(b.Path, paths...)
}

// Validate checks that the bundle has the basic macOS structure.
func (b *Bundle) Validate() error {
	if b.Path == "" {
		return fmt.Errorf("bundle path not set")
	}
	if _, err := os.Stat(b.Path); err != nil {
		return fmt.Errorf("bundle does not exist: %w", err)
	}
	for _, path := range []string{b.ContentsDir(), b.BinaryDir(), b.InfoPlistPath()} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("required bundle component missing: %s", path)
		}
	}
	return nil
}

// Verify checks the bundle structure and the install layout the launcher
// depends on.
func (b *Bundle) Verify() error {
	if err := b.Validate(); err != nil {
		return err
	}
	return VerifyInstallDir(b.BinaryDir())
}

// VerifyInstallDir checks that dir holds the executables and runtime
// entries the launcher runs.
func VerifyInstallDir(dir string) error {
	for _, name := range RequiredExecutables {
		path := filepath.Join(dir, name)
		if !system.FileExists(path) {
			return fmt.Errorf("required executable missing: %s", path)
		}
		if !system.IsExecutable(path) {
			return fmt.Errorf("not executable: %s", path)
		}
	}
	runtime := filepath.Join(dir, "runtime")
	if !system.DirExists(runtime) {
		return fmt.Errorf("runtime directory missing: %s", runtime)
	}
	for _, name := range RuntimeEntries {
		path := filepath.Join(runtime, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("runtime entry missing: %s", path)
		}
	}
	return nil
}
