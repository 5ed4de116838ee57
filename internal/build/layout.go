// Package build compiles WezTerm, Helix and the launcher, then assembles
// Wezlix.app around the resulting binaries.
package build

import (
	"path/filepath"

	"github.com/warpnine/wezlix/internal/system"
)

// AppName is the bundle directory name.
const AppName = "Wezlix.app"

// Layout is the set of paths used by a build rooted at Root.
type Layout struct {
	Root    string
	Release bool
}

// NewLayout returns the layout for a project checkout at root.
func NewLayout(root string, release bool) Layout {
	return Layout{Root: root, Release: release}
}

// TargetDir is the shared cargo target directory.
func (l Layout) TargetDir() string { return filepath.Join(l.Root, "target") }

// WeztermRoot is the WezTerm source tree.
func (l Layout) WeztermRoot() string { return filepath.Join(l.Root, "wezterm") }

// HelixRoot is the Helix source tree.
func (l Layout) HelixRoot() string { return filepath.Join(l.Root, "helix") }

// ResourceDir holds the icon sources.
func (l Layout) ResourceDir() string { return filepath.Join(l.Root, "resources") }

// IconSVG is the vector app icon.
func (l Layout) IconSVG() string { return filepath.Join(l.ResourceDir(), "wezlix.svg") }

// IconsetDir is where rendered PNGs are written before conversion.
func (l Layout) IconsetDir() string { return filepath.Join(l.ResourceDir(), "wezlix.iconset") }

// WeztermProfile is the cargo profile for WezTerm, or "" for the dev profile.
func (l Layout) WeztermProfile() string {
	if l.Release {
		return "release"
	}
	return ""
}

// HelixProfile is the cargo profile for Helix, or "" for the dev profile.
func (l Layout) HelixProfile() string {
	if l.Release {
		return "opt"
	}
	return ""
}

// WeztermReleaseDir holds the WezTerm binaries and the launcher.
func (l Layout) WeztermReleaseDir() string {
	return filepath.Join(l.TargetDir(), profileDir(l.WeztermProfile()))
}

// HelixReleaseDir holds the hx binary.
func (l Layout) HelixReleaseDir() string {
	return filepath.Join(l.TargetDir(), profileDir(l.HelixProfile()))
}

// AppParentDir contains the assembled bundle.
func (l Layout) AppParentDir() string { return filepath.Join(l.TargetDir(), "app") }

// AppDir is the bundle itself.
func (l Layout) AppDir() string { return filepath.Join(l.AppParentDir(), AppName) }

// ContentsDir is the bundle's Contents directory.
func (l Layout) ContentsDir() string { return system.BundleContentsPath(l.AppDir()) }

// BinaryDir is Contents/MacOS, the launcher's install directory.
func (l Layout) BinaryDir() string { return system.BundleExecutableDir(l.AppDir()) }

// ExtrasDir is Contents/Resources.
func (l Layout) ExtrasDir() string { return system.BundleResourcesDir(l.AppDir()) }

// RuntimeDir is the Helix runtime next to hx.
func (l Layout) RuntimeDir() string { return filepath.Join(l.BinaryDir(), "runtime") }

// ICNSPath is the converted bundle icon.
func (l Layout) ICNSPath() string { return filepath.Join(l.ExtrasDir(), "wezlix.icns") }

func profileDir(profile string) string {
	if profile == "" {
		return "debug"
	}
	return profile
}
