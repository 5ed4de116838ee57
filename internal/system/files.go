// Package system provides filesystem and process-environment helpers for wezlix.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return os.MkdirAll(path, perm)
}

// BundleContentsPath returns the Contents directory of an app bundle.
func BundleContentsPath(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents")
}

// BundleExecutableDir returns the directory holding the bundle's executables.
func BundleExecutableDir(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", "MacOS")
}

// BundleResourcesDir returns the Resources directory of an app bundle.
func BundleResourcesDir(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", "Resources")
}

// BundleInfoPlistPath returns the path to the Info.plist in an app bundle.
func BundleInfoPlistPath(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", "Info.plist")
}

// IsAppBundle checks if the given path appears to be an app bundle.
func IsAppBundle(path string) bool {
	path = filepath.Clean(path)
	if !strings.HasSuffix(path, ".app") {
		return false
	}
	return DirExists(BundleContentsPath(path))
}
