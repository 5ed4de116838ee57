package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// ExecutableResolver reports the path of the running executable.
type ExecutableResolver interface {
	Executable() (string, error)
}

// OSExecutable resolves the running executable with os.Executable.
type OSExecutable struct{}

// Executable implements ExecutableResolver.
func (OSExecutable) Executable() (string, error) {
	return os.Executable()
}

// StaticExecutable always reports the same path.
type StaticExecutable string

// Executable implements ExecutableResolver.
func (s StaticExecutable) Executable() (string, error) {
	if s == "" {
		return "", fmt.Errorf("executable path is empty")
	}
	return string(s), nil
}

// ResolveExecutable returns the running executable's path. When that path is
// a symbolic link, its target is returned as a canonical absolute path.
func ResolveExecutable(r ExecutableResolver) (string, error) {
	path, err := r.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to determine current executable: %w", err)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat executable %s: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	// Relative targets are relative to the link's directory, not the cwd.
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to make %s absolute: %w", target, err)
	}
	canonical, err := filepath.EvalSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s: %w", target, err)
	}
	return canonical, nil
}

// InstallDir returns the directory containing the resolved executable.
// Sibling executables and the runtime directory are located there.
func InstallDir(r ExecutableResolver) (string, error) {
	path, err := ResolveExecutable(r)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// HomeDir returns the invoking user's home directory.
func HomeDir() (string, error) {
	return homedir.Dir()
}

// WorkingDir returns the current working directory, substituting the home
// directory when the working directory is the filesystem root. Finder
// launches apps with "/" as their working directory.
func WorkingDir(getwd, home func() (string, error)) (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	if !isRoot(cwd) {
		return cwd, nil
	}
	dir, err := home()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	if dir == "" {
		return "", fmt.Errorf("home directory is empty")
	}
	return dir, nil
}

func isRoot(path string) bool {
	clean := filepath.Clean(path)
	return clean == filepath.VolumeName(clean)+string(filepath.Separator)
}
