//go:build unix

package system

import "golang.org/x/sys/unix"

// IsExecutable reports whether the current user may execute path.
func IsExecutable(path string) bool {
	if !FileExists(path) {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}
