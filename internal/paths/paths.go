// Package paths resolves the per-user configuration files used by the launcher.
//
// Path computation and directory creation are separate steps: ConfigFile is
// pure, Ensure is the only operation that touches the filesystem.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Namespace is the directory name used under the platform config home.
const Namespace = "wezlix"

// Default file names inside the configuration directory.
const (
	WeztermConfigName = "wezlix.lua"
	HelixConfigName   = "helix.toml"
	EnvFileName       = "env.toml"
)

// Dirs describes where configuration files live.
type Dirs struct {
	// ConfigHome is the platform configuration base directory.
	ConfigHome string
	// Namespace is the application directory below ConfigHome.
	Namespace string
}

// Default returns the configuration directories following the host
// platform's convention ($XDG_CONFIG_HOME or ~/.config on Linux,
// ~/Library/Application Support on macOS).
func Default() Dirs {
	return Dirs{
		ConfigHome: xdg.ConfigHome,
		Namespace:  Namespace,
	}
}

// Dir returns the namespaced configuration directory.
func (d Dirs) Dir() string {
	return filepath.Join(d.ConfigHome, d.Namespace)
}

// ConfigFile returns the path of name inside the configuration directory.
// It does not create anything.
func (d Dirs) ConfigFile(name string) string {
	return filepath.Join(d.Dir(), name)
}

// Ensure creates the configuration directory if it does not exist.
func (d Dirs) Ensure() error {
	if d.ConfigHome == "" {
		return fmt.Errorf("config home cannot be empty")
	}
	if err := os.MkdirAll(d.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", d.Dir(), err)
	}
	return nil
}

// PlaceConfigFile ensures the configuration directory exists and returns the
// path of name inside it. The file itself is not created.
func (d Dirs) PlaceConfigFile(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("config file name cannot be empty")
	}
	if err := d.Ensure(); err != nil {
		return "", err
	}
	return d.ConfigFile(name), nil
}

// Resolve returns explicit when it is set, otherwise the placed default for name.
func (d Dirs) Resolve(explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return d.PlaceConfigFile(name)
}
