package system

import (
	"os"
	"strings"
)

// Environment variables read by wezlix.
const (
	EnvDebug   = "WEZLIX_DEBUG"
	EnvLogJSON = "WEZLIX_LOG_JSON"
	EnvLogDest = "WEZLIX_LOG_DEST"
	EnvLogTime = "WEZLIX_LOG_TIME"
	EnvDetach  = "WEZLIX_DETACH"
	// EnvStrategy names the launch strategy ("wait" or "detach").
	EnvStrategy = "WEZLIX_STRATEGY"
)

// GetBool returns the boolean value of an environment variable.
// Returns true if the variable is set to "1", "true", "yes", or "on" (case-insensitive).
func GetBool(key string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// GetString returns the string value of an environment variable,
// or defaultValue if it is unset or empty.
func GetString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// IsDebugEnabled reports whether WEZLIX_DEBUG is set.
func IsDebugEnabled() bool {
	return GetBool(EnvDebug)
}

// IsDetachEnabled reports whether WEZLIX_DETACH is set.
func IsDetachEnabled() bool {
	return GetBool(EnvDetach)
}
