// Package wezlix launches the Helix editor inside a WezTerm window.
//
// The launcher lives next to wezterm-gui and hx in an install directory,
// usually Wezlix.app/Contents/MacOS. It resolves per-user configuration,
// merges an optional environment file into the inherited environment and
// starts the terminal with the editor as its program:
//
//	cfg := new(wezlix.Config).FromEnv().WithFiles("main.go")
//	if err := wezlix.Run(ctx, cfg, wezlix.DefaultRuntime(log)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// Unless overridden, configuration files are read from the wezlix directory
// under the platform config home:
//
//	wezlix.lua   WezTerm configuration
//	helix.toml   Helix configuration
//	env.toml     extra environment variables, string values only
//
// # Environment Variables
//
//   - WEZLIX_DEBUG=1: enable debug logging
//   - WEZLIX_DETACH=1: start the terminal and exit without waiting
//   - WEZLIX_LOG_JSON=1: log as JSON
//   - WEZLIX_LOG_DEST=file:<path>|both:<path>: log destination
//   - WEZLIX_LOG_TIME=1: include timestamps in log records
package wezlix
