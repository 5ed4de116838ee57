package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileAndDirExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "wezlix.lua")
	if err := os.WriteFile(file, []byte("return {}"), 0644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(tmpDir, "runtime")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantFile bool
		wantDir  bool
	}{
		{"file", file, true, false},
		{"directory", dir, false, true},
		{"missing", filepath.Join(tmpDir, "missing"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists() = %v, want %v", got, tt.wantFile)
			}
			if got := DirExists(tt.path); got != tt.wantDir {
				t.Errorf("DirExists() = %v, want %v", got, tt.wantDir)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	nested := filepath.Join(tmpDir, "runtime", "queries")
	if err := EnsureDir(nested, 0755); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if !DirExists(nested) {
		t.Errorf("Directory was not created: %s", nested)
	}

	if err := EnsureDir("", 0755); err == nil {
		t.Error("EnsureDir(\"\") expected error but got none")
	}
}

func TestBundlePaths(t *testing.T) {
	bundlePath := "/path/to/Wezlix.app"

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"BundleContentsPath", BundleContentsPath(bundlePath), "/path/to/Wezlix.app/Contents"},
		{"BundleExecutableDir", BundleExecutableDir(bundlePath), "/path/to/Wezlix.app/Contents/MacOS"},
		{"BundleResourcesDir", BundleResourcesDir(bundlePath), "/path/to/Wezlix.app/Contents/Resources"},
		{"BundleInfoPlistPath", BundleInfoPlistPath(bundlePath), "/path/to/Wezlix.app/Contents/Info.plist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestIsAppBundle(t *testing.T) {
	tmpDir := t.TempDir()

	appBundlePath := filepath.Join(tmpDir, "Wezlix.app")
	if err := os.MkdirAll(filepath.Join(appBundlePath, "Contents"), 0755); err != nil {
		t.Fatal(err)
	}
	fakeAppPath := filepath.Join(tmpDir, "Fake.app")
	if err := os.Mkdir(fakeAppPath, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"valid app bundle", appBundlePath, true},
		{"app without Contents", fakeAppPath, false},
		{"regular directory", tmpDir, false},
		{"non-existent path", filepath.Join(tmpDir, "missing.app"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAppBundle(tt.path); got != tt.want {
				t.Errorf("IsAppBundle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsExecutable(t *testing.T) {
	tmpDir := t.TempDir()

	exe := filepath.Join(tmpDir, "wezterm-gui")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(tmpDir, "helix.toml")
	if err := os.WriteFile(plain, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if !IsExecutable(exe) {
		t.Errorf("IsExecutable(%s) = false, want true", exe)
	}
	if IsExecutable(plain) {
		t.Errorf("IsExecutable(%s) = true, want false", plain)
	}
	if IsExecutable(tmpDir) {
		t.Errorf("IsExecutable(dir) = true, want false")
	}
	if IsExecutable(filepath.Join(tmpDir, "missing")) {
		t.Errorf("IsExecutable(missing) = true, want false")
	}
}
