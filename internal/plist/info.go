// Package plist reads and writes the Info.plist of the Wezlix app bundle.
package plist

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"howett.net/plist"
)

// Bundle defaults.
const (
	DefaultBundleID   = "io.warpnine.wezlix"
	DefaultName       = "Wezlix"
	DefaultExecutable = "wezlix"
	DefaultIconFile   = "wezlix.icns"
)

// InfoPlist holds the Info.plist keys written for the bundle.
type InfoPlist struct {
	DevelopmentRegion     string `plist:"CFBundleDevelopmentRegion,omitempty"`
	Executable            string `plist:"CFBundleExecutable"`
	Identifier            string `plist:"CFBundleIdentifier"`
	Version               string `plist:"CFBundleVersion"`
	InfoDictionaryVersion string `plist:"CFBundleInfoDictionaryVersion,omitempty"`
	ShortVersionString    string `plist:"CFBundleShortVersionString,omitempty"`
	Name                  string `plist:"CFBundleName"`
	DisplayName           string `plist:"CFBundleDisplayName,omitempty"`
	IconFile              string `plist:"CFBundleIconFile,omitempty"`
	HighResolutionCapable bool   `plist:"NSHighResolutionCapable"`
	AutomaticGraphics     bool   `plist:"NSSupportsAutomaticGraphicsSwitching"`
	PackageType           string `plist:"CFBundlePackageType"`
}

// WezlixInfo returns the Info.plist for a Wezlix bundle at the given
// marketing version.
func WezlixInfo(version string) InfoPlist {
	return InfoPlist{
		DevelopmentRegion:     "en",
		Executable:            DefaultExecutable,
		Identifier:            DefaultBundleID,
		Version:               "1",
		InfoDictionaryVersion: "1.0",
		ShortVersionString:    version,
		Name:                  DefaultName,
		DisplayName:           DefaultName,
		IconFile:              DefaultIconFile,
		HighResolutionCapable: true,
		AutomaticGraphics:     true,
		PackageType:           "APPL",
	}
}

// Validate checks that the required keys are present.
func (p InfoPlist) Validate() error {
	if p.Identifier == "" {
		return fmt.Errorf("bundle identifier is required")
	}
	if p.Executable == "" {
		return fmt.Errorf("executable name is required")
	}
	if p.Name == "" {
		return fmt.Errorf("bundle name is required")
	}
	if p.Version == "" {
		return fmt.Errorf("version is required")
	}
	return nil
}

// Encode writes p as an XML property list.
func Encode(w io.Writer, p InfoPlist) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid info plist: %w", err)
	}
	enc := plist.NewEncoderForFormat(w, plist.XMLFormat)
	enc.Indent("\t")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode info plist: %w", err)
	}
	return nil
}

// Write encodes p to path, creating the parent directory.
func Write(path string, p InfoPlist) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Read decodes the property list at path. Any plist format is accepted.
func Read(path string) (InfoPlist, error) {
	var p InfoPlist
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if _, err := plist.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return p, nil
}
