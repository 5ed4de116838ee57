// Package envfile reads the environment file applied to the launched terminal.
//
// The file is a flat TOML table whose values are all strings:
//
//	EDITOR = "hx"
//	PATH = "/opt/homebrew/bin:/usr/bin:/bin"
package envfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Vars maps environment variable names to values.
type Vars map[string]string

// Parse decodes a flat string-to-string TOML table.
func Parse(r io.Reader) (Vars, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse environment file: %w", err)
	}

	vars := make(Vars, len(raw))
	for key, value := range raw {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("environment variable %q must be a string, got %T", key, value)
		}
		if key == "" || strings.ContainsAny(key, "=\x00") {
			return nil, fmt.Errorf("invalid environment variable name %q", key)
		}
		vars[key] = s
	}
	return vars, nil
}

// Load reads and parses the environment file at path. A missing file yields
// empty Vars unless required is set.
func Load(path string, required bool) (Vars, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Vars{}, nil
		}
		return nil, fmt.Errorf("failed to read environment file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	vars, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

// Merge overlays vars onto base, a list of KEY=VALUE entries such as the
// result of os.Environ. Inherited entries keep their position; entries for
// keys only present in vars are appended in sorted order.
func Merge(base []string, vars Vars) []string {
	out := make([]string, 0, len(base)+len(vars))
	applied := make(map[string]bool, len(vars))

	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if value, ok := vars[key]; ok {
			if applied[key] {
				continue
			}
			applied[key] = true
			out = append(out, key+"="+value)
			continue
		}
		out = append(out, entry)
	}

	var added []string
	for key := range vars {
		if !applied[key] {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	for _, key := range added {
		out = append(out, key+"="+vars[key])
	}
	return out
}

// Keys returns the variable names in sorted order.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
