package bundle

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/warpnine/wezlix/internal/system"
)

// AutoIdentity asks ResolveIdentity to pick a signing identity from the keychain.
const AutoIdentity = "auto"

// IdentityQuery returns the output of `security find-identity -v -p codesigning`.
type IdentityQuery func(ctx context.Context) ([]byte, error)

// KeychainIdentities returns a query that lists the user's code signing
// identities with security(1) run through runner.
func KeychainIdentities(runner system.Runner) IdentityQuery {
	return func(ctx context.Context) ([]byte, error) {
		var out bytes.Buffer
		cmd := system.Cmd{
			Name:   "security",
			Args:   []string{"find-identity", "-v", "-p", "codesigning"},
			Stdout: &out,
		}
		if err := runner.Run(ctx, cmd); err != nil {
			return nil, fmt.Errorf("failed to query keychain: %w", err)
		}
		return out.Bytes(), nil
	}
}

// ParseIdentities extracts the quoted identity names from find-identity output.
func ParseIdentities(output []byte) []string {
	var ids []string
	for _, line := range strings.Split(string(output), "\n") {
		if strings.Contains(line, "valid identities found") || strings.Contains(line, "invalid") {
			continue
		}
		start := strings.Index(line, `"`)
		end := strings.LastIndex(line, `"`)
		if start == -1 || end <= start {
			continue
		}
		ids = append(ids, line[start+1:end])
	}
	return ids
}

// ResolveIdentity returns identity unchanged unless it is AutoIdentity, in
// which case a Developer ID Application certificate is preferred over any
// other valid identity.
func ResolveIdentity(ctx context.Context, identity string, query IdentityQuery) (string, error) {
	if identity != AutoIdentity {
		return identity, nil
	}
	out, err := query(ctx)
	if err != nil {
		return "", err
	}
	ids := ParseIdentities(out)
	for _, id := range ids {
		if strings.Contains(id, "Developer ID Application") {
			return id, nil
		}
	}
	if len(ids) > 0 {
		return ids[0], nil
	}
	return "", fmt.Errorf("no code signing identity found in keychain")
}
