package bundle

import (
	"context"
	"fmt"

	"github.com/warpnine/wezlix/internal/system"
)

// Sign code signs the bundle with identity using codesign. The identity "-"
// produces an ad-hoc signature; any other identity also enables the hardened
// runtime and a secure timestamp.
func (b *Bundle) Sign(ctx context.Context, runner system.Runner, identity, identifier string) error {
	if identity == "" {
		return fmt.Errorf("signing identity cannot be empty")
	}
	args := []string{"--sign", identity, "--force", "--deep"}
	if identity != "-" {
		args = append(args, "--timestamp", "--options", "runtime")
	}
	if identifier != "" {
		args = append(args, "--identifier", identifier)
	}
	args = append(args, b.Path)

	if err := runner.Run(ctx, system.Cmd{Name: "codesign", Args: args}); err != nil {
		return fmt.Errorf("codesign failed: %w", err)
	}
	return nil
}

// VerifySignature checks the bundle's code signature.
func (b *Bundle) VerifySignature(ctx context.Context, runner system.Runner) error {
	cmd := system.Cmd{Name: "codesign", Args: []string{"--verify", "--deep", "--strict", b.Path}}
	if err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
