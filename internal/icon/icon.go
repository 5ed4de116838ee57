// Package icon rasterizes the SVG app icon into a macOS iconset.
package icon

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/sync/errgroup"

	"github.com/warpnine/wezlix/internal/system"
)

// Size is one entry of an iconset.
type Size struct {
	Pixels int
	Name   string
}

// FileName returns the iconset file name for s.
func (s Size) FileName() string {
	return "icon_" + s.Name + ".png"
}

// Sizes are the entries iconutil expects in an .iconset directory.
var Sizes = []Size{
	{16, "16x16"},
	{32, "16x16@2x"},
	{32, "32x32"},
	{64, "32x32@2x"},
	{128, "128x128"},
	{256, "128x128@2x"},
	{256, "256x256"},
	{512, "256x256@2x"},
	{512, "512x512"},
	{1024, "512x512@2x"},
}

// Render rasterizes svg into a size×size image, scaling the view box to fill it.
func Render(svg []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}
	// SvgIcon carries its target transform, so each render parses its own copy.
	ic, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if ic.ViewBox.W <= 0 || ic.ViewBox.H <= 0 {
		return nil, fmt.Errorf("svg has an empty view box")
	}

	ic.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	ic.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}

// WritePNG renders svg at size and writes it to path.
func WritePNG(svg []byte, size int, path string) error {
	img, err := Render(svg, size)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteIconset renders every entry of Sizes into dir.
func WriteIconset(ctx context.Context, svg []byte, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create iconset directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range Sizes {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := WritePNG(svg, s.Pixels, filepath.Join(dir, s.FileName())); err != nil {
				return fmt.Errorf("icon %s: %w", s.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ConvertICNS converts an iconset directory into an .icns file with iconutil.
func ConvertICNS(ctx context.Context, runner system.Runner, iconsetDir, out string) error {
	if err := system.EnsureDir(filepath.Dir(out), 0755); err != nil {
		return err
	}
	cmd := system.Cmd{
		Name: "iconutil",
		Args: []string{"--convert", "icns", iconsetDir, "--output", out},
	}
	if err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("convert iconset: %w", err)
	}
	return nil
}
