package icon

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warpnine/wezlix/internal/system"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50" width="100" height="50">
<rect x="0" y="0" width="100" height="50" fill="#ff0000"/>
</svg>`

func TestRender(t *testing.T) {
	img, err := Render([]byte(squareSVG), 64)
	require.NoError(t, err)

	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// The 2:1 view box is stretched over the whole square.
	for _, pt := range [][2]int{{32, 32}, {2, 60}, {60, 2}} {
		r, g, b, a := img.At(pt[0], pt[1]).RGBA()
		assert.Equal(t, uint32(0xffff), a, "alpha at %v", pt)
		assert.Equal(t, uint32(0xffff), r, "red at %v", pt)
		assert.Zero(t, g)
		assert.Zero(t, b)
	}
}

func TestRender_Errors(t *testing.T) {
	_, err := Render([]byte(squareSVG), 0)
	assert.ErrorContains(t, err, "invalid icon size")

	_, err = Render([]byte("<svg"), 16)
	assert.Error(t, err)
}

func TestWriteIconset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "wezlix.iconset")

	require.NoError(t, WriteIconset(context.Background(), []byte(squareSVG), dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(Sizes))

	for _, s := range Sizes {
		f, err := os.Open(filepath.Join(dir, s.FileName()))
		require.NoError(t, err, s.Name)
		cfg, err := png.DecodeConfig(f)
		_ = f.Close()
		require.NoError(t, err, s.Name)
		assert.Equal(t, s.Pixels, cfg.Width, s.Name)
		assert.Equal(t, s.Pixels, cfg.Height, s.Name)
	}
}

func TestWriteIconset_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteIconset(ctx, []byte(squareSVG), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSizes(t *testing.T) {
	assert.Len(t, Sizes, 10)
	assert.Equal(t, "icon_512x512@2x.png", Sizes[len(Sizes)-1].FileName())
	assert.Equal(t, 1024, Sizes[len(Sizes)-1].Pixels)
}

func TestConvertICNS(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Contents", "Resources", "wezlix.icns")
	runner := &system.RecordingRunner{}

	require.NoError(t, ConvertICNS(context.Background(), runner, "/tmp/wezlix.iconset", out))
	assert.Equal(t, []string{"iconutil --convert icns /tmp/wezlix.iconset --output " + out}, runner.Names())
	assert.DirExists(t, filepath.Dir(out))
}

func TestConvertICNS_Failure(t *testing.T) {
	runner := &system.RecordingRunner{RunFunc: func(context.Context, system.Cmd) error {
		return errors.New("exit status 1")
	}}
	err := ConvertICNS(context.Background(), runner, "in.iconset", filepath.Join(t.TempDir(), "out.icns"))
	assert.ErrorContains(t, err, "convert iconset")
}
