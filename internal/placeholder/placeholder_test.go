package placeholder

import (
	"context"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seokhojung/befunweb/internal/imageprobe"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/palette"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestGenerate_WritesLayout(t *testing.T) {
	dir := t.TempDir()
	layout := imageresolver.DefaultLayout()
	g := New(layout, testLogger())

	res, err := g.Generate(context.Background(), dir, Options{Categories: []string{"bookcase", " Sofa "}, Count: 3, Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Main)
	assert.Equal(t, 6, res.Hover)
	assert.Equal(t, len(palette.Colors()), res.Swatches)
	assert.Equal(t, 12+len(palette.Colors()), res.Total())

	main := filepath.Join(dir, filepath.FromSlash(layout.Main("sofa", "03")))
	img, err := imaging.Open(main)
	require.NoError(t, err)
	assert.Equal(t, ProductWidth, img.Bounds().Dx())
	assert.Equal(t, ProductHeight, img.Bounds().Dy())

	swatch, err := imaging.Open(filepath.Join(dir, filepath.FromSlash(layout.Swatch("Moss Green"))))
	require.NoError(t, err)
	assert.Equal(t, SwatchSize, swatch.Bounds().Dx())
	r, g2, b, _ := swatch.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0x4A, 0xDE, 0x80}, [3]uint32{r >> 8, g2 >> 8, b >> 8})
}

func TestGenerate_SatisfiesFileProber(t *testing.T) {
	dir := t.TempDir()
	layout := imageresolver.DefaultLayout()

	_, err := New(layout, testLogger()).Generate(context.Background(), dir, DefaultOptions())
	require.NoError(t, err)

	prober := imageprobe.NewFileProber(dir)
	for _, p := range []string{
		layout.Main("bookcase", "01"),
		layout.Hover("bookcase", "34"),
		layout.Swatch("White"),
	} {
		ok, err := prober.Exists(context.Background(), p)
		require.NoError(t, err)
		assert.True(t, ok, p)
	}

	ok, err := prober.Exists(context.Background(), layout.Main("bookcase", "35"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerate_UnsupportedExtension(t *testing.T) {
	g := New(imageresolver.Layout{Root: "/img", Ext: "webp"}, testLogger())

	_, err := g.Generate(context.Background(), t.TempDir(), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)
}

func TestGenerate_NegativeCount(t *testing.T) {
	g := New(imageresolver.DefaultLayout(), testLogger())

	_, err := g.Generate(context.Background(), t.TempDir(), Options{Count: -1})
	require.Error(t, err)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(imageresolver.DefaultLayout(), testLogger())
	res, err := g.Generate(ctx, t.TempDir(), DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Total())
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FFFFFF", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"8B4513", color.NRGBA{R: 0x8B, G: 0x45, B: 0x13, A: 255}, false},
		{"#fff", color.NRGBA{}, true},
		{"#GGGGGG", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
