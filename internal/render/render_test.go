package render_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dosanma1/vncard-cli/internal/render"
)

var gray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

func newRenderer(t *testing.T, w, h int, box render.Box) *render.Renderer {
	t.Helper()
	tmpl := imaging.New(w, h, gray)
	r, err := render.NewFromImage(tmpl, render.Options{FontPaths: []string{"/nonexistent/font.ttf"}, Box: box})
	require.NoError(t, err)
	return r
}

func TestRenderDrawsInsideBox(t *testing.T) {
	r := newRenderer(t, 600, 400, render.Box{})
	assert.Equal(t, render.EmbeddedFont, r.FontName())

	data, err := r.Render(context.Background(), "Nguyen Van An")
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 600, 400), img.Bounds())

	var dark, white int
	for y := 182; y < 204; y++ {
		for x := 336; x < 600; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch {
			case c.R < 60 && c.G < 60 && c.B < 60:
				dark++
			case c.R == 255 && c.G == 255 && c.B == 255:
				white++
			}
		}
	}
	assert.Positive(t, dark, "text pixels")
	assert.Positive(t, white, "stroke pixels")

	assert.Equal(t, gray, color.NRGBAModel.Convert(img.At(10, 10)))
	assert.Equal(t, gray, color.NRGBAModel.Convert(img.At(300, 100)))
}

func TestDrawLeavesTemplateUntouched(t *testing.T) {
	r := newRenderer(t, 600, 400, render.Box{})

	first, err := r.Draw("Tran Thi Lan")
	require.NoError(t, err)
	second, err := r.Draw("Le Minh")
	require.NoError(t, err)
	assert.NotEqual(t, first.Pix, second.Pix)

	blank, err := r.Draw("")
	require.NoError(t, err)
	for x := 336; x < 600; x += 7 {
		assert.Equal(t, gray, blank.NRGBAAt(x, 193), "x=%d", x)
	}
}

func TestFitSize(t *testing.T) {
	roomy := newRenderer(t, 2000, 2000, render.Box{X: 0, Y: 0, W: 1, H: 0.5})
	size, err := roomy.FitSize("An")
	require.NoError(t, err)
	assert.Equal(t, float64(render.DefaultBaseSize), size)

	card := newRenderer(t, 600, 400, render.Box{})
	short, err := card.FitSize("An")
	require.NoError(t, err)
	assert.Less(t, short, float64(render.DefaultBaseSize))
	assert.GreaterOrEqual(t, short, float64(render.MinSize))

	long, err := card.FitSize(strings.Repeat("Nguyen ", 30))
	require.NoError(t, err)
	assert.Equal(t, float64(render.MinSize), long)
	assert.LessOrEqual(t, long, short)
}

func TestRenderCancelled(t *testing.T) {
	r := newRenderer(t, 100, 100, render.Box{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, "An")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFromTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.png")
	require.NoError(t, imaging.Save(imaging.New(320, 200, gray), path))

	r, err := render.New(render.Options{Template: path, FontPaths: []string{"/nonexistent"}})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 200), r.Bounds())

	_, err = render.New(render.Options{Template: filepath.Join(t.TempDir(), "missing.png")})
	assert.ErrorContains(t, err, "failed to open template")
}

func TestLoadFont(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	real := filepath.Join(dir, "real.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))
	require.NoError(t, os.WriteFile(real, goregular.TTF, 0o644))

	f, name, err := render.LoadFont([]string{filepath.Join(dir, "missing.ttf"), garbage, real})
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, real, name)

	f, name, err = render.LoadFont(nil)
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, render.EmbeddedFont, name)
}
