// Package render composites a name onto a template image.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultBaseSize = 54
	MinSize         = 12
	sizeStep        = 2
	strokeWidth     = 2
	leftPadding     = 10
	dpi             = 72
)

// Box is the text region as fractions of the template size.
type Box struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// DefaultBox is the name field of the bundled student card layout.
var DefaultBox = Box{X: 0.56, Y: 0.455, W: 0.52, H: 0.055}

func (b Box) rect(bounds image.Rectangle) image.Rectangle {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := bounds.Min.X + int(w*b.X)
	y0 := bounds.Min.Y + int(h*b.Y)
	return image.Rect(x0, y0, x0+int(w*b.W), y0+int(h*b.H))
}

// Options configures a Renderer.
type Options struct {
	// Template is the path of the background image.
	Template string
	// FontPaths are tried in order; see LoadFont.
	FontPaths []string
	// Font overrides FontPaths when set.
	Font     *opentype.Font
	BaseSize float64
	Box      Box
}

// Renderer draws names onto copies of one template.
type Renderer struct {
	template *image.NRGBA
	font     *opentype.Font
	fontName string
	baseSize float64
	box      Box
}

// New decodes the template and resolves the font.
func New(opts Options) (*Renderer, error) {
	img, err := imaging.Open(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", opts.Template, err)
	}
	return NewFromImage(img, opts)
}

// NewFromImage uses an already decoded template. opts.Template is ignored.
func NewFromImage(img image.Image, opts Options) (*Renderer, error) {
	r := &Renderer{
		template: imaging.Clone(img),
		font:     opts.Font,
		fontName: "custom",
		baseSize: opts.BaseSize,
		box:      opts.Box,
	}
	if r.font == nil {
		paths := opts.FontPaths
		if len(paths) == 0 {
			paths = DefaultFontPaths
		}
		f, name, err := LoadFont(paths)
		if err != nil {
			return nil, err
		}
		r.font, r.fontName = f, name
	}
	if r.baseSize <= 0 {
		r.baseSize = DefaultBaseSize
	}
	if r.box == (Box{}) {
		r.box = DefaultBox
	}
	return r, nil
}

// FontName reports which font file is in use.
func (r *Renderer) FontName() string { return r.fontName }

// Bounds returns the template size.
func (r *Renderer) Bounds() image.Rectangle { return r.template.Bounds() }

// Render draws name and returns the PNG encoding.
func (r *Renderer) Render(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canvas, err := r.Draw(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw returns a copy of the template with name drawn left-aligned and
// vertically centred in the box, black on a white stroke.
func (r *Renderer) Draw(name string) (*image.NRGBA, error) {
	box := r.box.rect(r.template.Bounds())
	face, bounds, err := r.fit(name)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := box.Min.X + leftPadding
	y := box.Min.Y + (box.Dy()-textH)/2 - bounds.Min.Y.Floor()

	canvas := imaging.Clone(r.template)
	d := &font.Drawer{Dst: canvas, Face: face}

	d.Src = image.NewUniform(color.White)
	for dx := -strokeWidth; dx <= strokeWidth; dx++ {
		for dy := -strokeWidth; dy <= strokeWidth; dy++ {
			if (dx == 0 && dy == 0) || dx*dx+dy*dy > strokeWidth*strokeWidth {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(name)
		}
	}

	d.Src = image.NewUniform(color.Black)
	d.Dot = fixed.P(x, y)
	d.DrawString(name)
	return canvas, nil
}

// FitSize returns the font size chosen for name.
func (r *Renderer) FitSize(name string) (float64, error) {
	box := r.box.rect(r.template.Bounds())
	size := r.baseSize
	for ; size > MinSize; size -= sizeStep {
		ok, err := r.fits(name, size, box.Dx(), box.Dy())
		if err != nil {
			return 0, err
		}
		if ok {
			return size, nil
		}
	}
	return MinSize, nil
}

func (r *Renderer) fits(name string, size float64, w, h int) (bool, error) {
	face, err := r.face(size)
	if err != nil {
		return false, err
	}
	defer face.Close()
	b, _ := font.BoundString(face, name)
	return (b.Max.X-b.Min.X).Ceil() <= w && (b.Max.Y-b.Min.Y).Ceil() <= h, nil
}

func (r *Renderer) fit(name string) (font.Face, fixed.Rectangle26_6, error) {
	size, err := r.FitSize(name)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, err
	}
	face, err := r.face(size)
	if err != nil {
		return nil, fixed.Rectangle26_6{}, err
	}
	b, _ := font.BoundString(face, name)
	return face, b, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
