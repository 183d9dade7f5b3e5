// Package textmeasure implements label.Measurer for the sinks.
//
// [Approx] estimates sizes from a per-character width ratio and needs no font
// data; it is what the SVG sink uses unless told otherwise. [Font] measures
// with the embedded Go font through tdewolff/canvas and matches the PNG and
// PDF output exactly.
//
// Sizes are returned in user units (pixels), with label.FontRef.Size read as
// the em size in the same units.
package textmeasure

import (
	"image/color"
	"sync"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/fonts"
	"github.com/matzehuels/sunburst/pkg/label"
)

// Width and height ratios used by Approx when left zero.
const (
	DefaultCharWidth  = 0.55
	DefaultLineHeight = 1.2
)

// PtPerUnit converts user units to the points canvas font faces are sized in.
// Canvas works in millimetres, and sinks treat one millimetre as one pixel.
const PtPerUnit = 72 / 25.4

// Approx measures text as runes * size * CharWidth by size * LineHeight.
type Approx struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements label.Measurer.
func (a Approx) Measure(text string, font label.FontRef) (float64, float64) {
	cw, lh := a.CharWidth, a.LineHeight
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	if lh <= 0 {
		lh = DefaultLineHeight
	}
	return float64(utf8.RuneCountInString(text)) * font.Size * cw, font.Size * lh
}

// Font measures text with a real font face.
// It is safe for concurrent use.
type Font struct {
	family *canvas.FontFamily

	mu    sync.Mutex
	faces map[float64]*canvas.FontFace
}

// NewFont loads the embedded regular Go font.
func NewFont() (*Font, error) {
	family := canvas.NewFontFamily(fonts.FontFamily)
	if err := family.LoadFont(fonts.RegularTTF(), 0, canvas.FontRegular); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load embedded font")
	}
	return &Font{family: family, faces: make(map[float64]*canvas.FontFace)}, nil
}

// Face returns a face of the given em size in user units, drawn in col.
func (f *Font) Face(size float64, col color.Color) *canvas.FontFace {
	return f.family.Face(size*PtPerUnit, col, canvas.FontRegular, canvas.FontNormal)
}

// Measure implements label.Measurer. The height is the face's line height.
func (f *Font) Measure(text string, font label.FontRef) (float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	face, ok := f.faces[font.Size]
	if !ok {
		face = f.Face(font.Size, canvas.Black)
		f.faces[font.Size] = face
	}
	return face.TextWidth(text), face.Metrics().LineHeight
}

var (
	_ label.Measurer = Approx{}
	_ label.Measurer = (*Font)(nil)
)
