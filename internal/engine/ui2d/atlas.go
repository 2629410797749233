package ui2d

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph   = ' '
	lastGlyph    = '~'
	atlasCols    = 16
	fallbackRune = '?'
)

// Atlas is a monospaced ASCII glyph sheet rasterised from the built-in
// 7x13 bitmap face. It holds no GL state, so it can be built and
// inspected without a context.
type Atlas struct {
	Image          *image.Alpha
	GlyphW, GlyphH int
}

// NewAtlas rasterises the printable ASCII range into a grid.
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	gw, gh := face.Advance, face.Height
	count := int(lastGlyph-firstGlyph) + 1
	rows := (count + atlasCols - 1) / atlasCols

	img := image.NewAlpha(image.Rect(0, 0, atlasCols*gw, rows*gh))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := int(r - firstGlyph)
		col, row := i%atlasCols, i/atlasCols
		d.Dot = fixed.P(col*gw, row*gh+face.Ascent)
		d.DrawString(string(r))
	}

	return &Atlas{Image: img, GlyphW: gw, GlyphH: gh}
}

// GlyphUV returns the texture rectangle of r. Runes outside printable
// ASCII use the '?' glyph.
func (a *Atlas) GlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = fallbackRune
	}
	i := int(r - firstGlyph)
	col, row := i%atlasCols, i/atlasCols

	b := a.Image.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	u0 = float32(col*a.GlyphW) / w
	v0 = float32(row*a.GlyphH) / h
	u1 = float32((col+1)*a.GlyphW) / w
	v1 = float32((row+1)*a.GlyphH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the width and height of text at the given scale.
func (a *Atlas) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, current := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return float32(longest*a.GlyphW) * scale, float32(lines*a.GlyphH) * scale
}
