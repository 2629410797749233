package ui2d

const (
	solidFloats = 7 // pos(3) + color(4)
	textFloats  = 9 // pos(3) + uv(2) + color(4)
)

// Batch collects the quads of one UI frame in screen pixels, origin top-left.
type Batch struct {
	solid []float32
	text  []float32
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{
		solid: make([]float32, 0, 1024),
		text:  make([]float32, 0, 4096),
	}
}

// Reset empties the batch, keeping its buffers.
func (b *Batch) Reset() {
	b.solid = b.solid[:0]
	b.text = b.text[:0]
}

// Rect queues a filled rectangle.
func (b *Batch) Rect(x, y, w, h float32, c Color) {
	b.solid = append(b.solid,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,

		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

// RectOutline queues a rectangle border of the given thickness.
func (b *Batch) RectOutline(x, y, w, h, thickness float32, c Color) {
	b.Rect(x, y, w, thickness, c)
	b.Rect(x, y+h-thickness, w, thickness, c)
	b.Rect(x, y+thickness, thickness, h-thickness*2, c)
	b.Rect(x+w-thickness, y+thickness, thickness, h-thickness*2, c)
}

// Text queues one textured quad per glyph.
func (b *Batch) Text(a *Atlas, x, y float32, text string, scale float32, c Color) {
	charW := float32(a.GlyphW) * scale
	charH := float32(a.GlyphH) * scale

	curX := x
	for _, r := range text {
		if r == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := a.GlyphUV(r)
		b.text = append(b.text,
			curX, y, 0, u0, v0, c.R, c.G, c.B, c.A,
			curX+charW, y, 0, u1, v0, c.R, c.G, c.B, c.A,
			curX+charW, y+charH, 0, u1, v1, c.R, c.G, c.B, c.A,

			curX, y, 0, u0, v0, c.R, c.G, c.B, c.A,
			curX+charW, y+charH, 0, u1, v1, c.R, c.G, c.B, c.A,
			curX, y+charH, 0, u0, v1, c.R, c.G, c.B, c.A,
		)
		curX += charW
	}
}

// Label queues a bordered panel with text whose top-left corner is at (x, y).
func (b *Batch) Label(a *Atlas, x, y float32, text string, style LabelStyle) {
	tw, th := a.MeasureText(text, style.Scale)
	w, h := tw+style.Padding*2, th+style.Padding*2

	b.Rect(x, y, w, h, style.Background)
	b.RectOutline(x, y, w, h, 1, style.Border)
	b.Text(a, x+style.Padding, y+style.Padding, text, style.Scale, style.Text)
}

// SolidVertices returns the number of queued solid vertices.
func (b *Batch) SolidVertices() int {
	return len(b.solid) / solidFloats
}

// TextVertices returns the number of queued textured vertices.
func (b *Batch) TextVertices() int {
	return len(b.text) / textFloats
}
