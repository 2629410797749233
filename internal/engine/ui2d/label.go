package ui2d

// LabelStyle controls how a label panel looks.
type LabelStyle struct {
	Scale      float32
	Padding    float32
	Background Color
	Border     Color
	Text       Color
}

// DefaultLabelStyle is a dark translucent panel with light text.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{
		Scale:      1,
		Padding:    4,
		Background: ColorPanelBg,
		Border:     ColorPanelBorder,
		Text:       ColorText,
	}
}

// Label is a text panel placed in screen pixels. It receives its position
// from the anchor projector each frame.
type Label struct {
	Text    string
	X, Y    float64
	Visible bool
	Style   LabelStyle
}

// NewLabel creates a hidden label with the default style.
func NewLabel(text string) *Label {
	return &Label{Text: text, Style: DefaultLabelStyle()}
}

// SetPosition moves the label's top-left corner.
func (l *Label) SetPosition(x, y float64) {
	l.X, l.Y = x, y
}

// Queue adds the label to b if it is visible.
func (l *Label) Queue(b *Batch, a *Atlas) {
	if !l.Visible || l.Text == "" {
		return
	}
	b.Label(a, float32(l.X), float32(l.Y), l.Text, l.Style)
}
