package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Label theme colors.
var (
	ColorPanelBg     = Color{0.08, 0.08, 0.12, 0.8}
	ColorPanelBorder = Color{0.3, 0.3, 0.4, 1}
	ColorText        = Color{0.9, 0.9, 0.9, 1}
	ColorHighlight   = Color{0.95, 0.6, 0.2, 1}
)
