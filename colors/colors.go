package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// RGB builds an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// RGBA builds a color from 8-bit channel values.
func RGBA(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}
