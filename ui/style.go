package ui

import "github.com/Kuaralaboratories/microui/colors"

// Font supplies the text metrics widget dispatch needs. Backends
// implement it on top of whatever font machinery they use; the core
// never touches font files or glyphs.
type Font interface {
	// TextWidth returns the horizontal advance of s in pixels.
	TextWidth(s string) float32
	// TextHeight returns the line height in pixels.
	TextHeight() float32
}

// ColorRole indexes the fixed set of style colors. Widgets resolve
// colors by role with a direct array lookup; there is no string-keyed
// styling.
type ColorRole int

const (
	ColorText ColorRole = iota
	ColorBorder
	ColorWindowBG
	ColorTitleBG
	ColorTitleText
	ColorPanelBG
	ColorButton
	ColorButtonHover
	ColorButtonFocus
	ColorBase
	ColorBaseHover
	ColorBaseFocus
	ColorScrollBase
	ColorScrollThumb

	colorRoleCount
)

// Style holds the colors and metrics read during widget dispatch. The
// host may mutate it at any point between widget declarations; the
// change applies from the next widget on.
type Style struct {
	Font   Font
	Colors [colorRoleCount]colors.Color

	Padding       float32 // inset between a container edge and its content
	Spacing       float32 // gap between layout cells
	LineHeight    float32 // default row height when a row spec gives none
	TitleHeight   float32
	ScrollbarSize float32
	ThumbSize     float32 // minimum scrollbar thumb length
	BorderSize    float32
}

// DefaultStyle mirrors the palette the tutorial screenshots use: dark
// windows, light text, subtle hover shading.
func DefaultStyle() *Style {
	s := &Style{
		Padding:       5,
		Spacing:       4,
		LineHeight:    20,
		TitleHeight:   24,
		ScrollbarSize: 12,
		ThumbSize:     8,
		BorderSize:    1,
	}
	s.Colors[ColorText] = colors.RGB(230, 230, 230)
	s.Colors[ColorBorder] = colors.RGB(25, 25, 25)
	s.Colors[ColorWindowBG] = colors.RGB(50, 50, 50)
	s.Colors[ColorTitleBG] = colors.RGB(25, 25, 25)
	s.Colors[ColorTitleText] = colors.RGB(240, 240, 240)
	s.Colors[ColorPanelBG] = colors.RGBA(0, 0, 0, 0)
	s.Colors[ColorButton] = colors.RGB(75, 75, 75)
	s.Colors[ColorButtonHover] = colors.RGB(95, 95, 95)
	s.Colors[ColorButtonFocus] = colors.RGB(115, 115, 115)
	s.Colors[ColorBase] = colors.RGB(30, 30, 30)
	s.Colors[ColorBaseHover] = colors.RGB(35, 35, 35)
	s.Colors[ColorBaseFocus] = colors.RGB(40, 40, 40)
	s.Colors[ColorScrollBase] = colors.RGB(43, 43, 43)
	s.Colors[ColorScrollThumb] = colors.RGB(30, 30, 30)
	return s
}

// font returns the installed font, or a fixed-advance fallback so the
// core works headless (tests, command-list golden checks).
func (c *Context) font() Font {
	if c.Style != nil && c.Style.Font != nil {
		return c.Style.Font
	}
	return fallbackFont{}
}

type fallbackFont struct{}

func (fallbackFont) TextWidth(s string) float32 {
	n := 0
	for range s {
		n++
	}
	return float32(n) * 8
}

func (fallbackFont) TextHeight() float32 { return 16 }
