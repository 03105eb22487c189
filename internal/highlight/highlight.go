// Package highlight classifies source bytes into four coarse token classes
// and maps them to terminal colours, optionally taken from a Chroma theme.
package highlight

import (
	"image/color"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// ANSITheme selects the plain 16-colour palette.
const ANSITheme = "ansi"

// Palette holds the SGR sequences emitted when a token run starts.
type Palette struct {
	Number string
	Name   string
	Symbol string
}

// Seq returns the escape sequence for sty, or "" when sty emits none.
func (p Palette) Seq(sty Style) string {
	switch sty {
	case NumberColor:
		return p.Number
	case NameColor:
		return p.Name
	case SymbolColor:
		return p.Symbol
	}
	return ""
}

// DefaultPalette is bright yellow numbers, bright blue symbols and the
// terminal default for everything else.
func DefaultPalette() Palette {
	return Palette{
		Number: ansi.Style{}.ForegroundColor(ansi.BrightYellow).String(),
		Name:   ansi.ResetStyle,
		Symbol: ansi.Style{}.ForegroundColor(ansi.BrightBlue).String(),
	}
}

// KnownTheme reports whether theme is ANSITheme, empty, or a registered
// Chroma style.
func KnownTheme(theme string) bool {
	if theme == "" || theme == ANSITheme {
		return true
	}
	_, ok := styles.Registry[theme]
	return ok
}

// ThemePalette derives a palette from a Chroma theme. Numbers take the
// LiteralNumber colour; symbols take Operator, then Punctuation. Entries the
// theme leaves unset fall back to DefaultPalette.
func ThemePalette(theme string) Palette {
	p := DefaultPalette()
	if theme == "" || theme == ANSITheme {
		return p
	}
	sty, ok := styles.Registry[theme]
	if !ok || sty == nil {
		return p
	}

	if c, ok := tokenColour(sty, chroma.LiteralNumber, chroma.Literal); ok {
		p.Number = fgSeq(c)
	}
	if c, ok := tokenColour(sty, chroma.Operator, chroma.Punctuation); ok {
		p.Symbol = fgSeq(c)
	}
	return p
}

// tokenColour returns the first token colour that differs from the theme's
// plain text colour.
func tokenColour(sty *chroma.Style, types ...chroma.TokenType) (chroma.Colour, bool) {
	text := sty.Get(chroma.Text).Colour
	for _, tt := range types {
		c := sty.Get(tt).Colour
		if c.IsSet() && c != text {
			return c, true
		}
	}
	return 0, false
}

func fgSeq(c chroma.Colour) string {
	rgb := color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
	return ansi.Style{}.ForegroundColor(rgb).String()
}
