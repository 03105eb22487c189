package editor

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/asu/internal/highlight"
)

// Render repaints the visible region of a cols x rows terminal and leaves
// the native cursor on the edit cursor. Drawing starts from wherever the
// previous render left the native cursor, so the region stays anchored to
// the line the editor was started on.
//
// The region is rows-margin+1 lines tall plus one erased line below it.
// Output is written with a single Write.
func (m *Model) Render(w io.Writer, cols, rows int) error {
	// Keep at least one visible line and column beyond the margin.
	cols = max(cols, m.margin+1)
	rows = max(rows, m.margin+1)

	data := m.buf.Bytes()
	m.sync()
	m.frame = ComputeFrame(m.cursor.Col, m.cursor.Row, cols, rows, m.margin)
	height := rows - m.margin + 1

	var b strings.Builder

	// Back to the top-left of the previous region.
	if m.screenCol > 0 {
		b.WriteString(ansi.CursorBackward(m.screenCol))
	}
	if m.screenRow > 0 {
		b.WriteString(ansi.CursorUp(m.screenRow))
	}

	left, right := m.frame.X, m.frame.X+cols
	visible := func(x int) bool { return x >= left && x < right }

	m.hl.Reset()
	pending := "" // colour switch that happened left of the frame
	x, lines := 0, 0
	for p := skipLines(data, m.frame.Y); p < len(data) && lines < height; p++ {
		c := data[p]
		switch c {
		case '\n':
			m.hl.Reset()
			pending = ""
			b.WriteString(ansi.EraseLineRight)
			b.WriteByte('\n')
			x = 0
			lines++
		case '\t':
			for range m.tabWidth {
				if visible(x) {
					b.WriteByte(' ')
				}
				x++
			}
		default:
			sty := m.hl.Next(c)
			if !visible(x) {
				if sty.Escapes() {
					pending = m.palette.Seq(sty)
				}
				x++
				continue
			}
			switch {
			case sty.Escapes():
				b.WriteString(m.palette.Seq(sty))
			case sty == highlight.Plain && pending != "":
				b.WriteString(pending)
			}
			pending = ""
			b.WriteByte(c)
			x++
		}
	}

	// Erase whatever a previous, longer render left behind.
	b.WriteString(ansi.ResetStyle)
	for ; lines < height; lines++ {
		b.WriteString(ansi.EraseLineRight)
		b.WriteByte('\n')
	}
	b.WriteString(ansi.EraseLineRight)

	// The native cursor is now at column 0, one line below the region.
	m.screenCol = m.cursor.Col - m.frame.X
	m.screenRow = m.cursor.Row - m.frame.Y
	if up := height - m.screenRow; up > 0 {
		b.WriteString(ansi.CursorUp(up))
	}
	if m.screenCol > 0 {
		b.WriteString(ansi.CursorForward(m.screenCol))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
