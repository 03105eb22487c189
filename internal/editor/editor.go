// Package editor is the editing core: a cursor over a flat byte buffer,
// the scroll frame that follows it, and the renderer that repaints the
// visible region with syntax colours using relative cursor movement.
package editor

import (
	"github.com/xonecas/asu/internal/buffer"
	"github.com/xonecas/asu/internal/highlight"
)

// Defaults for Options.
const (
	DefaultMargin   = 2
	DefaultTabWidth = 4
)

// MinMargin is the smallest usable margin. The region is rows-margin+1
// lines with one erased line below it, so anything less overflows the
// terminal and scrolls the first line away.
const MinMargin = 2

// Options configures a Model. Zero values select the defaults.
type Options struct {
	Margin   int // cells kept between the cursor and the right/bottom edge; at least MinMargin
	TabWidth int // columns a tab occupies
	Palette  *highlight.Palette
}

// Model is the state of one editing session.
type Model struct {
	buf     *buffer.Buffer
	cursor  Cursor
	frame   Frame
	hl      highlight.Highlighter
	palette highlight.Palette

	margin   int
	tabWidth int

	// Native cursor position after the last render, relative to the top-left
	// of the drawn region.
	screenCol int
	screenRow int
}

// New creates a model editing buf with the cursor at offset 0.
func New(buf *buffer.Buffer, opts Options) *Model {
	m := &Model{
		buf:      buf,
		margin:   opts.Margin,
		tabWidth: opts.TabWidth,
		palette:  highlight.DefaultPalette(),
	}
	if m.margin <= 0 {
		m.margin = DefaultMargin
	}
	m.margin = max(m.margin, MinMargin)
	if m.tabWidth <= 0 {
		m.tabWidth = DefaultTabWidth
	}
	if opts.Palette != nil {
		m.palette = *opts.Palette
	}
	return m
}

// Buffer returns the edited buffer.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// Cursor returns the cursor as of the last render.
func (m *Model) Cursor() Cursor { return m.cursor }

// Frame returns the scroll frame computed by the last render.
func (m *Model) Frame() Frame { return m.frame }

// SetOffset moves the cursor to off, clamped to the buffer.
func (m *Model) SetOffset(off int) {
	m.cursor.Offset = min(max(off, 0), m.buf.Size())
}

// MoveLeft moves one byte back. No-op at the start of the buffer.
func (m *Model) MoveLeft() {
	if m.cursor.Offset > 0 {
		m.cursor.Offset--
	}
}

// MoveRight moves one byte forward. No-op at the end of the buffer.
func (m *Model) MoveRight() {
	if m.cursor.Offset < m.buf.Size() {
		m.cursor.Offset++
	}
}

// MoveUp moves to the previous line, aiming for the column the cursor had
// at the last render.
func (m *Model) MoveUp() {
	m.cursor.Offset = moveUp(m.buf.Bytes(), m.cursor.Offset, m.cursor.Col)
}

// MoveDown moves to the next line, aiming for the column the cursor had at
// the last render.
func (m *Model) MoveDown() {
	m.cursor.Offset = moveDown(m.buf.Bytes(), m.cursor.Offset, m.cursor.Col)
}

// MoveEnd moves to the end of the buffer.
func (m *Model) MoveEnd() {
	m.cursor.Offset = m.buf.Size()
}

// sync recomputes the cursor's column and row from its offset.
func (m *Model) sync() {
	m.cursor.Col, m.cursor.Row = locate(m.buf.Bytes(), m.cursor.Offset, m.tabWidth)
}
