package editor

import "bytes"

// Cursor is a byte offset into the buffer. Col and Row are derived from
// Offset by the last Render and are stale between a move and the next
// render.
type Cursor struct {
	Offset int
	Col    int
	Row    int
}

// locate returns the screen column and row of offset, counting a tab as
// tabWidth columns.
func locate(data []byte, offset, tabWidth int) (col, row int) {
	for _, c := range data[:offset] {
		switch c {
		case '\n':
			col = 0
			row++
		case '\t':
			col += tabWidth
		default:
			col++
		}
	}
	return col, row
}

// lineStart returns the index of the first byte of the line holding off.
func lineStart(data []byte, off int) int {
	return bytes.LastIndexByte(data[:off], '\n') + 1
}

// skipLines returns the index of the first byte of row n, or len(data) if
// the buffer has fewer rows.
func skipLines(data []byte, n int) int {
	p := 0
	for ; n > 0; n-- {
		i := bytes.IndexByte(data[p:], '\n')
		if i < 0 {
			return len(data)
		}
		p += i + 1
	}
	return p
}

// moveUp returns the offset target bytes into the previous line, clamped
// to its length. On the first line it returns 0.
func moveUp(data []byte, off, target int) int {
	start := lineStart(data, off)
	if start == 0 {
		return 0
	}
	prev := lineStart(data, start-1)
	return prev + min(target, start-1-prev)
}

// moveDown returns the offset target bytes into the next line, stopping at
// its end. Without a next line it returns len(data).
func moveDown(data []byte, off, target int) int {
	i := bytes.IndexByte(data[off:], '\n')
	if i < 0 {
		return len(data)
	}
	off += i + 1
	for n := 0; n < target && off < len(data) && data[off] != '\n'; n++ {
		off++
	}
	return off
}
