package editor

// InsertChar inserts c at the cursor and moves past it. A carriage return
// is stored as a newline.
func (m *Model) InsertChar(c byte) error {
	if c == '\r' {
		c = '\n'
	}
	if err := m.buf.Insert(m.cursor.Offset, c); err != nil {
		return err
	}
	m.cursor.Offset++
	return nil
}

// Backspace removes the byte before the cursor. No-op at offset 0.
func (m *Model) Backspace() error {
	if m.cursor.Offset == 0 {
		return nil
	}
	if err := m.buf.Remove(m.cursor.Offset - 1); err != nil {
		return err
	}
	m.cursor.Offset--
	return nil
}
