// Package term owns the controlling terminal: raw input mode, bounded-wait
// byte polling, key decoding and size queries.
package term

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when input is not a terminal.
var ErrNotTerminal = errors.New("input is not a terminal")

// Fallback size when the terminal cannot report one.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Terminal is a terminal in editing mode. Restore must be called on every
// exit path.
type Terminal struct {
	in   *os.File
	out  *os.File
	fd   int
	orig *unix.Termios
}

// Open switches in to editing mode: no echo, no line buffering, no XON/XOFF
// flow control, and reads that return after at most 100ms. Output post
// processing is left on so "\n" still returns the carriage.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("failed to get termios: %w", err)
	}

	raw := *orig
	raw.Iflag &^= unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ICANON
	// Control chars: return after 0 bytes or 100ms
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &raw); err != nil {
		return nil, fmt.Errorf("failed to set editing mode: %w", err)
	}

	return &Terminal{in: in, out: out, fd: fd, orig: orig}, nil
}

// Restore puts back the terminal attributes saved by Open. Safe to call
// more than once.
func (t *Terminal) Restore() error {
	if t == nil || t.orig == nil {
		return nil
	}
	orig := t.orig
	t.orig = nil
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermiosFlush, orig); err != nil {
		return fmt.Errorf("failed to restore termios: %w", err)
	}
	return nil
}

// Poll reads one byte. ok is false when the read timed out or was
// interrupted by a signal.
func (t *Terminal) Poll() (byte, bool, error) {
	var buf [1]byte
	n, err := unix.Read(t.fd, buf[:])
	if errors.Is(err, unix.EINTR) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read input: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// Size returns the output terminal's columns and rows.
func (t *Terminal) Size() (cols, rows int) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return DefaultCols, DefaultRows
	}
	return cols, rows
}

// Write writes p to the terminal output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
