// Package buffer holds a whole file in memory as a flat byte slice and
// provides checked positional access to it.
package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ErrIndexOutOfRange is returned when an index falls outside the buffer.
var ErrIndexOutOfRange = errors.New("index out of range")

// Buffer is a contiguous, mutable sequence of bytes.
type Buffer struct {
	path     string
	data     []byte
	original []byte   // content as loaded, for the save summary
	snap     Snapshot // on-disk state at load
}

// New creates an in-memory buffer holding a copy of data. It has no path.
func New(data []byte) *Buffer {
	b := &Buffer{data: append([]byte(nil), data...)}
	b.original = append([]byte(nil), b.data...)
	return b
}

// Open reads the whole file at path. The file must be readable and writable.
func Open(path string) (*Buffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	snap, err := snapshotFile(f)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &Buffer{
		path:     path,
		data:     data,
		original: append([]byte(nil), data...),
		snap:     snap,
	}, nil
}

// Path returns the file the buffer was loaded from ("" for New).
func (b *Buffer) Path() string { return b.path }

// Size returns the number of bytes in the buffer.
func (b *Buffer) Size() int { return len(b.data) }

// Bytes returns the buffer content. The slice must not be modified and is
// only valid until the next Insert or Remove.
func (b *Buffer) Bytes() []byte { return b.data }

// Get returns the byte at index i.
func (b *Buffer) Get(i int) (byte, error) {
	if i < 0 || i >= len(b.data) {
		return 0, rangeError(i, len(b.data))
	}
	return b.data[i], nil
}

// Insert stores c at index i, shifting every byte at or after i one
// position later. i == Size() appends.
func (b *Buffer) Insert(i int, c byte) error {
	if i < 0 || i > len(b.data) {
		return rangeError(i, len(b.data))
	}
	b.data = append(b.data, 0)
	copy(b.data[i+1:], b.data[i:])
	b.data[i] = c
	return nil
}

// Remove deletes the byte at index i, shifting later bytes one earlier.
func (b *Buffer) Remove(i int) error {
	if i < 0 || i >= len(b.data) {
		return rangeError(i, len(b.data))
	}
	b.data = append(b.data[:i], b.data[i+1:]...)
	return nil
}

func rangeError(i, size int) error {
	return fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, size)
}

// Write saves the buffer back to the file it was opened from.
func (b *Buffer) Write() error {
	if b.path == "" {
		return errors.New("buffer has no path")
	}
	if changed, err := b.snap.Changed(b.path); err == nil && changed {
		log.Warn().Str("file", b.path).Msg("file changed on disk since it was opened; overwriting")
	}
	if err := b.WriteTo(b.path); err != nil {
		return err
	}
	if snap, err := Stat(b.path); err == nil {
		b.snap = snap
	}
	return nil
}

// WriteTo replaces the file at path with the buffer content, byte for byte.
// The content goes to a temporary file in the same directory which is then
// renamed over path, so a failed write leaves the old file intact.
//
// A symlink is followed so the link survives and its target is replaced.
func (b *Buffer) WriteTo(path string) error {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(b.data); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	log.Debug().Str("file", path).Int("bytes", len(b.data)).Msg("buffer written")
	return nil
}
