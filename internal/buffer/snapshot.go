package buffer

import (
	"os"
	"time"
)

// Snapshot holds mtime+size of a file for change detection.
type Snapshot struct {
	ModTime time.Time
	Size    int64
}

// Stat returns the current snapshot of the file at path.
func Stat(path string) (Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ModTime: info.ModTime(), Size: info.Size()}, nil
}

func snapshotFile(f *os.File) (Snapshot, error) {
	info, err := f.Stat()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Changed reports whether the file at path differs from the snapshot.
// A zero snapshot never reports a change.
func (s Snapshot) Changed(path string) (bool, error) {
	if s.ModTime.IsZero() {
		return false, nil
	}
	cur, err := Stat(path)
	if err != nil {
		return false, err
	}
	return !cur.ModTime.Equal(s.ModTime) || cur.Size != s.Size, nil
}
