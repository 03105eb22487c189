package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xonecas/asu/internal/buffer"
)

// fakeTerminal replays input bytes and times out once they run out.
type fakeTerminal struct {
	input    []byte
	pollErr  error
	out      strings.Builder
	restored int
}

func (f *fakeTerminal) Poll() (byte, bool, error) {
	if len(f.input) == 0 {
		if f.pollErr != nil {
			return 0, false, f.pollErr
		}
		return 0, false, nil
	}
	c := f.input[0]
	f.input = f.input[1:]
	return c, true, nil
}

func (f *fakeTerminal) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakeTerminal) Size() (int, int)            { return 80, 24 }

func (f *fakeTerminal) Restore() error {
	f.restored++
	return nil
}

type fakePositions struct {
	got map[string]int
	set map[string]int
}

func (p *fakePositions) Get(path string) (int, bool) {
	off, ok := p.got[path]
	return off, ok
}

func (p *fakePositions) Set(path string, offset int) {
	if p.set == nil {
		p.set = map[string]int{}
	}
	p.set[path] = offset
}

func openFile(t *testing.T, content string) (*buffer.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	buf, err := buffer.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return buf, path
}

func TestRun_Save(t *testing.T) {
	buf, path := openFile(t, "one\n")
	ft := &fakeTerminal{input: []byte{'a', 'b', 127, 13, 19}}

	res, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Saved {
		t.Fatal("expected save")
	}
	if res.Summary.Inserted != 1 || res.Summary.Deleted != 0 {
		t.Errorf("summary = %+v, want +1 -0", res.Summary)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a\none\n" {
		t.Errorf("file = %q, want %q", got, "a\none\n")
	}
	if ft.restored != 1 {
		t.Errorf("restored %d times, want 1", ft.restored)
	}
	if !strings.HasSuffix(ft.out.String(), "\n") {
		t.Error("output should end with a newline")
	}
}

func TestRun_Quit(t *testing.T) {
	buf, path := openFile(t, "keep\n")
	// The trailing escape times out and quits.
	ft := &fakeTerminal{input: []byte{'x', 27}}

	res, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Saved {
		t.Error("quit should not save")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "keep\n" {
		t.Errorf("file changed on quit: %q", got)
	}
	if string(buf.Bytes()) != "xkeep\n" {
		t.Errorf("buffer = %q", buf.Bytes())
	}
	if ft.restored != 1 {
		t.Errorf("restored %d times, want 1", ft.restored)
	}
}

func TestRun_EscapeSwallowsNextByte(t *testing.T) {
	buf := buffer.New([]byte(""))
	ft := &fakeTerminal{input: []byte{27, 'x', 'y', 27}}

	if _, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(buf.Bytes()) != "y" {
		t.Errorf("buffer = %q, want %q", buf.Bytes(), "y")
	}
}

func TestRun_Arrows(t *testing.T) {
	buf := buffer.New([]byte("int x = 1;\nab"))
	// Down, right, then type.
	ft := &fakeTerminal{input: []byte{27, '[', 'B', 27, '[', 'C', '!', 27}}

	if _, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(buf.Bytes()) != "int x = 1;\na!b" {
		t.Errorf("buffer = %q", buf.Bytes())
	}
}

func TestRun_Cancelled(t *testing.T) {
	buf, path := openFile(t, "data")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ft := &fakeTerminal{input: []byte{'z', 19}}

	res, err := Run(ctx, Options{Terminal: ft, Buffer: buf})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Saved {
		t.Error("cancelled session should not save")
	}
	got, _ := os.ReadFile(path)
	if string(got) != "data" {
		t.Errorf("file = %q", got)
	}
	if ft.restored != 1 {
		t.Errorf("restored %d times, want 1", ft.restored)
	}
}

func TestRun_Positions(t *testing.T) {
	buf, path := openFile(t, "hello\n")
	pos := &fakePositions{got: map[string]int{path: 4}}
	ft := &fakeTerminal{input: []byte{'X', 19}}

	if _, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf, Positions: pos}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "hellXo\n" {
		t.Errorf("file = %q", got)
	}
	if pos.set[path] != 5 {
		t.Errorf("remembered offset = %d, want 5", pos.set[path])
	}
}

func TestRun_PositionsOnQuit(t *testing.T) {
	cases := []struct {
		name    string
		input   []byte
		wantSet bool
		wantOff int
	}{
		{"unchanged", []byte{27, '[', 'C', 27, '[', 'C', 27}, true, 2},
		{"discarded edits", []byte{'X', 27}, false, 0},
		{"edits undone", []byte{'X', 127, 27, '[', 'C', 27}, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf, path := openFile(t, "hello\n")
			pos := &fakePositions{}
			ft := &fakeTerminal{input: tc.input}

			if _, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf, Positions: pos}); err != nil {
				t.Fatalf("Run: %v", err)
			}
			off, ok := pos.set[path]
			if ok != tc.wantSet {
				t.Fatalf("offset remembered = %v, want %v", ok, tc.wantSet)
			}
			if ok && off != tc.wantOff {
				t.Errorf("remembered offset = %d, want %d", off, tc.wantOff)
			}
		})
	}
}

func TestRun_PositionClamped(t *testing.T) {
	buf, path := openFile(t, "ab")
	pos := &fakePositions{got: map[string]int{path: 99}}
	ft := &fakeTerminal{input: []byte{'c', 27}}

	if _, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf, Positions: pos}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(buf.Bytes()) != "abc" {
		t.Errorf("buffer = %q", buf.Bytes())
	}
}

func TestRun_SaveError(t *testing.T) {
	buf := buffer.New([]byte("no path"))
	ft := &fakeTerminal{input: []byte{19}}

	res, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf})
	if err == nil {
		t.Fatal("expected save error")
	}
	if res.Saved {
		t.Error("failed save reported as saved")
	}
	if ft.restored != 1 {
		t.Errorf("restored %d times, want 1", ft.restored)
	}
}

func TestRun_PollError(t *testing.T) {
	buf := buffer.New(nil)
	boom := errors.New("boom")
	ft := &fakeTerminal{pollErr: boom}

	_, err := Run(context.Background(), Options{Terminal: ft, Buffer: buf})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if ft.restored != 1 {
		t.Errorf("restored %d times, want 1", ft.restored)
	}
}

func TestRun_MissingOptions(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error")
	}
}
