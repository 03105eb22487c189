// Package session runs one editing session: it owns the terminal for the
// duration of the edit and drives the read, update, render loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/asu/internal/buffer"
	"github.com/xonecas/asu/internal/editor"
	"github.com/xonecas/asu/internal/term"
)

// Terminal is the part of *term.Terminal the loop needs.
type Terminal interface {
	term.Poller
	io.Writer
	Size() (cols, rows int)
	Restore() error
}

// Positions remembers cursor offsets between sessions. *store.Positions
// satisfies it, including a nil one.
type Positions interface {
	Get(path string) (int, bool)
	Set(path string, offset int)
}

// Options configures Run.
type Options struct {
	Terminal  Terminal // already in editing mode; Run restores it
	Buffer    *buffer.Buffer
	Positions Positions // optional
	Editor    editor.Options
}

// Result reports how the session ended.
type Result struct {
	Saved   bool
	Summary buffer.Summary // line changes written, when Saved
}

// Run edits opts.Buffer until the user saves, quits or ctx is cancelled.
// The terminal is restored before Run returns on every path.
func Run(ctx context.Context, opts Options) (res Result, err error) {
	if opts.Terminal == nil || opts.Buffer == nil {
		return Result{}, errors.New("session: terminal and buffer are required")
	}
	t := opts.Terminal
	defer func() {
		if rerr := t.Restore(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	buf := opts.Buffer
	m := editor.New(buf, opts.Editor)
	if opts.Positions != nil && buf.Path() != "" {
		if off, ok := opts.Positions.Get(buf.Path()); ok {
			m.SetOffset(off)
			log.Debug().Str("file", buf.Path()).Int("offset", m.Cursor().Offset).Msg("restored cursor")
		}
	}

	if err := render(m, t); err != nil {
		return Result{}, err
	}

	var saveErr error
loop:
	for {
		select {
		case <-ctx.Done():
			log.Info().Err(context.Cause(ctx)).Msg("session interrupted")
			break loop
		default:
		}

		k, err := term.ReadKey(t)
		if err != nil {
			return Result{}, err
		}
		if k.Kind == term.KeyNone {
			continue
		}

		action, err := m.Update(k)
		if err != nil {
			log.Warn().Err(err).Stringer("key", k.Kind).Int("offset", m.Cursor().Offset).Msg("edit failed")
		}

		switch action {
		case editor.ActionSave:
			res.Summary = buf.Changes()
			if saveErr = buf.Write(); saveErr == nil {
				res.Saved = true
			}
			break loop
		case editor.ActionQuit:
			break loop
		}

		if err := render(m, t); err != nil {
			return Result{}, err
		}
	}

	// An offset into discarded edits would point at the wrong text next time.
	if opts.Positions != nil && buf.Path() != "" && (res.Saved || buf.Changes().Empty()) {
		opts.Positions.Set(buf.Path(), m.Cursor().Offset)
	}

	// Leave the shell prompt below the text.
	m.MoveEnd()
	if err := render(m, t); err != nil {
		return res, errors.Join(saveErr, err)
	}
	if _, err := io.WriteString(t, "\n"); err != nil {
		return res, errors.Join(saveErr, err)
	}
	if saveErr != nil {
		return Result{}, fmt.Errorf("save %s: %w", buf.Path(), saveErr)
	}
	return res, nil
}

func render(m *editor.Model, t Terminal) error {
	cols, rows := t.Size()
	if err := m.Render(t, cols, rows); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
