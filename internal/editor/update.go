package editor

import "github.com/xonecas/asu/internal/term"

// Action tells the session loop what to do after a key.
type Action int

const (
	ActionNone Action = iota
	ActionSave        // write the buffer and exit
	ActionQuit        // exit without writing
)

// Update applies one key to the model.
func (m *Model) Update(k term.Key) (Action, error) {
	switch k.Kind {
	case term.KeyUp:
		m.MoveUp()
	case term.KeyDown:
		m.MoveDown()
	case term.KeyLeft:
		m.MoveLeft()
	case term.KeyRight:
		m.MoveRight()
	case term.KeyBackspace:
		return ActionNone, m.Backspace()
	case term.KeyEnter:
		return ActionNone, m.InsertChar('\n')
	case term.KeyChar:
		return ActionNone, m.InsertChar(k.Byte)
	case term.KeySave:
		return ActionSave, nil
	case term.KeyEscape:
		return ActionQuit, nil
	}
	return ActionNone, nil
}
