package term

// KeyKind identifies a decoded key.
type KeyKind int

const (
	KeyNone KeyKind = iota // nothing to do (ignored sequence)
	KeyChar
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeySave
	KeyEscape
)

func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyRight:
		return "right"
	case KeyLeft:
		return "left"
	case KeySave:
		return "ctrl+s"
	case KeyEscape:
		return "esc"
	}
	return "none"
}

// Raw input bytes with special meaning.
const (
	byteSave      = 19  // ctrl+s
	byteEscape    = 27  // esc
	byteBackspace = 127 // del
	byteReturn    = 13  // cr
)

// Key is one decoded input event. Byte is set for KeyChar.
type Key struct {
	Kind KeyKind
	Byte byte
}

// Poller returns the next input byte, or ok=false if none arrived before
// the poll timeout.
type Poller interface {
	Poll() (c byte, ok bool, err error)
}

// ReadKey waits for one key. It returns a KeyNone key when the poll times
// out so the caller can check for cancellation between keys.
//
// ESC followed by "[" and A-D is an arrow key. ESC with nothing after it
// within the poll timeout is a lone escape. ESC followed by any other byte
// is swallowed.
func ReadKey(p Poller) (Key, error) {
	c, ok, err := p.Poll()
	if err != nil || !ok {
		return Key{}, err
	}

	switch c {
	case byteSave:
		return Key{Kind: KeySave}, nil
	case byteBackspace:
		return Key{Kind: KeyBackspace}, nil
	case byteReturn:
		return Key{Kind: KeyEnter}, nil
	case byteEscape:
		return readEscape(p)
	}
	return Key{Kind: KeyChar, Byte: c}, nil
}

func readEscape(p Poller) (Key, error) {
	c, ok, err := p.Poll()
	if err != nil {
		return Key{}, err
	}
	if !ok {
		return Key{Kind: KeyEscape}, nil
	}
	if c != '[' {
		return Key{}, nil
	}

	c, ok, err = p.Poll()
	if err != nil || !ok {
		return Key{}, err
	}
	switch c {
	case 'A':
		return Key{Kind: KeyUp}, nil
	case 'B':
		return Key{Kind: KeyDown}, nil
	case 'C':
		return Key{Kind: KeyRight}, nil
	case 'D':
		return Key{Kind: KeyLeft}, nil
	}
	return Key{}, nil
}
