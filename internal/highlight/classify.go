package highlight

// State is the token class the highlighter is currently inside.
type State int

const (
	Other State = iota
	Number
	Name
	Symbol
)

func (s State) String() string {
	switch s {
	case Number:
		return "number"
	case Name:
		return "name"
	case Symbol:
		return "symbol"
	}
	return "other"
}

// Style says what to emit before a byte.
type Style int

const (
	Plain       Style = iota // continue the current run, no escape
	Blank                    // whitespace, no escape
	NumberColor              // start of a number
	NameColor                // start of an identifier (default colour)
	SymbolColor              // start of a symbol run
)

// Escapes reports whether the style switches the foreground colour.
func (s Style) Escapes() bool {
	return s == NumberColor || s == NameColor || s == SymbolColor
}

// Classify is the transition function: given the current state and the
// next byte it returns the new state and the style for that byte.
func Classify(state State, c byte) (State, Style) {
	switch {
	case state == Number && (isAlnum(c) || c == '.'):
		return Number, Plain
	case state == Name && (isAlnum(c) || c == '_'):
		return Name, Plain
	case state == Symbol && isPunct(c):
		return Symbol, Plain
	}

	switch {
	case isDigit(c):
		return Number, NumberColor
	case isAlpha(c) || c == '_':
		return Name, NameColor
	case c == ' ':
		return Other, Blank
	}
	return Symbol, SymbolColor
}

// Highlighter runs Classify over a stream of bytes.
type Highlighter struct {
	state State
}

// Reset returns the highlighter to Other. Call at every line start.
func (h *Highlighter) Reset() { h.state = Other }

// State returns the current state.
func (h *Highlighter) State() State { return h.state }

// Next advances over c and returns its style.
func (h *Highlighter) Next(c byte) Style {
	var sty Style
	h.state, sty = Classify(h.state, c)
	return sty
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c byte) bool { return isDigit(c) || isAlpha(c) }

func isPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || c == '~'
}
