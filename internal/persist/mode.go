package persist

import "strings"

// Mode selects how the extracted payload is turned into output bytes.
type Mode int

const (
	// Binary runs the payload through classification and decoding.
	Binary Mode = iota
	// Text writes the extracted text exactly as read from the symbol.
	Text
)

func (m Mode) String() string {
	switch m {
	case Text:
		return "text"
	default:
		return "binary"
	}
}

// ParseMode maps the command-line binary-mode argument to a Mode. Only "true"
// (any case) selects Binary; every other value selects Text.
func ParseMode(value string) Mode {
	if strings.EqualFold(strings.TrimSpace(value), "true") {
		return Binary
	}
	return Text
}

// Target names where a payload is written and how it was produced.
type Target struct {
	Path string
	Mode Mode
}
