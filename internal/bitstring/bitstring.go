// Package bitstring converts bytes to and from their textual binary-digit form:
// eight '0'/'1' characters per byte, most significant bit first.
package bitstring

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrLength marks a digit string whose length is not a multiple of eight.
var ErrLength = errors.New("bit-string length error")

// LengthError reports how many digits remained after cleaning.
type LengthError struct {
	Digits int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("bit-string has %d digits, not a multiple of 8", e.Digits)
}

// Is lets errors.Is match LengthError against ErrLength.
func (e *LengthError) Is(target error) bool {
	return target == ErrLength
}

// ErrorKind classifies the failure for run history.
func (e *LengthError) ErrorKind() string {
	return "length"
}

// Encode renders each byte as eight binary digits with no separator.
func Encode(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 8)
	for _, v := range data {
		for shift := 7; shift >= 0; shift-- {
			if v&(1<<uint(shift)) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

// Decode drops every character other than '0' and '1', then packs each
// consecutive group of eight digits into one byte.
func Decode(text string) ([]byte, error) {
	digits := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '0' || c == '1' {
			digits = append(digits, c)
		}
	}
	if len(digits)%8 != 0 {
		return nil, &LengthError{Digits: len(digits)}
	}

	out := make([]byte, len(digits)/8)
	for i := range out {
		var v byte
		for _, d := range digits[i*8 : i*8+8] {
			v = v<<1 | (d - '0')
		}
		out[i] = v
	}
	return out, nil
}

// Match reports whether text is a bit-string: only '0', '1' and whitespace,
// with at least one digit.
func Match(text string) bool {
	digits := 0
	for _, r := range text {
		switch {
		case r == '0' || r == '1':
			digits++
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return digits > 0
}
