// Package base64rt accepts base64 text only when decoding and re-encoding it
// reproduces the input exactly. Alphabet membership alone admits plenty of
// ordinary words; the round trip rejects those deterministically.
package base64rt

import "encoding/base64"

var encoding = base64.StdEncoding

// DecodeValidated returns the decoded bytes and true when text is canonical
// padded standard base64. Any other input yields (nil, false).
func DecodeValidated(text string) ([]byte, bool) {
	decoded, err := encoding.DecodeString(text)
	if err != nil {
		return nil, false
	}
	if encoding.EncodeToString(decoded) != text {
		return nil, false
	}
	return decoded, true
}

// Encode returns the canonical encoding DecodeValidated accepts.
func Encode(data []byte) string {
	return encoding.EncodeToString(data)
}
