package payload

import (
	"qrpayload/internal/base64rt"
	"qrpayload/internal/bitstring"
)

// DefaultMaxDepth allows exactly one base64 layer around a bit-string.
const DefaultMaxDepth = 1

// Classification is the outcome of inspecting a raw payload. Layers counts the
// base64 layers the decode step has to unwrap.
type Classification struct {
	Kind   Kind
	Layers int
}

// Decoder classifies and decodes payloads. The zero value uses
// DefaultMaxDepth.
type Decoder struct {
	// MaxDepth bounds how many base64 layers may wrap a bit-string.
	MaxDepth int
}

// NewDecoder returns a Decoder with the given nesting bound. Values below one
// fall back to DefaultMaxDepth.
func NewDecoder(maxDepth int) Decoder {
	return Decoder{MaxDepth: maxDepth}
}

func (d Decoder) depth() int {
	if d.MaxDepth < 1 {
		return DefaultMaxDepth
	}
	return d.MaxDepth
}

// Classify selects exactly one decode path for raw. It never fails and has no
// side effects; identical input always yields the identical classification.
func (d Decoder) Classify(raw string) Classification {
	if raw == "" {
		return Classification{Kind: RawBytes}
	}
	if bitstring.Match(raw) {
		return Classification{Kind: BitString}
	}

	layer, ok := base64rt.DecodeValidated(raw)
	if !ok {
		return Classification{Kind: RawBytes}
	}

	maxDepth := d.depth()
	for depth := 1; depth <= maxDepth; depth++ {
		if !isASCII(layer) {
			break
		}
		text := string(layer)
		if bitstring.Match(text) {
			return Classification{Kind: Base64ThenBitString, Layers: depth}
		}
		if depth == maxDepth || text == "" {
			break
		}
		next, ok := base64rt.DecodeValidated(text)
		if !ok {
			break
		}
		layer = next
	}
	return Classification{Kind: Base64, Layers: 1}
}

// Classify reports the Kind of raw using DefaultMaxDepth.
func Classify(raw string) Kind {
	return Decoder{}.Classify(raw).Kind
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
