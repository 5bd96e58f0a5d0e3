package payload

import (
	"errors"
	"fmt"

	"qrpayload/internal/base64rt"
	"qrpayload/internal/bitstring"
)

// ErrClassification reports a payload that no longer fits the classification
// it was decoded under.
var ErrClassification = errors.New("payload does not match classification")

// Result captures one interpreted payload.
type Result struct {
	Raw    string
	Kind   Kind
	Layers int
	Data   []byte
}

// Decode produces the canonical bytes for raw under c. It never falls back to
// a different kind: a bit-string length failure is returned as is.
func (d Decoder) Decode(raw string, c Classification) ([]byte, error) {
	switch c.Kind {
	case BitString:
		return bitstring.Decode(raw)
	case Base64:
		data, ok := base64rt.DecodeValidated(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrClassification, c.Kind)
		}
		return data, nil
	case Base64ThenBitString:
		text := raw
		for i := 0; i < c.Layers; i++ {
			layer, ok := base64rt.DecodeValidated(text)
			if !ok {
				return nil, fmt.Errorf("%w: %s layer %d", ErrClassification, c.Kind, i+1)
			}
			text = string(layer)
		}
		return bitstring.Decode(text)
	default:
		return []byte(raw), nil
	}
}

// Interpret classifies raw once and decodes it along the selected path.
func (d Decoder) Interpret(raw string) (Result, error) {
	c := d.Classify(raw)
	res := Result{Raw: raw, Kind: c.Kind, Layers: c.Layers}
	data, err := d.Decode(raw, c)
	if err != nil {
		return res, err
	}
	res.Data = data
	return res, nil
}

// Interpret runs Decoder.Interpret with DefaultMaxDepth.
func Interpret(raw string) (Result, error) {
	return Decoder{}.Interpret(raw)
}
