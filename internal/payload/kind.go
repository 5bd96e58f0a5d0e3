package payload

// Kind identifies the encoding a raw payload was produced with.
type Kind int

const (
	RawBytes Kind = iota
	BitString
	Base64
	Base64ThenBitString
)

func (k Kind) String() string {
	switch k {
	case BitString:
		return "bitstring"
	case Base64:
		return "base64"
	case Base64ThenBitString:
		return "base64+bitstring"
	default:
		return "raw"
	}
}

// ParseKind maps a kind label back to its Kind. ok is false for labels
// String never produces.
func ParseKind(label string) (kind Kind, ok bool) {
	switch label {
	case "raw":
		return RawBytes, true
	case "bitstring":
		return BitString, true
	case "base64":
		return Base64, true
	case "base64+bitstring":
		return Base64ThenBitString, true
	default:
		return RawBytes, false
	}
}
