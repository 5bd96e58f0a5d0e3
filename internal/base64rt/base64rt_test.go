package base64rt_test

import (
	"bytes"
	"testing"

	"qrpayload/internal/base64rt"
)

func TestDecodeValidatedAcceptsCanonicalEncodings(t *testing.T) {
	inputs := [][]byte{
		[]byte("Hello"),
		[]byte("01000001"),
		{0x00, 0xff, 0x10},
		{0xfb, 0xff},
	}
	for _, in := range inputs {
		encoded := base64rt.Encode(in)
		got, ok := base64rt.DecodeValidated(encoded)
		if !ok {
			t.Fatalf("DecodeValidated(%q) rejected canonical input", encoded)
		}
		if !bytes.Equal(got, in) {
			t.Fatalf("DecodeValidated(%q) = %x, want %x", encoded, got, in)
		}
	}
}

func TestDecodeValidatedHello(t *testing.T) {
	got, ok := base64rt.DecodeValidated("SGVsbG8=")
	if !ok || string(got) != "Hello" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestDecodeValidatedRejectsNonCanonical(t *testing.T) {
	cases := []string{
		"hello world", // space outside alphabet
		"SGVsbG8",     // missing padding
		"SGVsbG9=",    // non-zero trailing bits re-encode differently
		"SGVs\nbG8=",  // newline is skipped on decode but not re-emitted
		"SGVsbG8=\n",
		"SGVsbG8_",
		"%%%%",
	}
	for _, in := range cases {
		if got, ok := base64rt.DecodeValidated(in); ok {
			t.Fatalf("DecodeValidated(%q) accepted, decoded %q", in, got)
		}
	}
}

func TestDecodeValidatedEmpty(t *testing.T) {
	got, ok := base64rt.DecodeValidated("")
	if !ok {
		t.Fatal("empty text is a valid round trip")
	}
	if len(got) != 0 {
		t.Fatalf("expected no bytes, got %x", got)
	}
}
