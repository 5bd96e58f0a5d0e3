package bitstring_test

import (
	"bytes"
	"errors"
	"testing"

	"qrpayload/internal/bitstring"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff},
		{0x48, 0x69},
		[]byte("The quick brown fox"),
	}
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	inputs = append(inputs, all)

	for _, in := range inputs {
		encoded := bitstring.Encode(in)
		if len(encoded) != len(in)*8 {
			t.Fatalf("encoded length %d, want %d", len(encoded), len(in)*8)
		}
		got, err := bitstring.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q): %v", encoded, err)
		}
		if !bytes.Equal(got, in) {
			t.Fatalf("round trip mismatch: got %x want %x", got, in)
		}
	}
}

func TestEncodeMostSignificantBitFirst(t *testing.T) {
	if got := bitstring.Encode([]byte{0x41, 0x01}); got != "0100000100000001" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestDecodeIgnoresSeparators(t *testing.T) {
	got, err := bitstring.Decode("01001000 01101001\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, []byte("Hi")) {
		t.Fatalf("got %q want %q", got, "Hi")
	}

	got, err = bitstring.Decode("0100-0001,")
	if err != nil {
		t.Fatalf("Decode with punctuation: %v", err)
	}
	if !bytes.Equal(got, []byte{0x41}) {
		t.Fatalf("got %x want 41", got)
	}
}

func TestDecodeLengthError(t *testing.T) {
	for _, in := range []string{"101", "0100000", "01000001 1"} {
		_, err := bitstring.Decode(in)
		if !errors.Is(err, bitstring.ErrLength) {
			t.Fatalf("Decode(%q): expected ErrLength, got %v", in, err)
		}
		var lengthErr *bitstring.LengthError
		if !errors.As(err, &lengthErr) {
			t.Fatalf("Decode(%q): expected *LengthError, got %T", in, err)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"01000001", true},
		{"0100 0001\n\t", true},
		{"1", true},
		{"", false},
		{"   \n", false},
		{"012", false},
		{"hello", false},
		{"0100 0001", true},
	}
	for _, tc := range cases {
		if got := bitstring.Match(tc.in); got != tc.want {
			t.Fatalf("Match(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
