package corefmt

import (
	"bytes"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	in := []byte{0x00, 0x36, 0x3f, 0xb5, 0xff}
	s := EncodeHex(in)
	if s != "00363fb5ff" {
		t.Fatalf("EncodeHex = %q, want 00363fb5ff", s)
	}
	out, err := DecodeHex(s)
	if err != nil {
		t.Fatalf("DecodeHex: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("round trip changed bytes: %x != %x", in, out)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	in := []byte("snapshot bytes \x00\x01\x02")
	for name, codec := range map[string]struct {
		enc func([]byte) string
		dec func(string) ([]byte, error)
	}{
		"std": {EncodeBase64, DecodeBase64},
		"url": {EncodeBase64URL, DecodeBase64URL},
	} {
		out, err := codec.dec(codec.enc(in))
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("%s: round trip changed bytes", name)
		}
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	if _, err := DecodeHex("xyz"); err == nil {
		t.Fatal("DecodeHex accepted non-hex input")
	}
	if _, err := DecodeBase64("!!!"); err == nil {
		t.Fatal("DecodeBase64 accepted non-base64 input")
	}
}
