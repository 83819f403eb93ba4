package dexio

import "testing"

func TestDecodeMUTF8_ASCII(t *testing.T) {
	buf := NewBuffer([]byte("hello"))
	got, err := buf.Cursor(0).DecodeMUTF8(5)
	if err != nil {
		t.Fatalf("DecodeMUTF8: %v", err)
	}
	if got != "hello" {
		t.Errorf("DecodeMUTF8() = %q, want %q", got, "hello")
	}
}

func TestDecodeMUTF8_OverlongNUL(t *testing.T) {
	// 0xC0 0x80 is the overlong two-byte encoding DEX uses for embedded NUL.
	buf := NewBuffer([]byte{0xC0, 0x80})
	got, err := buf.Cursor(0).DecodeMUTF8(1)
	if err != nil {
		t.Fatalf("DecodeMUTF8: %v", err)
	}
	if got != "\x00" {
		t.Errorf("DecodeMUTF8() = %q, want NUL", got)
	}
}

func TestDecodeMUTF8_RawNULRejected(t *testing.T) {
	buf := NewBuffer([]byte{0x00})
	if _, err := buf.Cursor(0).DecodeMUTF8(1); err == nil {
		t.Fatal("expected error decoding a raw embedded NUL byte")
	}
}

func TestDecodeMUTF8_CountIsAuthoritative(t *testing.T) {
	// Declares 3 units but the string only supplies 2 before EOF.
	buf := NewBuffer([]byte("ab"))
	if _, err := buf.Cursor(0).DecodeMUTF8(3); err == nil {
		t.Fatal("expected error when fewer code units are available than declared")
	}
}

func TestMUTF8_RoundTrip(t *testing.T) {
	tests := []string{"", "abc", "café", "東京"}
	for _, s := range tests {
		enc := EncodeMUTF8(s)
		got, err := NewBuffer(enc).Cursor(0).DecodeMUTF8(len(rune16(s)))
		if err != nil {
			t.Errorf("round trip %q: %v", s, err)
			continue
		}
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

// rune16 counts s's UTF-16 code units, mirroring how a DEX writer would
// have recorded utf16_size when it originally encoded s.
func rune16(s string) []uint16 {
	out := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			out = append(out, 0, 0)
		} else {
			out = append(out, uint16(r))
		}
	}
	return out
}
