package dexio

import "testing"

func TestULEB128(t *testing.T) {
	tests := []struct {
		in   []byte
		want uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
	}
	for _, tt := range tests {
		got, err := NewBuffer(tt.in).Cursor(0).ULEB128()
		if err != nil {
			t.Errorf("ULEB128(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ULEB128(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestULEB128_TooLong(t *testing.T) {
	// five continuation bytes in a row never terminate within the 5-byte cap.
	in := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := NewBuffer(in).Cursor(0).ULEB128()
	if err == nil {
		t.Fatal("expected error for over-long uleb128")
	}
}

func TestSLEB128_SignExtends(t *testing.T) {
	tests := []struct {
		in   []byte
		want int32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x02}, 2},
		{[]byte{0x7e}, -2},
		{[]byte{0xff, 0x00}, 127},
		{[]byte{0x80, 0x7f}, -128},
	}
	for _, tt := range tests {
		got, err := NewBuffer(tt.in).Cursor(0).SLEB128()
		if err != nil {
			t.Errorf("SLEB128(%v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SLEB128(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestULEB128p1_NoValueSentinel(t *testing.T) {
	// ULEB128p1 of 0 decodes to -1, DEX's "no value" sentinel.
	got, err := NewBuffer([]byte{0x00}).Cursor(0).ULEB128p1()
	if err != nil {
		t.Fatalf("ULEB128p1: %v", err)
	}
	if got != -1 {
		t.Errorf("ULEB128p1(0x00) = %d, want -1", got)
	}
}

func TestReadIntBits_SignExtends(t *testing.T) {
	// hint encodes length-1 in bits 5..7; length=1, byte 0xff sign-extends to -1.
	got, err := NewBuffer([]byte{0xff}).Cursor(0).ReadIntBits(0x00)
	if err != nil {
		t.Fatalf("ReadIntBits: %v", err)
	}
	if got != -1 {
		t.Errorf("ReadIntBits(len=1, 0xff) = %d, want -1", got)
	}
}

func TestReadUintBits_NoSignExtension(t *testing.T) {
	got, err := NewBuffer([]byte{0xff}).Cursor(0).ReadUintBits(0x00)
	if err != nil {
		t.Fatalf("ReadUintBits: %v", err)
	}
	if got != 0xff {
		t.Errorf("ReadUintBits(len=1, 0xff) = %d, want 0xff", got)
	}
}

func TestReadFloatBits_LeftAligns(t *testing.T) {
	// A 1-byte-length float value should land in the top byte of the
	// returned 64-bit word, not the bottom.
	got, err := NewBuffer([]byte{0x3f}).Cursor(0).ReadFloatBits(0x00)
	if err != nil {
		t.Fatalf("ReadFloatBits: %v", err)
	}
	want := uint64(0x3f) << 56
	if got != want {
		t.Errorf("ReadFloatBits(len=1, 0x3f) = %#x, want %#x", got, want)
	}
}
