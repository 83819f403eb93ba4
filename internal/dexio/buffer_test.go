package dexio

import "testing"

func TestCursor_UIntLittleEndian(t *testing.T) {
	buf := NewBuffer([]byte{0x78, 0x56, 0x34, 0x12})
	c := buf.Cursor(0)
	got, err := c.UInt()
	if err != nil {
		t.Fatalf("UInt: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("UInt() = %#x, want 0x12345678", got)
	}
	if c.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", c.Pos())
	}
}

func TestCursor_SShortSignExtends(t *testing.T) {
	// 0xFFFE as int16 is -2.
	buf := NewBuffer([]byte{0xFE, 0xFF})
	got, err := buf.Cursor(0).SShort()
	if err != nil {
		t.Fatalf("SShort: %v", err)
	}
	if got != -2 {
		t.Errorf("SShort() = %d, want -2", got)
	}
}

func TestCursor_BoundsError(t *testing.T) {
	buf := NewBuffer([]byte{0x01, 0x02})
	_, err := buf.Cursor(1).UInt()
	if err == nil {
		t.Fatal("expected bounds error, got nil")
	}
	if !ErrBounds(err) {
		t.Errorf("expected ErrBounds(err), got %v", err)
	}
}

func TestCursor_IndependentPositions(t *testing.T) {
	buf := NewBuffer([]byte{0xAA, 0xBB, 0xCC, 0xDD})
	a := buf.Cursor(0)
	b := buf.Cursor(2)

	if _, err := a.UByte(); err != nil {
		t.Fatalf("a.UByte: %v", err)
	}
	gotB, err := b.UByte()
	if err != nil {
		t.Fatalf("b.UByte: %v", err)
	}
	if gotB != 0xCC {
		t.Errorf("b.UByte() = %#x, want 0xcc", gotB)
	}
	if a.Pos() != 1 {
		t.Errorf("a advancing should not move b: a.Pos() = %d, want 1", a.Pos())
	}
}

func TestBuffer_SliceIsBoundsChecked(t *testing.T) {
	buf := NewBuffer(make([]byte, 8))
	if _, err := buf.Slice(4, 8); err == nil {
		t.Fatal("expected out-of-bounds slice to fail")
	}
	sub, err := buf.Slice(2, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.Len() != 4 {
		t.Errorf("sub.Len() = %d, want 4", sub.Len())
	}
}
