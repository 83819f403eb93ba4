package dex

import (
	"encoding/binary"
	"testing"
)

// buildDexWithTrailer appends extra bytes after a minimal single-class DEX
// image, for tests that need to plant try/catch tables at a known offset
// without going through a real code_item.
func buildDexWithTrailer(t *testing.T, trailer []byte) (image []byte, trailerOff int) {
	t.Helper()
	image = buildMinimalDex(t, "Lfoo;")
	trailerOff = len(image)
	image = append(image, trailer...)
	return image, trailerOff
}

func TestDecodeCatchHandlers_TypedOnly(t *testing.T) {
	// outer list size byte (unread by decodeCatchHandlers) + one
	// encoded_catch_handler: size=+1, (type_idx=0, addr=5).
	trailer := []byte{0x01, 0x01, 0x00, 0x05}
	image, off := buildDexWithTrailer(t, trailer)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	got, err := r.decodeCatchHandlers(off, 1)
	if err != nil {
		t.Fatalf("decodeCatchHandlers: %v", err)
	}
	want := []TryCatchHandler{{Type: "Lfoo;", Handler: 5}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("decodeCatchHandlers() = %v, want %v", got, want)
	}
}

func TestDecodeCatchHandlers_TypedPlusCatchAll(t *testing.T) {
	// size=-1: one typed handler, then a trailing catch-all address.
	trailer := []byte{0x01, 0x7f, 0x00, 0x05, 0x0a}
	image, off := buildDexWithTrailer(t, trailer)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	got, err := r.decodeCatchHandlers(off, 1)
	if err != nil {
		t.Fatalf("decodeCatchHandlers: %v", err)
	}
	want := []TryCatchHandler{
		{Type: "Lfoo;", Handler: 5},
		{Type: "", Handler: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("decodeCatchHandlers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("decodeCatchHandlers()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecodeTries(t *testing.T) {
	tryItem := make([]byte, 8)
	binary.LittleEndian.PutUint32(tryItem[0:], 0)    // start_addr
	binary.LittleEndian.PutUint16(tryItem[4:], 4)     // insn_count
	binary.LittleEndian.PutUint16(tryItem[6:], 1)     // handler_off
	image, off := buildDexWithTrailer(t, tryItem)
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	got, err := r.decodeTries(off, 1)
	if err != nil {
		t.Fatalf("decodeTries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("decodeTries() = %v, want 1 entry", got)
	}
	want := tryItem0{StartAddr: 0, InsnCount: 4, HandlerOff: 1}
	if got[0].StartAddr != want.StartAddr || got[0].InsnCount != want.InsnCount || got[0].HandlerOff != want.HandlerOff {
		t.Errorf("decodeTries()[0] = %+v, want %+v", got[0], want)
	}
}

// tryItem0 mirrors tryItem's fields; kept distinct so this test doesn't
// depend on tryItem's exact type identity, only its shape.
type tryItem0 struct {
	StartAddr  uint32
	InsnCount  uint16
	HandlerOff uint16
}

func TestHandlerListBase(t *testing.T) {
	if got := handlerListBase(100, 3); got != 100+3*8 {
		t.Errorf("handlerListBase(100, 3) = %d, want %d", got, 100+3*8)
	}
}

func TestDecodeTries_ZeroSizeIsNil(t *testing.T) {
	image := buildMinimalDex(t, "Lfoo;")
	r, err := OpenBytes(image, Config{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	got, err := r.decodeTries(0, 0)
	if err != nil {
		t.Fatalf("decodeTries: %v", err)
	}
	if got != nil {
		t.Errorf("decodeTries(0,0) = %v, want nil", got)
	}
}
