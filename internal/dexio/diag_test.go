package dexio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiags_AccumulatesWithoutLogger(t *testing.T) {
	d := NewDiags(nil)
	require.Equal(t, 0, d.Len())

	d.Warn(3, "Lfoo;->bar()V", 0x42, DiagDupMethod, "method_idx %d seen twice", 7)
	require.Equal(t, 1, d.Len())

	got := d.Items()[0]
	require.Equal(t, 3, got.ClassIndex)
	require.Equal(t, "Lfoo;->bar()V", got.MethodDescr)
	require.Equal(t, int64(0x42), got.Offset)
	require.Equal(t, DiagDupMethod, got.Kind)
	require.Equal(t, "method_idx 7 seen twice", got.Msg)
}

func TestDiag_StringOmitsMethodWhenEmpty(t *testing.T) {
	d := Diag{ClassIndex: 1, Kind: DiagHeaderVersion, Offset: 0x70, Msg: "unsupported"}
	require.NotContains(t, d.String(), "@0x70: unsupported\n")
	require.Contains(t, d.String(), "class#1 @0x70: unsupported")
}

func TestDiags_MultipleWarningsPreserveOrder(t *testing.T) {
	d := NewDiags(nil)
	d.Warn(0, "", 1, DiagZeroWidthInsn, "first")
	d.Warn(0, "", 2, DiagZeroWidthInsn, "second")

	items := d.Items()
	require.Len(t, items, 2)
	require.Equal(t, "first", items[0].Msg)
	require.Equal(t, "second", items[1].Msg)
}
