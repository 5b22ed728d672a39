package binmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryBits(t *testing.T) {
	d := New()
	require.Equal(t, -1, d.FindNextL1(0))

	d.SetL1(6)
	d.SetL2(6, 3)
	require.Equal(t, 6, d.FindNextL1(0))
	require.Equal(t, 6, d.FindNextL1(6))
	require.Equal(t, -1, d.FindNextL1(7))
	require.Equal(t, 3, d.FindNextL2(6, 0))
	require.Equal(t, 3, d.FindNextL2(6, 3))
	require.Equal(t, -1, d.FindNextL2(6, 4))

	d.SetL2(6, 9)
	require.Equal(t, 9, d.FindNextL2(6, 4))

	require.False(t, d.ClearL2(6, 3), "word still has bit 9")
	require.True(t, d.ClearL2(6, 9), "word should empty")
	d.ClearL1(6)
	require.Equal(t, -1, d.FindNextL1(0))
}

func TestDirectoryHeads(t *testing.T) {
	d := New()
	require.Equal(t, NoBlock, d.Head(0, 0))
	require.Equal(t, NoBlock, d.Head(21, 15))

	d.SetHead(5, 12, 42)
	require.Equal(t, int32(42), d.Head(5, 12))

	d.Reset()
	require.Equal(t, NoBlock, d.Head(5, 12))
	require.Equal(t, uint32(0), d.L1Bits())
}

func TestFindNextScansUpward(t *testing.T) {
	d := New()
	d.SetL1(0)
	d.SetL1(21)
	require.Equal(t, 0, d.FindNextL1(0))
	require.Equal(t, 21, d.FindNextL1(1))

	d.SetL2(21, 15)
	require.Equal(t, 15, d.FindNextL2(21, 0))
	require.Equal(t, 15, d.FindNextL2(21, 15))
}
