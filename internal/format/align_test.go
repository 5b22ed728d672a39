package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, a, want uint32
	}{
		{0, 64, 0},
		{1, 64, 64},
		{63, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{1025, 1024, 2048},
		{65541, 64, 65600},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AlignUp(c.n, c.a), "AlignUp(%d, %d)", c.n, c.a)
	}
}

func TestAlignGap(t *testing.T) {
	require.Equal(t, uint32(0), AlignGap(0xFE00120000000000, 64))
	require.Equal(t, uint32(0), AlignGap(0, 64))
	require.Equal(t, uint32(63), AlignGap(1, 64))
	require.Equal(t, uint32(16), AlignGap(0x30, 64))
}

func TestFitsAligned(t *testing.T) {
	require.True(t, FitsAligned(1, 64))
	require.True(t, FitsAligned(uint32(MaxSize)-63, 64))
	require.False(t, FitsAligned(uint32(MaxSize)-62, 64))
	require.False(t, FitsAligned(uint32(MaxSize), 64))
}

func TestIsPowerOfTwo(t *testing.T) {
	require.False(t, IsPowerOfTwo(0))
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(64))
	require.False(t, IsPowerOfTwo(65))
	require.True(t, IsPowerOfTwo(1<<31))
}

func TestCeilPow2(t *testing.T) {
	cases := []struct {
		n, want uint32
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{65536, 65536},
		{65541, 131072},
		{1<<31 - 1, 1 << 31},
		{1 << 31, 1 << 31},
	}
	for _, c := range cases {
		require.Equal(t, c.want, CeilPow2(c.n), "CeilPow2(%d)", c.n)
	}
}
