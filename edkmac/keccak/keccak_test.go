package keccak

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestPermuteZeroState(t *testing.T) {
	var st State
	Permute(&st)
	assert.Equal(t, uint64(0xf1258f7940e1dde7), st[0])
	assert.Equal(t, uint64(0x84d5ccf933c0478a), st[1])
	assert.Equal(t, uint64(0xeaf1ff7b5ceca249), st[24])
}

func TestRounds(t *testing.T) {
	for width, want := range map[int]int{25: 12, 50: 14, 100: 16, 200: 18, 400: 20, 800: 22, 1600: 24} {
		got, err := Rounds(width)
		require.NoError(t, err, "width %d", width)
		assert.Equal(t, want, got, "width %d", width)
	}
	for _, width := range []int{0, 24, 75, 3200} {
		_, err := Rounds(width)
		assert.ErrorIs(t, err, ErrInvalidWidth, "width %d", width)
	}
}

func TestPermuteWidthMatchesPermute(t *testing.T) {
	var a, b State
	for i := range a {
		a[i] = uint64(i) * 0x0123456789abcdef
	}
	b = a
	Permute(&a)
	require.NoError(t, PermuteWidth(&b, 1600, 24))
	assert.Equal(t, a, b)
}

func TestPermuteWidthSmallLanes(t *testing.T) {
	var st State
	for i := range st {
		st[i] = 0xffff_ffff_ffff_ff00 | uint64(i)
	}
	require.NoError(t, PermuteWidth(&st, 200, 18))
	for i, lane := range st {
		assert.LessOrEqual(t, lane, uint64(0xff), "lane %d escaped its width", i)
	}

	var zero State
	require.NoError(t, PermuteWidth(&zero, 200, 18))
	assert.NotEqual(t, State{}, zero)

	assert.ErrorIs(t, PermuteWidth(&st, 200, 19), ErrInvalidWidth)
}

func TestSumMatchesShake256(t *testing.T) {
	// lengths around the 136-byte rate boundary, including the case where the
	// suffix lands on the last rate byte
	for _, n := range []int{0, 1, 7, 8, 134, 135, 136, 137, 271, 272, 1000} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}
		want := make([]byte, 300)
		sha3.ShakeSum256(want, data)
		assert.Equal(t, want, Sum(data, 0x1f, 300), "input length %d", n)
	}
}

func TestSumMatchesSHA3(t *testing.T) {
	data := []byte("the quick brown fox")
	want := sha3.Sum256(data)
	assert.Equal(t, want[:], Sum(data, 0x06, 32))
}

func TestSpongeLegacyKeccak512(t *testing.T) {
	s, err := NewSponge(1024)
	require.NoError(t, err)
	assert.Equal(t, 72, s.Rate())

	data := bytes.Repeat([]byte{0xa3}, 200)
	require.NoError(t, s.Absorb(data[:50]))
	require.NoError(t, s.Absorb(data[50:]))

	h := sha3.NewLegacyKeccak512()
	h.Write(data)
	assert.Equal(t, h.Sum(nil), s.Squeeze(64))
}

func TestSpongeSqueezeIsStream(t *testing.T) {
	data := []byte("stream")
	whole := Sum(data, 0x1f, 500)

	s, err := NewSponge(Capacity512)
	require.NoError(t, err)
	require.NoError(t, s.Absorb(data))
	s.Pad(0x1f)
	var parts []byte
	for _, n := range []int{1, 135, 136, 100, 128} {
		parts = append(parts, s.Squeeze(n)...)
	}
	assert.Equal(t, whole, parts)
}

func TestSpongeAbsorbAfterSqueeze(t *testing.T) {
	s, err := NewSponge(Capacity512)
	require.NoError(t, err)
	s.Pad(0x1f)
	_ = s.Squeeze(1)
	assert.ErrorIs(t, s.Absorb([]byte{1}), ErrSqueezing)
}

func TestNewSpongeInvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -64, 100, 1600, 2048} {
		_, err := NewSponge(c)
		assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", c)
	}
}

func BenchmarkPermute(b *testing.B) {
	var st State
	b.SetBytes(Width)
	for i := 0; i < b.N; i++ {
		Permute(&st)
	}
}

func BenchmarkSum(b *testing.B) {
	data := make([]byte, 64*1024)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sum(data, 0x1f, 64)
	}
}
