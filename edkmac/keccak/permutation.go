package keccak

import (
	"errors"
	"math/bits"
)

var ErrInvalidWidth = errors.New("keccak: invalid permutation width")

// State is the 1600-bit Keccak state as 25 little-endian lanes.
// Lane (x, y) lives at index x+5*y.
type State [25]uint64

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a,
	0x8000000080008000, 0x000000000000808b, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008a,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800a, 0x800000008000000a, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotation offsets for rho, in pi-walk order
var rotations = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// destination lane of each step of the pi walk starting at lane 1
var piLanes = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// Permute applies the full 24-round Keccak-f[1600] permutation in place.
func Permute(st *State) {
	var bc [5]uint64
	for r := 0; r < 24; r++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}

		// rho and pi
		t := st[1]
		for i := 0; i < 24; i++ {
			j := piLanes[i]
			bc[0] = st[j]
			st[j] = bits.RotateLeft64(t, rotations[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = st[j+i]
			}
			for i := 0; i < 5; i++ {
				st[j+i] ^= ^bc[(i+1)%5] & bc[(i+2)%5]
			}
		}

		// iota
		st[0] ^= roundConstants[r]
	}
}

// Rounds returns the number of rounds of Keccak-f for a permutation of the
// given width in bits: 12 + 2*log2(width/25).
func Rounds(width int) (int, error) {
	l, err := laneLog(width)
	if err != nil {
		return 0, err
	}
	return 12 + 2*l, nil
}

func laneLog(width int) (int, error) {
	if width <= 0 || width%25 != 0 {
		return 0, ErrInvalidWidth
	}
	w := width / 25
	if w&(w-1) != 0 || w > 64 {
		return 0, ErrInvalidWidth
	}
	return bits.TrailingZeros(uint(w)), nil
}

// PermuteWidth applies Keccak-p[width, rounds] to st, treating each lane as
// width/25 bits wide. Bits above the lane size are cleared. For width 1600 and
// 24 rounds the result equals Permute.
func PermuteWidth(st *State, width, rounds int) error {
	l, err := laneLog(width)
	if err != nil {
		return err
	}
	total := 12 + 2*l
	if rounds < 0 || rounds > total {
		return ErrInvalidWidth
	}
	w := uint(1) << l
	mask := ^uint64(0) >> (64 - w)
	rotl := func(x uint64, n int) uint64 {
		k := uint(n) % w
		if k == 0 {
			return x
		}
		return ((x << k) | (x >> (w - k))) & mask
	}

	for i := range st {
		st[i] &= mask
	}
	var bc [5]uint64
	for r := total - rounds; r < total; r++ {
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ rotl(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}
		t := st[1]
		for i := 0; i < 24; i++ {
			j := piLanes[i]
			bc[0] = st[j]
			st[j] = rotl(t, rotations[i])
			t = bc[0]
		}
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = st[j+i]
			}
			for i := 0; i < 5; i++ {
				st[j+i] = (st[j+i] ^ (^bc[(i+1)%5] & bc[(i+2)%5])) & mask
			}
		}
		st[0] ^= roundConstants[r] & mask
	}
	return nil
}
