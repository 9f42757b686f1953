package keccak

import "errors"

const (
	// Width is the permutation width in bytes.
	Width = 200

	// Capacity512 is the capacity in bits used by SHAKE256, cSHAKE256 and KMAC256.
	Capacity512 = 512
	// Rate512 is the rate in bytes that goes with Capacity512.
	Rate512 = Width - Capacity512/8
)

var (
	ErrInvalidCapacity = errors.New("keccak: invalid sponge capacity")
	ErrSqueezing       = errors.New("keccak: absorb after squeeze")
)

// Sponge is a single-use sponge over Keccak-f[1600]. It absorbs input,
// is padded exactly once, and is then squeezed for output.
type Sponge struct {
	state     State
	rate      int
	pos       int
	squeezing bool
}

// NewSponge returns a sponge with the given capacity in bits.
func NewSponge(capacity int) (*Sponge, error) {
	if capacity <= 0 || capacity >= Width*8 || capacity%64 != 0 {
		return nil, ErrInvalidCapacity
	}
	return &Sponge{rate: Width - capacity/8}, nil
}

// Rate returns the number of bytes processed per permutation.
func (s *Sponge) Rate() int { return s.rate }

func (s *Sponge) xorByte(i int, b byte) {
	s.state[i/8] ^= uint64(b) << (8 * uint(i%8))
}

func (s *Sponge) byteAt(i int) byte {
	return byte(s.state[i/8] >> (8 * uint(i%8)))
}

// Absorb XORs p into the state, permuting after every full rate block.
func (s *Sponge) Absorb(p []byte) error {
	if s.squeezing {
		return ErrSqueezing
	}
	for len(p) > 0 {
		if s.pos == 0 && len(p) >= s.rate && s.rate%8 == 0 {
			// whole block, lane at a time
			for i := 0; i < s.rate/8; i++ {
				s.state[i] ^= le64(p[8*i:])
			}
			Permute(&s.state)
			p = p[s.rate:]
			continue
		}
		s.xorByte(s.pos, p[0])
		s.pos++
		p = p[1:]
		if s.pos == s.rate {
			Permute(&s.state)
			s.pos = 0
		}
	}
	return nil
}

// Pad finishes absorption. suffix carries the domain separation bits and the
// first bit of the 10*1 padding (0x1f for SHAKE, 0x04 for cSHAKE); the final
// padding bit goes into the top bit of the last rate byte. Both may land in
// the same byte.
func (s *Sponge) Pad(suffix byte) {
	if s.squeezing {
		return
	}
	s.xorByte(s.pos, suffix)
	s.xorByte(s.rate-1, 0x80)
	Permute(&s.state)
	s.pos = 0
	s.squeezing = true
}

// Squeeze returns the next n bytes of output. If the sponge is still
// absorbing it is padded with the bare Keccak suffix first.
func (s *Sponge) Squeeze(n int) []byte {
	if !s.squeezing {
		s.Pad(0x01)
	}
	out := make([]byte, n)
	for i := range out {
		if s.pos == s.rate {
			Permute(&s.state)
			s.pos = 0
		}
		out[i] = s.byteAt(s.pos)
		s.pos++
	}
	return out
}

// Sum absorbs data into a fresh capacity-512 sponge, pads it with suffix and
// squeezes n bytes.
func Sum(data []byte, suffix byte, n int) []byte {
	s := &Sponge{rate: Rate512}
	_ = s.Absorb(data)
	s.Pad(suffix)
	return s.Squeeze(n)
}

func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
