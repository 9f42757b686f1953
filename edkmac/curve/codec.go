package curve

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrNoRoot   = errors.New("curve: no square root")
	ErrDecoding = errors.New("curve: cannot decode point")
)

// SqrtModP returns the square root of v mod p whose low bit is lsb.
// It returns ErrNoRoot when v is not a quadratic residue. The root of 0 is 0
// regardless of lsb.
func SqrtModP(v *big.Int, lsb bool) (*big.Int, error) {
	v = fmod(new(big.Int).Set(v))
	if v.Sign() == 0 {
		return new(big.Int), nil
	}
	r := new(big.Int).Exp(v, sqrtExp, prime)
	if (r.Bit(0) == 1) != lsb {
		r.Sub(prime, r)
	}
	if fmul(r, r).Cmp(v) != 0 {
		return nil, ErrNoRoot
	}
	return r, nil
}

// solve solves u² = (1 − t²) / (1 + 39081·t²) for u with the given parity.
// On this curve it gives y from x and x from y alike.
func solve(t *big.Int, lsb bool) (*big.Int, error) {
	tt := fmul(t, t)
	num := fsub(one, tt)
	den, ok := finv(fadd(one, fmul(big.NewInt(dMagnitude), tt)))
	if !ok {
		return nil, ErrNoRoot
	}
	return SqrtModP(fmul(num, den), lsb)
}

// Decode returns the point with the given x whose y has low bit lsb.
func Decode(x *big.Int, lsb bool) (Point, error) {
	x = fmod(new(big.Int).Set(x))
	y, err := solve(x, lsb)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return Point{x: x, y: y}, nil
}

// Encode writes y little-endian in EncodedSize bytes and replaces the most
// significant byte with the low byte of x.
func Encode(pt Point) []byte {
	out := make([]byte, EncodedSize)
	be := pt.y.FillBytes(make([]byte, EncodedSize))
	for i, b := range be {
		out[EncodedSize-1-i] = b
	}
	out[EncodedSize-1] = byte(pt.x.Uint64())
	return out
}

// Decompress reverses Encode.
func Decompress(b []byte) (Point, error) {
	if len(b) != EncodedSize {
		return Point{}, fmt.Errorf("%w: encoding is %d bytes", ErrDecoding, len(b))
	}
	be := make([]byte, CoordinateSize)
	for i := 0; i < CoordinateSize; i++ {
		be[CoordinateSize-1-i] = b[i]
	}
	y := new(big.Int).SetBytes(be)
	if y.Cmp(prime) >= 0 {
		return Point{}, ErrDecoding
	}
	low := b[EncodedSize-1]
	x, err := solve(y, low&1 == 1)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if byte(x.Uint64()) != low {
		return Point{}, ErrDecoding
	}
	return Point{x: x, y: y}, nil
}
