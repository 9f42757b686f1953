package curve

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrNotOnCurve = errors.New("curve: point is not on the curve")

// Point is an affine curve point. The zero value is not a valid point; use
// Neutral, Generator, NewPoint or Decode.
type Point struct {
	x, y *big.Int
}

// NewPoint reduces x and y mod p and checks the curve equation.
func NewPoint(x, y *big.Int) (Point, error) {
	pt := NewPointUnchecked(x, y)
	if !pt.IsOnCurve() {
		return Point{}, ErrNotOnCurve
	}
	return pt, nil
}

// NewPointUnchecked reduces x and y mod p without checking membership.
func NewPointUnchecked(x, y *big.Int) Point {
	return Point{x: fmod(new(big.Int).Set(x)), y: fmod(new(big.Int).Set(y))}
}

// X returns a copy of the x coordinate.
func (pt Point) X() *big.Int { return new(big.Int).Set(pt.x) }

// Y returns a copy of the y coordinate.
func (pt Point) Y() *big.Int { return new(big.Int).Set(pt.y) }

func (pt Point) IsOnCurve() bool {
	if pt.x == nil || pt.y == nil {
		return false
	}
	xx := fmul(pt.x, pt.x)
	yy := fmul(pt.y, pt.y)
	lhs := fadd(xx, yy)
	rhs := fadd(one, fmul(curveD, fmul(xx, yy)))
	return lhs.Cmp(rhs) == 0
}

func (pt Point) IsNeutral() bool {
	return pt.x.Sign() == 0 && pt.y.Cmp(one) == 0
}

func (pt Point) Equal(q Point) bool {
	return pt.x.Cmp(q.x) == 0 && pt.y.Cmp(q.y) == 0
}

func (pt Point) String() string {
	return fmt.Sprintf("(%s, %s)", pt.x, pt.y)
}

// Bytes returns x || y, each as a CoordinateSize big-endian integer.
func (pt Point) Bytes() []byte {
	out := make([]byte, 2*CoordinateSize)
	pt.x.FillBytes(out[:CoordinateSize])
	pt.y.FillBytes(out[CoordinateSize:])
	return out
}

// PointFromBytes parses the Bytes form and checks curve membership.
func PointFromBytes(b []byte) (Point, error) {
	if len(b) != 2*CoordinateSize {
		return Point{}, fmt.Errorf("%w: %d bytes", ErrNotOnCurve, len(b))
	}
	x := new(big.Int).SetBytes(b[:CoordinateSize])
	y := new(big.Int).SetBytes(b[CoordinateSize:])
	if x.Cmp(prime) >= 0 || y.Cmp(prime) >= 0 {
		return Point{}, ErrNotOnCurve
	}
	return NewPoint(x, y)
}

// Negate returns (−x mod p, y).
func Negate(pt Point) Point {
	return Point{x: fsub(new(big.Int), pt.x), y: new(big.Int).Set(pt.y)}
}

// Add applies the Edwards addition law
//
//	x3 = (x1·y2 + y1·x2) / (1 + d·x1·x2·y1·y2)
//	y3 = (y1·y2 − x1·x2) / (1 − d·x1·x2·y1·y2)
//
// The law is complete for points on the curve. Off-curve input gives an
// unspecified point.
func Add(p1, p2 Point) Point {
	xx := fmul(p1.x, p2.x)
	yy := fmul(p1.y, p2.y)
	dxy := fmul(curveD, fmul(xx, yy))

	xn := fadd(fmul(p1.x, p2.y), fmul(p1.y, p2.x))
	yn := fsub(yy, xx)

	xd, _ := finv(fadd(one, dxy))
	yd, _ := finv(fsub(one, dxy))
	return Point{x: fmul(xn, xd), y: fmul(yn, yd)}
}

func Double(pt Point) Point { return Add(pt, pt) }

// ScalarMul computes s·pt by double-and-add from the most significant bit.
// A negative s multiplies −pt by |s|.
func ScalarMul(pt Point, s *big.Int) Point {
	if s.Sign() < 0 {
		return ScalarMul(Negate(pt), new(big.Int).Neg(s))
	}
	if s.Sign() == 0 {
		return Neutral()
	}
	v := pt
	for i := s.BitLen() - 2; i >= 0; i-- {
		v = Double(v)
		if s.Bit(i) == 1 {
			v = Add(v, pt)
		}
	}
	return v
}
