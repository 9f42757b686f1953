package xof

import (
	"errors"
	"math/big"
)

var ErrInvalidInput = errors.New("xof: invalid input")

// maxEncodable is 2^2040, the exclusive upper bound for left/right_encode.
var maxEncodable = new(big.Int).Lsh(big.NewInt(1), 2040)

func minimalBytes(n *big.Int) ([]byte, error) {
	if n.Sign() < 0 || n.Cmp(maxEncodable) >= 0 {
		return nil, ErrInvalidInput
	}
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	return b, nil
}

// LeftEncode returns the length of the minimal big-endian encoding of n in
// one byte followed by that encoding.
func LeftEncode(n *big.Int) ([]byte, error) {
	b, err := minimalBytes(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(len(b))}, b...), nil
}

// RightEncode is LeftEncode with the length byte at the end.
func RightEncode(n *big.Int) ([]byte, error) {
	b, err := minimalBytes(n)
	if err != nil {
		return nil, err
	}
	return append(b, byte(len(b))), nil
}

func uintBytes(n uint64) []byte {
	var buf [8]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte(n)
		n >>= 8
		if n == 0 {
			break
		}
	}
	return buf[i:]
}

// LeftEncodeUint is LeftEncode for machine integers.
func LeftEncodeUint(n uint64) []byte {
	b := uintBytes(n)
	return append([]byte{byte(len(b))}, b...)
}

// RightEncodeUint is RightEncode for machine integers.
func RightEncodeUint(n uint64) []byte {
	b := uintBytes(n)
	return append(append([]byte{}, b...), byte(len(b)))
}

// EncodeString prefixes s with left_encode of its length in bits.
func EncodeString(s []byte) []byte {
	return append(LeftEncodeUint(uint64(len(s))*8), s...)
}

// Bytepad returns left_encode(w) || x, zero padded to a multiple of w bytes.
func Bytepad(x []byte, w int) ([]byte, error) {
	if w <= 0 {
		return nil, ErrInvalidInput
	}
	z := LeftEncodeUint(uint64(w))
	z = append(z, x...)
	if rem := len(z) % w; rem != 0 {
		z = append(z, make([]byte, w-rem)...)
	}
	return z, nil
}
