package crypto

import (
	"crypto/subtle"
	"math/big"

	"github.com/TheusHen/edkmac/edkmac/curve"
	"github.com/TheusHen/edkmac/edkmac/xof"
)

const (
	// NonceSize is the random prefix of a symmetric cryptogram.
	NonceSize = 64
	// TagSize is the length of every authentication tag and digest.
	TagSize = 64
	// KeySize is the length of each half of the derived ke || ka pair.
	KeySize = 64
)

// kmac runs KMACXOF256 with a whole number of bytes, which cannot fail.
func kmac(k, x []byte, size int, s string) []byte {
	out, err := xof.KMACXOF256(k, x, size*8, []byte(s))
	if err != nil {
		panic(err)
	}
	return out
}

// splitKeys derives ke || ka from key material under customization s.
func splitKeys(material []byte, s string) (ke, ka []byte) {
	keka := kmac(material, nil, 2*KeySize, s)
	return keka[:KeySize], keka[KeySize:]
}

// xorStream masks data with KMACXOF256(ke, "", bitlength(data), s).
func xorStream(ke, data []byte, s string) []byte {
	out := kmac(ke, nil, len(data), s)
	subtle.XORBytes(out, out, data)
	return out
}

func tagEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// scalarBytes is the fixed-width big-endian form of s mod r used as KMAC key.
func scalarBytes(s *big.Int) []byte {
	k := new(big.Int).Mod(s, curve.Order())
	return k.FillBytes(make([]byte, curve.CoordinateSize))
}

// coordinateBytes is the fixed-width big-endian form of a coordinate.
func coordinateBytes(c *big.Int) []byte {
	return c.FillBytes(make([]byte, curve.CoordinateSize))
}
