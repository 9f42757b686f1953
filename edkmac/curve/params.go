package curve

import "math/big"

const (
	// CoordinateSize is the big-endian byte width of a coordinate or scalar.
	CoordinateSize = 56
	// EncodedSize is the length of Encode output.
	EncodedSize = CoordinateSize + 1

	dMagnitude = 39081
)

var (
	one = big.NewInt(1)

	prime = mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffe" +
		"ffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	order = mustHex("3fffffffffffffffffffffffffffffffffffffffffffffffffffffff" +
		"7cca23e9c44edb49aed63690216cc2728dc58f552378c292ab5844f3")

	// d = −39081 mod p
	curveD = new(big.Int).Sub(prime, big.NewInt(dMagnitude))

	// (p+1)/4, the square root exponent for p ≡ 3 (mod 4)
	sqrtExp = new(big.Int).Rsh(new(big.Int).Add(prime, one), 2)

	generator = Point{
		x: big.NewInt(8),
		y: mustHex("c66f6f0565e6d0b5f2bb263cebb9f8540eb046f40ed0fff7f84d8465" +
			"3b428d989aabff93b6bf700801228094e3dd0c2d1c600e3b0bccfc32"),
	}
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return n
}

// Prime returns p.
func Prime() *big.Int { return new(big.Int).Set(prime) }

// Order returns r, the prime order of the subgroup generated by G.
func Order() *big.Int { return new(big.Int).Set(order) }

// Generator returns the base point G = (8, y0), y0 even.
func Generator() Point { return generator }

// Neutral returns the identity element (0, 1).
func Neutral() Point { return Point{x: new(big.Int), y: big.NewInt(1)} }
