package crypto

import (
	"math/big"

	"github.com/TheusHen/edkmac/edkmac/curve"
)

// Signature is a Schnorr signature (h, z). h is read as a big-endian integer
// when verifying.
type Signature struct {
	H [TagSize]byte
	Z *big.Int
}

func challenge(u curve.Point, m []byte) []byte {
	return kmac(coordinateBytes(u.X()), m, TagSize, "T")
}

// Sign signs m with private scalar s. The nonce k is derived from s and m,
// so signing is deterministic.
func Sign(m []byte, s *big.Int) Signature {
	key := scalarBytes(s)
	k := new(big.Int).SetBytes(kmac(key, m, 64, "N"))
	u := curve.ScalarMul(curve.Generator(), k)

	var sig Signature
	copy(sig.H[:], challenge(u, m))

	// z = (k − h·s) mod r
	hs := new(big.Int).Mul(new(big.Int).SetBytes(sig.H[:]), new(big.Int).SetBytes(key))
	z := new(big.Int).Sub(k, hs)
	sig.Z = z.Mod(z, curve.Order())
	return sig
}

// Verify reports whether sig is a signature of m under public key v.
func Verify(m []byte, sig Signature, v curve.Point) bool {
	if sig.Z == nil || !v.IsOnCurve() {
		return false
	}
	h := new(big.Int).SetBytes(sig.H[:])
	u := curve.Add(curve.ScalarMul(curve.Generator(), sig.Z), curve.ScalarMul(v, h))
	return tagEqual(challenge(u, m), sig.H[:])
}
