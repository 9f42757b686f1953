package crypto

import (
	"math/big"

	"github.com/TheusHen/edkmac/edkmac/curve"
)

// KeyPair is a private scalar s and its public point V = s·G.
type KeyPair struct {
	Private *big.Int
	Public  curve.Point
}

// GenerateKeyPair derives the key pair of passphrase pw. The same passphrase
// always yields the same pair. s is KMACXOF256(pw, "", 512, "SK") reduced mod r.
func GenerateKeyPair(pw []byte) KeyPair {
	s := new(big.Int).SetBytes(kmac(pw, nil, 64, "SK"))
	s.Mod(s, curve.Order())
	return KeyPair{Private: s, Public: curve.ScalarMul(curve.Generator(), s)}
}

// PublicKey derives V = s·G for a private scalar.
func PublicKey(s *big.Int) curve.Point {
	return curve.ScalarMul(curve.Generator(), s)
}

func (kp KeyPair) Sign(m []byte) Signature {
	return Sign(m, kp.Private)
}

func (kp KeyPair) Decrypt(pc PublicCryptogram) ([]byte, error) {
	return DecryptWith(pc, kp.Private)
}
