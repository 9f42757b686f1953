package curve

import "math/big"

func fmod(a *big.Int) *big.Int { return a.Mod(a, prime) }

func fadd(a, b *big.Int) *big.Int { return fmod(new(big.Int).Add(a, b)) }

func fsub(a, b *big.Int) *big.Int { return fmod(new(big.Int).Sub(a, b)) }

func fmul(a, b *big.Int) *big.Int { return fmod(new(big.Int).Mul(a, b)) }

// finv returns a⁻¹ mod p and false when a ≡ 0.
func finv(a *big.Int) (*big.Int, bool) {
	z := new(big.Int).ModInverse(a, prime)
	if z == nil {
		return new(big.Int), false
	}
	return z, true
}
