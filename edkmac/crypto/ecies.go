package crypto

import (
	"math/big"

	"github.com/TheusHen/edkmac/edkmac/curve"
)

// PublicCryptogram is the output of EncryptTo.
// Wire format: Z.x (56) || Z.y (56) || ciphertext || tag (64).
type PublicCryptogram struct {
	Z          curve.Point
	Ciphertext []byte
	Tag        [TagSize]byte
}

const pointSize = 2 * curve.CoordinateSize

func (pc PublicCryptogram) Bytes() []byte {
	out := make([]byte, 0, pointSize+len(pc.Ciphertext)+TagSize)
	out = append(out, pc.Z.Bytes()...)
	out = append(out, pc.Ciphertext...)
	return append(out, pc.Tag[:]...)
}

// ParsePublicCryptogram splits the wire format and checks that Z lies on
// the curve.
func ParsePublicCryptogram(b []byte) (PublicCryptogram, error) {
	if len(b) < pointSize+TagSize {
		return PublicCryptogram{}, ErrCryptogramTooShort
	}
	z, err := curve.PointFromBytes(b[:pointSize])
	if err != nil {
		return PublicCryptogram{}, err
	}
	pc := PublicCryptogram{Z: z, Ciphertext: append([]byte{}, b[pointSize:len(b)-TagSize]...)}
	copy(pc.Tag[:], b[len(b)-TagSize:])
	return pc, nil
}

func publicKeys(w curve.Point) (ke, ka []byte) {
	return splitKeys(coordinateBytes(w.X()), "PK")
}

// EncryptTo encrypts m to the holder of the private key for V.
func EncryptTo(m []byte, v curve.Point) (PublicCryptogram, error) {
	seed, err := randomBytes(64)
	if err != nil {
		return PublicCryptogram{}, err
	}
	k := new(big.Int).SetBytes(seed)
	k.Mod(k, curve.Order())

	w := curve.ScalarMul(v, k)
	ke, ka := publicKeys(w)

	pc := PublicCryptogram{
		Z:          curve.ScalarMul(curve.Generator(), k),
		Ciphertext: xorStream(ke, m, "PKE"),
	}
	copy(pc.Tag[:], kmac(ka, m, TagSize, "PKA"))
	return pc, nil
}

// DecryptWith recovers the plaintext of pc with private scalar s.
func DecryptWith(pc PublicCryptogram, s *big.Int) ([]byte, error) {
	w := curve.ScalarMul(pc.Z, s)
	ke, ka := publicKeys(w)
	m := xorStream(ke, pc.Ciphertext, "PKE")
	if !tagEqual(kmac(ka, m, TagSize, "PKA"), pc.Tag[:]) {
		return nil, ErrAuthentication
	}
	return m, nil
}
