package xof

import (
	"github.com/TheusHen/edkmac/edkmac/keccak"
)

const (
	// Rate is the byte rate of every function in this package.
	Rate = keccak.Rate512

	shakeSuffix  = 0x1f
	cshakeSuffix = 0x04
)

var kmacName = []byte("KMAC")

func outputBytes(bits int) (int, error) {
	if bits < 0 || bits%8 != 0 {
		return 0, ErrInvalidInput
	}
	return bits / 8, nil
}

// SHAKE256 returns bits/8 bytes of SHAKE256(x).
func SHAKE256(x []byte, bits int) ([]byte, error) {
	n, err := outputBytes(bits)
	if err != nil {
		return nil, err
	}
	return keccak.Sum(x, shakeSuffix, n), nil
}

// CSHAKE256 is the customizable SHAKE of SP 800-185 with function name n and
// customization string s. With both empty it is SHAKE256.
func CSHAKE256(x []byte, bits int, n, s []byte) ([]byte, error) {
	if len(n) == 0 && len(s) == 0 {
		return SHAKE256(x, bits)
	}
	size, err := outputBytes(bits)
	if err != nil {
		return nil, err
	}
	prefix, err := Bytepad(append(EncodeString(n), EncodeString(s)...), Rate)
	if err != nil {
		return nil, err
	}

	sp, err := keccak.NewSponge(keccak.Capacity512)
	if err != nil {
		return nil, err
	}
	if err := sp.Absorb(prefix); err != nil {
		return nil, err
	}
	if err := sp.Absorb(x); err != nil {
		return nil, err
	}
	sp.Pad(cshakeSuffix)
	return sp.Squeeze(size), nil
}

// KMACXOF256 is the keyed, arbitrary-length variant of KMAC256 with key k,
// input x and customization string s.
func KMACXOF256(k, x []byte, bits int, s []byte) ([]byte, error) {
	if _, err := outputBytes(bits); err != nil {
		return nil, err
	}
	in, err := Bytepad(EncodeString(k), Rate)
	if err != nil {
		return nil, err
	}
	in = append(in, x...)
	in = append(in, RightEncodeUint(0)...)
	return CSHAKE256(in, bits, kmacName, s)
}
