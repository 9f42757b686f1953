package identity

import (
	"encoding/hex"
	"errors"

	"github.com/TheusHen/edkmac/edkmac/crypto"
	"github.com/TheusHen/edkmac/edkmac/curve"
	"github.com/TheusHen/edkmac/edkmac/xof"
)

var ErrInvalidKeyID = errors.New("identity: invalid key id")

// KeyID is the stable fingerprint of a public key.
// It is defined as: KeyID = KMACXOF256("", Encode(V), 256, "KID").
type KeyID [32]byte

func KeyIDFromPublicKey(v curve.Point) KeyID {
	sum, err := xof.KMACXOF256(nil, curve.Encode(v), 256, []byte("KID"))
	if err != nil {
		panic(err)
	}
	var id KeyID
	copy(id[:], sum)
	return id
}

// KeyIDOf fingerprints the public half of kp.
func KeyIDOf(kp crypto.KeyPair) KeyID {
	return KeyIDFromPublicKey(kp.Public)
}

func ParseKeyIDHex(s string) (KeyID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return KeyID{}, err
	}
	if len(b) != len(KeyID{}) {
		return KeyID{}, ErrInvalidKeyID
	}
	var id KeyID
	copy(id[:], b)
	return id, nil
}

func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}

// Short returns the first 8 hex digits, for log lines.
func (id KeyID) Short() string {
	return id.String()[:8]
}
