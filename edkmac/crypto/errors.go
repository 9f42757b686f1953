package crypto

import "errors"

var (
	ErrAuthentication        = errors.New("crypto: authentication failed")
	ErrRandomnessUnavailable = errors.New("crypto: randomness unavailable")
	ErrCryptogramTooShort    = errors.New("crypto: cryptogram too short")
)
