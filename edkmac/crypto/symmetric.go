package crypto

// SymmetricCryptogram is the output of Encrypt.
// Wire format: nonce (64) || ciphertext || tag (64).
type SymmetricCryptogram struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
	Tag        [TagSize]byte
}

func (sc SymmetricCryptogram) Bytes() []byte {
	out := make([]byte, 0, NonceSize+len(sc.Ciphertext)+TagSize)
	out = append(out, sc.Nonce[:]...)
	out = append(out, sc.Ciphertext...)
	return append(out, sc.Tag[:]...)
}

// ParseSymmetricCryptogram splits the wire format. The ciphertext is copied.
func ParseSymmetricCryptogram(b []byte) (SymmetricCryptogram, error) {
	if len(b) < NonceSize+TagSize {
		return SymmetricCryptogram{}, ErrCryptogramTooShort
	}
	var sc SymmetricCryptogram
	copy(sc.Nonce[:], b[:NonceSize])
	sc.Ciphertext = append([]byte{}, b[NonceSize:len(b)-TagSize]...)
	copy(sc.Tag[:], b[len(b)-TagSize:])
	return sc, nil
}

func symmetricKeys(nonce, pw []byte) (ke, ka []byte) {
	material := make([]byte, 0, len(nonce)+len(pw))
	material = append(material, nonce...)
	material = append(material, pw...)
	return splitKeys(material, "S")
}

// Encrypt encrypts m under passphrase pw with a fresh random nonce.
func Encrypt(m, pw []byte) (SymmetricCryptogram, error) {
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return SymmetricCryptogram{}, err
	}
	ke, ka := symmetricKeys(nonce, pw)

	sc := SymmetricCryptogram{Ciphertext: xorStream(ke, m, "SKE")}
	copy(sc.Nonce[:], nonce)
	copy(sc.Tag[:], kmac(ka, m, TagSize, "SKA"))
	return sc, nil
}

// Decrypt recovers the plaintext of sc. A wrong passphrase or any modified
// byte yields ErrAuthentication and no plaintext.
func Decrypt(sc SymmetricCryptogram, pw []byte) ([]byte, error) {
	ke, ka := symmetricKeys(sc.Nonce[:], pw)
	m := xorStream(ke, sc.Ciphertext, "SKE")
	if !tagEqual(kmac(ka, m, TagSize, "SKA"), sc.Tag[:]) {
		return nil, ErrAuthentication
	}
	return m, nil
}
