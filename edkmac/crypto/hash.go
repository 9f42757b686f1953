package crypto

// Hash returns the 64-byte KMAC digest of m.
func Hash(m []byte) [TagSize]byte {
	var out [TagSize]byte
	copy(out[:], kmac(nil, m, TagSize, "D"))
	return out
}

// Tag returns the 64-byte authentication tag of m under passphrase pw.
func Tag(m, pw []byte) [TagSize]byte {
	var out [TagSize]byte
	copy(out[:], kmac(pw, m, TagSize, "T"))
	return out
}

// CheckTag reports whether tag authenticates m under pw.
func CheckTag(m, pw, tag []byte) bool {
	want := Tag(m, pw)
	return tagEqual(want[:], tag)
}
