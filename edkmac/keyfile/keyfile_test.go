package keyfile

import (
	"bytes"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/edkmac/edkmac/crypto"
	"github.com/TheusHen/edkmac/edkmac/curve"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	kp := crypto.GenerateKeyPair([]byte("keyfile"))

	var buf bytes.Buffer
	require.NoError(t, WritePublicKey(&buf, kp.Public))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 2*curve.CoordinateSize)

	v, err := ReadPublicKey(&buf)
	require.NoError(t, err)
	assert.True(t, v.Equal(kp.Public))
}

func TestReadTolerant(t *testing.T) {
	g := curve.Generator()
	text := "\r\n  " + strings.ToUpper(g.X().Text(16)) + "\r\n" + g.Y().Text(16) + "  \r\n\n"
	v, err := ReadPublicKey(strings.NewReader(text))
	require.NoError(t, err)
	assert.True(t, v.Equal(g))
}

func TestReadPublicKeyErrors(t *testing.T) {
	_, err := ReadPublicKey(strings.NewReader("8"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ReadPublicKey(strings.NewReader("8\nxyz"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = ReadPublicKey(strings.NewReader("1\n1"))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "not on the curve")
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	kp := crypto.GenerateKeyPair([]byte("keyfile"))
	var buf bytes.Buffer
	require.NoError(t, WritePrivateKey(&buf, kp.Private))
	s, err := ReadPrivateKey(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cmp(kp.Private))

	_, err = ReadPrivateKey(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSymmetricRoundTrip(t *testing.T) {
	sc, err := crypto.Encrypt([]byte("file contents"), []byte("pw"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSymmetric(&buf, sc))
	got, err := ReadSymmetric(&buf)
	require.NoError(t, err)
	assert.Equal(t, sc, got)

	m, err := crypto.Decrypt(got, []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, []byte("file contents"), m)

	_, err = ReadSymmetric(strings.NewReader("abcd"))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = ReadSymmetric(strings.NewReader("abc"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPublicCryptogramRoundTrip(t *testing.T) {
	kp := crypto.GenerateKeyPair([]byte("recipient"))
	for _, m := range [][]byte{nil, []byte("hello")} {
		pc, err := crypto.EncryptTo(m, kp.Public)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WritePublicCryptogram(&buf, pc))
		got, err := ReadPublicCryptogram(&buf)
		require.NoError(t, err)
		assert.True(t, got.Z.Equal(pc.Z))
		assert.Equal(t, pc.Tag, got.Tag)

		plain, err := crypto.DecryptWith(got, kp.Private)
		require.NoError(t, err)
		assert.Equal(t, len(m), len(plain))
	}
}

func TestReadPublicCryptogramBadTag(t *testing.T) {
	g := curve.Generator()
	text := g.X().Text(16) + "\n" + g.Y().Text(16) + "\n00\nabcd\n"
	_, err := ReadPublicCryptogram(strings.NewReader(text))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSignatureRoundTrip(t *testing.T) {
	kp := crypto.GenerateKeyPair([]byte("signer"))
	sig := kp.Sign([]byte("document"))

	var buf bytes.Buffer
	require.NoError(t, WriteSignature(&buf, sig))
	got, err := ReadSignature(&buf)
	require.NoError(t, err)
	assert.Equal(t, sig.H, got.H)
	assert.Equal(t, 0, sig.Z.Cmp(got.Z))
	assert.True(t, crypto.Verify([]byte("document"), got, kp.Public))

	_, err = ReadSignature(strings.NewReader("00\n01"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "key.priv")
	s := big.NewInt(123456789)

	err := Save(path, 0o600, func(w io.Writer) error { return WritePrivateKey(w, s) })
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	var got *big.Int
	err = Load(path, func(r io.Reader) error {
		var err error
		got, err = ReadPrivateKey(r)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Cmp(s))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	err = Load(filepath.Join(dir, "missing"), func(io.Reader) error { return nil })
	assert.Error(t, err)
}
