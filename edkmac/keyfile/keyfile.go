package keyfile

import (
	"encoding/hex"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/TheusHen/edkmac/edkmac/crypto"
	"github.com/TheusHen/edkmac/edkmac/curve"
)

// MaxFileSize bounds how much a reader will consume.
const MaxFileSize = 256 << 20

var ErrMalformed = errors.New("keyfile: malformed file")

func readFields(r io.Reader, want int, kind string) ([]string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", kind)
	}
	if len(raw) > MaxFileSize {
		return nil, errors.Wrapf(ErrMalformed, "%s exceeds %d bytes", kind, MaxFileSize)
	}
	text := strings.TrimSpace(string(raw))
	lines := strings.Split(text, "\n")
	if len(lines) != want {
		return nil, errors.Wrapf(ErrMalformed, "%s has %d lines, want %d", kind, len(lines), want)
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines, nil
}

func decodeHex(s, field string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%s: %v", field, err)
	}
	return b, nil
}

func decodeInt(s, field string) (*big.Int, error) {
	if s == "" {
		return nil, errors.Wrapf(ErrMalformed, "%s: empty", field)
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok || n.Sign() < 0 {
		return nil, errors.Wrapf(ErrMalformed, "%s: not a hex integer", field)
	}
	return n, nil
}

func encodeInt(n *big.Int) string {
	if n.BitLen() > curve.CoordinateSize*8 {
		return n.Text(16)
	}
	return hex.EncodeToString(n.FillBytes(make([]byte, curve.CoordinateSize)))
}

func writeLines(w io.Writer, lines ...string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func WritePublicKey(w io.Writer, v curve.Point) error {
	return writeLines(w, encodeInt(v.X()), encodeInt(v.Y()))
}

// ReadPublicKey parses a public key and checks that it lies on the curve.
func ReadPublicKey(r io.Reader) (curve.Point, error) {
	f, err := readFields(r, 2, "public key")
	if err != nil {
		return curve.Point{}, err
	}
	x, err := decodeInt(f[0], "public key x")
	if err != nil {
		return curve.Point{}, err
	}
	y, err := decodeInt(f[1], "public key y")
	if err != nil {
		return curve.Point{}, err
	}
	v, err := curve.NewPoint(x, y)
	if err != nil {
		return curve.Point{}, errors.Wrap(ErrMalformed, err.Error())
	}
	return v, nil
}

func WritePrivateKey(w io.Writer, s *big.Int) error {
	return writeLines(w, encodeInt(s))
}

func ReadPrivateKey(r io.Reader) (*big.Int, error) {
	f, err := readFields(r, 1, "private key")
	if err != nil {
		return nil, err
	}
	return decodeInt(f[0], "private key")
}

func WriteSymmetric(w io.Writer, sc crypto.SymmetricCryptogram) error {
	return writeLines(w, hex.EncodeToString(sc.Bytes()))
}

func ReadSymmetric(r io.Reader) (crypto.SymmetricCryptogram, error) {
	f, err := readFields(r, 1, "symmetric cryptogram")
	if err != nil {
		return crypto.SymmetricCryptogram{}, err
	}
	b, err := decodeHex(f[0], "symmetric cryptogram")
	if err != nil {
		return crypto.SymmetricCryptogram{}, err
	}
	sc, err := crypto.ParseSymmetricCryptogram(b)
	if err != nil {
		return crypto.SymmetricCryptogram{}, errors.Wrap(ErrMalformed, err.Error())
	}
	return sc, nil
}

func WritePublicCryptogram(w io.Writer, pc crypto.PublicCryptogram) error {
	return writeLines(w,
		encodeInt(pc.Z.X()),
		encodeInt(pc.Z.Y()),
		hex.EncodeToString(pc.Ciphertext),
		hex.EncodeToString(pc.Tag[:]),
	)
}

func ReadPublicCryptogram(r io.Reader) (crypto.PublicCryptogram, error) {
	f, err := readFields(r, 4, "public cryptogram")
	if err != nil {
		return crypto.PublicCryptogram{}, err
	}
	x, err := decodeInt(f[0], "Z.x")
	if err != nil {
		return crypto.PublicCryptogram{}, err
	}
	y, err := decodeInt(f[1], "Z.y")
	if err != nil {
		return crypto.PublicCryptogram{}, err
	}
	z, err := curve.NewPoint(x, y)
	if err != nil {
		return crypto.PublicCryptogram{}, errors.Wrap(ErrMalformed, err.Error())
	}
	c, err := decodeHex(f[2], "ciphertext")
	if err != nil {
		return crypto.PublicCryptogram{}, err
	}
	t, err := decodeHex(f[3], "tag")
	if err != nil {
		return crypto.PublicCryptogram{}, err
	}
	if len(t) != crypto.TagSize {
		return crypto.PublicCryptogram{}, errors.Wrapf(ErrMalformed, "tag is %d bytes", len(t))
	}
	pc := crypto.PublicCryptogram{Z: z, Ciphertext: c}
	copy(pc.Tag[:], t)
	return pc, nil
}

func WriteSignature(w io.Writer, sig crypto.Signature) error {
	return writeLines(w, hex.EncodeToString(sig.H[:]), encodeInt(sig.Z))
}

func ReadSignature(r io.Reader) (crypto.Signature, error) {
	f, err := readFields(r, 2, "signature")
	if err != nil {
		return crypto.Signature{}, err
	}
	h, err := decodeHex(f[0], "signature h")
	if err != nil {
		return crypto.Signature{}, err
	}
	if len(h) != crypto.TagSize {
		return crypto.Signature{}, errors.Wrapf(ErrMalformed, "signature h is %d bytes", len(h))
	}
	z, err := decodeInt(f[1], "signature z")
	if err != nil {
		return crypto.Signature{}, err
	}
	sig := crypto.Signature{Z: z}
	copy(sig.H[:], h)
	return sig, nil
}

// Save writes a file through fn, creating parent directories. The file is
// written to a temporary name first and renamed into place.
func Save(path string, perm os.FileMode, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "chmod %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "renaming into %s", path)
}

// Load opens path and hands it to fn.
func Load(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	return nil
}
