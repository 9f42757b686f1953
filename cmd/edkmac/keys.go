package main

import (
	"io"
	"math/big"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/TheusHen/edkmac/edkmac/crypto"
	"github.com/TheusHen/edkmac/edkmac/curve"
	"github.com/TheusHen/edkmac/edkmac/identity"
	"github.com/TheusHen/edkmac/edkmac/keyfile"
)

const (
	flagName    = "name"
	flagPrivate = "private"
	flagKey     = "key"
	flagTo      = "to"
	flagSig     = "sig"

	publicKeyExt  = ".pub"
	privateKeyExt = ".priv"
)

var errSignatureInvalid = errors.New("signature invalid")

func keyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagKey,
		Usage: "Private key file; derived from the passphrase when unset",
	}
}

func keygenCommand() *cli.Command {
	return &cli.Command{
		Name:      "keygen",
		Usage:     "Derive a key pair from a passphrase and write it to the key directory",
		UsageText: "edkmac keygen [--passphrase PW] [--name NAME] [--private]",
		Flags: []cli.Flag{
			passphraseFlag(),
			&cli.StringFlag{Name: flagName, Value: "edkmac", Usage: "Base name of the key files"},
			&cli.StringFlag{Name: flagKeyDir, Usage: "Directory for key files (default from config, ~/.edkmac/keys)"},
			&cli.BoolFlag{Name: flagPrivate, Usage: "Also write the private scalar"},
		},
		Action: keygenAction,
	}
}

func keygenAction(c *cli.Context) error {
	log := createLogger(c)
	pw, err := readPassphrase(c)
	if err != nil {
		return err
	}
	dir, err := keyDir(c)
	if err != nil {
		return err
	}

	kp := crypto.GenerateKeyPair(pw)
	id := identity.KeyIDOf(kp)
	base := filepath.Join(dir, c.String(flagName))

	if err := keyfile.Save(base+publicKeyExt, 0o644, func(w io.Writer) error {
		return keyfile.WritePublicKey(w, kp.Public)
	}); err != nil {
		return err
	}
	log.Info().Str("keyID", id.Short()).Str("path", base+publicKeyExt).Msg("wrote public key")

	if c.Bool(flagPrivate) {
		if err := keyfile.Save(base+privateKeyExt, 0o600, func(w io.Writer) error {
			return keyfile.WritePrivateKey(w, kp.Private)
		}); err != nil {
			return err
		}
		log.Info().Str("path", base+privateKeyExt).Msg("wrote private key")
	}
	return writeOutput(c, "-", 0, func(w io.Writer) error {
		_, err := io.WriteString(w, id.String()+"\n")
		return err
	})
}

// privateKey loads --key, or derives the scalar from the passphrase.
func privateKey(c *cli.Context) (*big.Int, error) {
	if path := c.String(flagKey); path != "" {
		var s *big.Int
		err := keyfile.Load(path, func(r io.Reader) (err error) {
			s, err = keyfile.ReadPrivateKey(r)
			return err
		})
		return s, err
	}
	pw, err := readPassphrase(c)
	if err != nil {
		return nil, err
	}
	return crypto.GenerateKeyPair(pw).Private, nil
}

func publicKey(path string) (curve.Point, error) {
	var v curve.Point
	err := keyfile.Load(path, func(r io.Reader) (err error) {
		v, err = keyfile.ReadPublicKey(r)
		return err
	})
	return v, err
}

func sealCommand() *cli.Command {
	return &cli.Command{
		Name:      "seal",
		Usage:     "Encrypt a file to a public key",
		UsageText: "edkmac seal --to KEY.pub [--out FILE] [FILE|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagTo, Usage: "Recipient public key file", Required: true},
			outFlag("Cryptogram output file"),
			compressFlag(),
		},
		Action: sealAction,
	}
}

func sealAction(c *cli.Context) error {
	log := createLogger(c)
	v, err := publicKey(c.String(flagTo))
	if err != nil {
		return err
	}
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}

	pc, err := crypto.EncryptTo(frame(c, data), v)
	if err != nil {
		return errors.Wrap(err, "encrypting")
	}
	log.Info().Str("to", identity.KeyIDFromPublicKey(v).Short()).Int("plaintext", len(data)).Msg("sealed")
	return writeOutput(c, c.String(flagOut), 0o644, func(w io.Writer) error {
		return keyfile.WritePublicCryptogram(w, pc)
	})
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Decrypt a public-key cryptogram",
		UsageText: "edkmac open [--key KEY.priv | --passphrase PW] [--out FILE] [FILE|-]",
		Flags:     []cli.Flag{keyFlag(), passphraseFlag(), outFlag("Plaintext output file"), compressFlag()},
		Action:    openAction,
	}
}

func openAction(c *cli.Context) error {
	log := createLogger(c)
	var pc crypto.PublicCryptogram
	if err := loadInput(c, c.Args().First(), func(r io.Reader) (err error) {
		pc, err = keyfile.ReadPublicCryptogram(r)
		return err
	}); err != nil {
		return err
	}
	s, err := privateKey(c)
	if err != nil {
		return err
	}

	payload, err := crypto.DecryptWith(pc, s)
	if err != nil {
		log.Warn().Msg("cryptogram failed authentication")
		return err
	}
	data, err := unframe(c, payload)
	if err != nil {
		return err
	}
	log.Info().Int("plaintext", len(data)).Msg("opened")
	return writeOutput(c, c.String(flagOut), 0o600, writeBytes(data))
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "Sign a file",
		UsageText: "edkmac sign [--key KEY.priv | --passphrase PW] [--out FILE.sig] [FILE|-]",
		Flags:     []cli.Flag{keyFlag(), passphraseFlag(), outFlag("Signature output file")},
		Action:    signAction,
	}
}

func signAction(c *cli.Context) error {
	log := createLogger(c)
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}
	s, err := privateKey(c)
	if err != nil {
		return err
	}

	sig := crypto.Sign(data, s)
	log.Info().Str("keyID", identity.KeyIDFromPublicKey(crypto.PublicKey(s)).Short()).Msg("signed")
	return writeOutput(c, c.String(flagOut), 0o644, func(w io.Writer) error {
		return keyfile.WriteSignature(w, sig)
	})
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Verify a signature; exits non-zero when it does not match",
		UsageText: "edkmac verify --key KEY.pub --sig FILE.sig [FILE|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagKey, Usage: "Signer public key file", Required: true},
			&cli.StringFlag{Name: flagSig, Usage: "Signature file", Required: true},
		},
		Action: verifyAction,
	}
}

func verifyAction(c *cli.Context) error {
	log := createLogger(c)
	v, err := publicKey(c.String(flagKey))
	if err != nil {
		return err
	}
	var sig crypto.Signature
	if err := keyfile.Load(c.String(flagSig), func(r io.Reader) (err error) {
		sig, err = keyfile.ReadSignature(r)
		return err
	}); err != nil {
		return err
	}
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}

	id := identity.KeyIDFromPublicKey(v).Short()
	if !crypto.Verify(data, sig, v) {
		log.Warn().Str("keyID", id).Msg("signature does not match")
		return errSignatureInvalid
	}
	log.Info().Str("keyID", id).Msg("signature verified")
	return writeOutput(c, "-", 0, func(w io.Writer) error {
		_, err := io.WriteString(w, "valid\n")
		return err
	})
}
