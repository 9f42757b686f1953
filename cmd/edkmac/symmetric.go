package main

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/TheusHen/edkmac/edkmac/crypto"
	"github.com/TheusHen/edkmac/edkmac/envelope"
	"github.com/TheusHen/edkmac/edkmac/keyfile"
)

func hashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "Print the KMAC digest of a file",
		UsageText: "edkmac hash [FILE|-]",
		Action:    hashAction,
	}
}

func hashAction(c *cli.Context) error {
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}
	sum := crypto.Hash(data)
	createLogger(c).Debug().Int("bytes", len(data)).Msg("hashed input")
	return writeOutput(c, "-", 0, func(w io.Writer) error {
		_, err := io.WriteString(w, hex.EncodeToString(sum[:])+"\n")
		return err
	})
}

func tagCommand() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Print the passphrase authentication tag of a file",
		UsageText: "edkmac tag [--passphrase PW] [FILE|-]",
		Flags:     []cli.Flag{passphraseFlag()},
		Action:    tagAction,
	}
}

func tagAction(c *cli.Context) error {
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}
	pw, err := readPassphrase(c)
	if err != nil {
		return err
	}
	tag := crypto.Tag(data, pw)
	return writeOutput(c, "-", 0, func(w io.Writer) error {
		_, err := io.WriteString(w, hex.EncodeToString(tag[:])+"\n")
		return err
	})
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "encrypt",
		Usage:     "Encrypt a file under a passphrase",
		UsageText: "edkmac encrypt [--passphrase PW] [--out FILE] [FILE|-]",
		Flags:     []cli.Flag{passphraseFlag(), outFlag("Cryptogram output file"), compressFlag()},
		Action:    encryptAction,
	}
}

// frame applies the configured envelope, or none when compression is off.
func frame(c *cli.Context, data []byte) []byte {
	switch level := stringSetting(c, flagCompress, configFrom(c).Compress); level {
	case "off", "":
		return data
	default:
		return envelope.Wrap(data, envelope.ParseLevel(level))
	}
}

func unframe(c *cli.Context, data []byte) ([]byte, error) {
	switch stringSetting(c, flagCompress, configFrom(c).Compress) {
	case "off", "":
		return data, nil
	default:
		out, err := envelope.Unwrap(data)
		return out, errors.Wrap(err, "unwrapping plaintext envelope")
	}
}

func encryptAction(c *cli.Context) error {
	log := createLogger(c)
	data, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}
	pw, err := readPassphrase(c)
	if err != nil {
		return err
	}

	payload := frame(c, data)
	sc, err := crypto.Encrypt(payload, pw)
	if err != nil {
		return errors.Wrap(err, "encrypting")
	}
	log.Info().Int("plaintext", len(data)).Int("payload", len(payload)).Msg("encrypted")
	return writeOutput(c, c.String(flagOut), 0o644, func(w io.Writer) error {
		return keyfile.WriteSymmetric(w, sc)
	})
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "decrypt",
		Usage:     "Decrypt a passphrase cryptogram",
		UsageText: "edkmac decrypt [--passphrase PW] [--out FILE] [FILE|-]",
		Flags:     []cli.Flag{passphraseFlag(), outFlag("Plaintext output file"), compressFlag()},
		Action:    decryptAction,
	}
}

func decryptAction(c *cli.Context) error {
	log := createLogger(c)
	var sc crypto.SymmetricCryptogram
	if err := loadInput(c, c.Args().First(), func(r io.Reader) (err error) {
		sc, err = keyfile.ReadSymmetric(r)
		return err
	}); err != nil {
		return err
	}
	pw, err := readPassphrase(c)
	if err != nil {
		return err
	}

	payload, err := crypto.Decrypt(sc, pw)
	if err != nil {
		log.Warn().Msg("cryptogram failed authentication")
		return err
	}
	data, err := unframe(c, payload)
	if err != nil {
		return err
	}
	log.Info().Int("plaintext", len(data)).Msg("decrypted")
	return writeOutput(c, c.String(flagOut), 0o600, writeBytes(data))
}
