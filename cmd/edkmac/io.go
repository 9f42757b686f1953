package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/TheusHen/edkmac/edkmac/keyfile"
)

var errNoPassphrase = errors.New("a passphrase is required: use --passphrase, EDKMAC_PASSPHRASE or a terminal")

func passphraseFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagPassphrase,
		Aliases: []string{"p"},
		Usage:   "Passphrase; prompted for on a terminal when unset",
		EnvVars: []string{"EDKMAC_PASSPHRASE"},
	}
}

func outFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:    flagOut,
		Aliases: []string{"o"},
		Usage:   usage,
		Value:   "-",
	}
}

func compressFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  flagCompress,
		Usage: "Frame plaintext with optional LZ4 compression {off, fast, default, best}",
		Value: "off",
	}
}

// readPassphrase returns the passphrase flag or prompts on the controlling
// terminal.
func readPassphrase(c *cli.Context) ([]byte, error) {
	if c.IsSet(flagPassphrase) {
		return []byte(c.String(flagPassphrase)), nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNoPassphrase
	}
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "reading passphrase")
	}
	return pw, nil
}

// readInput reads a whole file, or the app's stdin for "-" or "".
func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		in := c.App.Reader
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		return b, errors.Wrap(err, "reading stdin")
	}
	b, err := os.ReadFile(path)
	return b, errors.Wrapf(err, "reading %s", path)
}

// writeOutput hands fn either the app's stdout or an atomically replaced file.
func writeOutput(c *cli.Context, path string, perm os.FileMode, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		out := c.App.Writer
		if out == nil {
			out = os.Stdout
		}
		return fn(out)
	}
	return keyfile.Save(path, perm, fn)
}

func writeBytes(b []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(b))
		return err
	}
}

func requireArg(c *cli.Context, what string) (string, error) {
	if c.NArg() < 1 {
		return "", errors.Errorf("%s: missing %s argument", c.Command.Name, what)
	}
	return c.Args().First(), nil
}

// loadInput parses the input named by path with fn.
func loadInput(c *cli.Context, path string, fn func(io.Reader) error) error {
	b, err := readInput(c, path)
	if err != nil {
		return err
	}
	if path == "" {
		path = "-"
	}
	return errors.Wrapf(fn(bytes.NewReader(b)), "parsing %s", path)
}
