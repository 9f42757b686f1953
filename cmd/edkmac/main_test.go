package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/edkmac/edkmac/crypto"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T, yaml string) *harness {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o600))
	return &harness{t: t, dir: dir, config: cfg}
}

func (h *harness) path(name string) string { return filepath.Join(h.dir, name) }

// run executes the app and returns what it wrote to stdout.
func (h *harness) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	full := append([]string{"edkmac", "--config", h.config, "--loglevel", "debug"}, args...)
	err := app.Run(full)
	return out.String(), err
}

func (h *harness) write(name, content string) string {
	p := h.path(name)
	require.NoError(h.t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func (h *harness) read(name string) string {
	b, err := os.ReadFile(h.path(name))
	require.NoError(h.t, err)
	return string(b)
}

func TestHash(t *testing.T) {
	h := newHarness(t, "")
	out, err := h.run("", "hash", h.write("in", "hello"))
	require.NoError(t, err)
	sum := crypto.Hash([]byte("hello"))
	assert.Equal(t, hex.EncodeToString(sum[:])+"\n", out)

	stdin, err := h.run("hello", "hash", "-")
	require.NoError(t, err)
	assert.Equal(t, out, stdin)
}

func TestTag(t *testing.T) {
	h := newHarness(t, "")
	out, err := h.run("data", "tag", "--passphrase", "pw")
	require.NoError(t, err)
	tag := crypto.Tag([]byte("data"), []byte("pw"))
	assert.Equal(t, hex.EncodeToString(tag[:])+"\n", out)
}

func TestEncryptDecrypt(t *testing.T) {
	for _, level := range []string{"off", "fast", "best"} {
		t.Run(level, func(t *testing.T) {
			h := newHarness(t, "compress: "+level+"\n")
			plain := strings.Repeat("secret file contents\n", 50)
			in := h.write("plain.txt", plain)

			_, err := h.run("", "encrypt", "-p", "test", "-o", h.path("plain.enc"), in)
			require.NoError(t, err)
			assert.Len(t, strings.Split(strings.TrimSpace(h.read("plain.enc")), "\n"), 1)

			_, err = h.run("", "decrypt", "-p", "test", "-o", h.path("plain.out"), h.path("plain.enc"))
			require.NoError(t, err)
			assert.Equal(t, plain, h.read("plain.out"))

			_, err = h.run("", "decrypt", "-p", "wrong", h.path("plain.enc"))
			assert.ErrorIs(t, err, crypto.ErrAuthentication)
		})
	}
}

func TestCompressFlagOverridesConfig(t *testing.T) {
	h := newHarness(t, "compress: best\n")
	in := h.write("plain", strings.Repeat("a", 4096))

	_, err := h.run("", "encrypt", "-p", "pw", "--compress", "off", "-o", h.path("enc"), in)
	require.NoError(t, err)

	// a raw payload keeps the ciphertext as long as the plaintext
	hexLen := len(strings.TrimSpace(h.read("enc")))
	assert.Equal(t, 2*(crypto.NonceSize+4096+crypto.TagSize), hexLen)

	out, err := h.run("", "decrypt", "-p", "pw", "--compress", "off", h.path("enc"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 4096), out)
}

func TestPublicKeyFlow(t *testing.T) {
	h := newHarness(t, "key-dir: "+filepath.Join(t.TempDir(), "keys")+"\n")
	keys := filepath.Join(h.dir, "k")

	id, err := h.run("", "keygen", "-p", "alice", "--key-dir", keys, "--name", "alice", "--private")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(id), 64)

	pub := filepath.Join(keys, "alice.pub")
	priv := filepath.Join(keys, "alice.priv")
	info, err := os.Stat(priv)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	in := h.write("msg", "meet at noon")
	_, err = h.run("", "seal", "--to", pub, "-o", h.path("msg.sealed"), in)
	require.NoError(t, err)

	out, err := h.run("", "open", "--key", priv, h.path("msg.sealed"))
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", out)

	// the passphrase derives the same private key
	out, err = h.run("", "open", "-p", "alice", h.path("msg.sealed"))
	require.NoError(t, err)
	assert.Equal(t, "meet at noon", out)

	_, err = h.run("", "open", "-p", "bob", h.path("msg.sealed"))
	assert.ErrorIs(t, err, crypto.ErrAuthentication)

	_, err = h.run("", "sign", "--key", priv, "-o", h.path("msg.sig"), in)
	require.NoError(t, err)
	out, err = h.run("", "verify", "--key", pub, "--sig", h.path("msg.sig"), in)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	forged := h.write("forged", "meet at one")
	_, err = h.run("", "verify", "--key", pub, "--sig", h.path("msg.sig"), forged)
	assert.ErrorIs(t, err, errSignatureInvalid)
}

func TestKeygenUsesConfigKeyDir(t *testing.T) {
	keys := filepath.Join(t.TempDir(), "from-config")
	h := newHarness(t, "key-dir: "+keys+"\n")

	_, err := h.run("", "keygen", "-p", "x")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(keys, "edkmac.pub"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(keys, "edkmac.priv"))
	assert.True(t, os.IsNotExist(err))
}

func TestShardSplitJoin(t *testing.T) {
	h := newHarness(t, "data-shards: 3\nparity-shards: 2\n")
	in := h.write("enc", strings.Repeat("0123456789abcdef", 40))

	_, err := h.run("", "shard", "split", "--out-dir", h.dir, in)
	require.NoError(t, err)

	var names []string
	for i := 0; i < 5; i++ {
		names = append(names, shardName(h.dir, "enc", i))
	}
	require.NoError(t, os.Remove(names[0]))
	require.NoError(t, os.Remove(names[3]))

	out, err := h.run("", append([]string{"shard", "join"}, names...)...)
	require.NoError(t, err)
	assert.Equal(t, h.read("enc"), out)

	require.NoError(t, os.Remove(names[1]))
	_, err = h.run("", append([]string{"shard", "join"}, names...)...)
	assert.Error(t, err)
}

func TestMissingPassphrase(t *testing.T) {
	h := newHarness(t, "")
	_, err := h.run("", "encrypt", h.write("in", "x"))
	assert.Error(t, err)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "c.yml")
	require.NoError(t, os.WriteFile(p, []byte("loglevel: warn\nparity-shards: 5\n"), 0o600))

	cfg, err := ReadConfig(p, true)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5, cfg.ParityShards)
	assert.Equal(t, 4, cfg.DataShards)
	assert.Equal(t, "off", cfg.Compress)

	cfg, err = ReadConfig(filepath.Join(dir, "none.yml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = ReadConfig(filepath.Join(dir, "none.yml"), true)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(p, []byte("no-such-key: 1\n"), 0o600))
	_, err = ReadConfig(p, true)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(p, nil, 0o600))
	cfg, err = ReadConfig(p, true)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}
