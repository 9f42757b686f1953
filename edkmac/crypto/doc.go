// Package crypto composes KMACXOF256 and the Edwards curve into the
// edkmac protocols:
//   - Hash and Tag: KMAC digests and passphrase MACs
//   - Encrypt/Decrypt: passphrase-based authenticated encryption
//   - GenerateKeyPair: deterministic key pair from a passphrase
//   - EncryptTo/DecryptWith: ECIES-style public-key encryption
//   - Sign/Verify: Schnorr signatures
//
// Every cryptogram carries a 64-byte KMAC tag. Decryption never returns
// plaintext when the tag does not match.
package crypto
