// Package edkmac is the root of a from-scratch implementation of the NIST
// SP 800-185 KMACXOF256 family and of Edwards-curve public-key cryptography
// over Ed448-Goldilocks.
//
// The building blocks are layered, each package depending only on those
// before it:
//   - keccak: Keccak-f[1600] and the sponge construction
//   - xof: SP 800-185 encodings, SHAKE256, cSHAKE256, KMACXOF256
//   - curve: affine Edwards point arithmetic and point compression
//   - crypto: symmetric and public-key encryption, key pairs, signatures
//
// identity, keyfile, envelope and shard supply key fingerprints, the hex
// file formats, plaintext compression and Reed-Solomon sharding used by
// the edkmac command.
package edkmac
