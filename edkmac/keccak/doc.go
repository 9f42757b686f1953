// Package keccak implements the Keccak-f[1600] permutation and the sponge
// construction built on it (FIPS 202, sections 3 and 4).
//
// Every call owns its own State or Sponge; nothing in this package is shared
// between goroutines.
package keccak
