// Package xof implements the NIST SP 800-185 encodings and the extendable
// output functions built from them: SHAKE256, cSHAKE256 and KMACXOF256.
//
// Output lengths are given in bits and must be multiples of 8. All functions
// are pure; each call runs its own sponge.
package xof
