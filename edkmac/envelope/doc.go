// Package envelope frames plaintext before it is encrypted. A payload is
// either stored raw or LZ4 compressed, whichever is smaller, behind a one
// byte format flag:
//
//	flag (1) || payload
//
// Compression happens before encryption since cryptograms do not compress.
package envelope
