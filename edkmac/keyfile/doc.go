// Package keyfile reads and writes the hex text files exchanged by edkmac:
//
//	public key             hex(x) \n hex(y)
//	private key            hex(s)
//	symmetric cryptogram   hex(nonce || c || t)
//	public cryptogram      hex(Z.x) \n hex(Z.y) \n hex(c) \n hex(t)
//	signature              hex(h) \n hex(z)
//
// Writers emit lowercase hex with coordinates and scalars at their fixed
// 56-byte width. Readers accept either case, surrounding blank space and
// CRLF line endings.
package keyfile
