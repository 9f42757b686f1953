// Package curve implements point arithmetic on the untwisted Edwards curve
//
//	x² + y² = 1 + d·x²·y²  over GF(p), p = 2^448 − 2^224 − 1, d = −39081
//
// with the Ed448-Goldilocks base point and subgroup order. Coordinates are
// math/big integers reduced mod p. Points are immutable values.
//
// Nothing here is constant time.
package curve
