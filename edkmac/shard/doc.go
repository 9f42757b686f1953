// Package shard spreads a cryptogram over Reed-Solomon shards so it survives
// the loss of up to the configured number of parity shards.
//
// Every shard carries enough header to rebuild the cryptogram on its own
// terms: the codec shape, the original size and a KMAC digest that is
// checked after reconstruction.
package shard
