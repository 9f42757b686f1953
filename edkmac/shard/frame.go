package shard

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// MaxShardPayload limits the data carried by a single shard.
	MaxShardPayload = 64 << 20

	headerSize = 4 + 3 + 4 + DigestSize + 4
)

var magic = [4]byte{'E', 'K', 'S', '1'}

var (
	ErrBadMagic      = errors.New("shard: bad magic")
	ErrShardTooLarge = errors.New("shard: payload too large")
	ErrInvalidHeader = errors.New("shard: invalid header")
)

// WriteShard writes one shard.
// Format:
//
//	4 bytes: magic "EKS1"
//	1 byte: index
//	1 byte: data shard count
//	1 byte: parity shard count
//	4 bytes: original size (big endian)
//	32 bytes: digest
//	4 bytes: shard length (big endian)
//	N bytes: shard data
//
// Counts are stored minus one so a full 256-shard set fits in a byte.
func WriteShard(w io.Writer, s Shard) error {
	if s.DataShards <= 0 || s.ParityShards <= 0 || s.DataShards+s.ParityShards > MaxShards ||
		s.Index < 0 || s.Index >= s.DataShards+s.ParityShards || s.Size < 0 {
		return ErrInvalidHeader
	}
	if len(s.Data) > MaxShardPayload {
		return ErrShardTooLarge
	}

	var hdr [headerSize]byte
	copy(hdr[:4], magic[:])
	hdr[4] = byte(s.Index)
	hdr[5] = byte(s.DataShards - 1)
	hdr[6] = byte(s.ParityShards - 1)
	binary.BigEndian.PutUint32(hdr[7:11], uint32(s.Size))
	copy(hdr[11:11+DigestSize], s.Digest[:])
	binary.BigEndian.PutUint32(hdr[11+DigestSize:], uint32(len(s.Data)))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := bw.Write(s.Data); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadShard reads one shard written by WriteShard.
func ReadShard(r io.Reader) (Shard, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return Shard{}, err
	}
	if [4]byte(hdr[:4]) != magic {
		return Shard{}, ErrBadMagic
	}
	s := Shard{
		Index:        int(hdr[4]),
		DataShards:   int(hdr[5]) + 1,
		ParityShards: int(hdr[6]) + 1,
		Size:         int(binary.BigEndian.Uint32(hdr[7:11])),
	}
	copy(s.Digest[:], hdr[11:11+DigestSize])
	if s.DataShards+s.ParityShards > MaxShards || s.Index >= s.DataShards+s.ParityShards {
		return Shard{}, ErrInvalidHeader
	}

	n := binary.BigEndian.Uint32(hdr[11+DigestSize:])
	if n > MaxShardPayload {
		return Shard{}, fmt.Errorf("%w: %d", ErrShardTooLarge, n)
	}
	s.Data = make([]byte, n)
	if _, err := io.ReadFull(r, s.Data); err != nil {
		return Shard{}, err
	}
	return s, nil
}
