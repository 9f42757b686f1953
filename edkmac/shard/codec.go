package shard

import (
	"crypto/subtle"
	"errors"

	"github.com/klauspost/reedsolomon"

	"github.com/TheusHen/edkmac/edkmac/xof"
)

const (
	DigestSize = 32

	// MaxShards is the reedsolomon limit on data+parity.
	MaxShards = 256
)

var (
	ErrTooManyLost    = errors.New("shard: too many shards lost, cannot recover")
	ErrInvalidConfig  = errors.New("shard: invalid data/parity configuration")
	ErrEmpty          = errors.New("shard: nothing to split")
	ErrInconsistent   = errors.New("shard: shards belong to different sets")
	ErrDigestMismatch = errors.New("shard: digest mismatch after reconstruction")
)

// Shard is one piece of a split cryptogram.
type Shard struct {
	Index        int
	DataShards   int
	ParityShards int
	// Size is the length of the original cryptogram.
	Size   int
	Digest [DigestSize]byte
	Data   []byte
}

// Digest returns KMACXOF256("", b, 256, "SHARD").
func Digest(b []byte) [DigestSize]byte {
	sum, err := xof.KMACXOF256(nil, b, DigestSize*8, []byte("SHARD"))
	if err != nil {
		panic(err)
	}
	var d [DigestSize]byte
	copy(d[:], sum)
	return d
}

// Codec provides Reed-Solomon encoding/decoding of whole cryptograms.
type Codec struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewCodec creates a codec that can lose up to parityShards shards.
func NewCodec(dataShards, parityShards int) (*Codec, error) {
	if dataShards <= 0 || parityShards <= 0 || dataShards+parityShards > MaxShards {
		return nil, ErrInvalidConfig
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Codec{
		enc:          enc,
		dataShards:   dataShards,
		parityShards: parityShards,
	}, nil
}

func (c *Codec) DataShards() int { return c.dataShards }

func (c *Codec) ParityShards() int { return c.parityShards }

func (c *Codec) TotalShards() int { return c.dataShards + c.parityShards }

// Overhead returns the storage overhead ratio (e.g., 1.4 for 10+4 config).
func (c *Codec) Overhead() float64 {
	return float64(c.TotalShards()) / float64(c.dataShards)
}

// Split encodes b into TotalShards() shards.
func (c *Codec) Split(b []byte) ([]Shard, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	// reedsolomon.Split may reuse the input's spare capacity.
	pieces, err := c.enc.Split(append([]byte{}, b...))
	if err != nil {
		return nil, err
	}
	if err := c.enc.Encode(pieces); err != nil {
		return nil, err
	}

	digest := Digest(b)
	shards := make([]Shard, len(pieces))
	for i, p := range pieces {
		shards[i] = Shard{
			Index:        i,
			DataShards:   c.dataShards,
			ParityShards: c.parityShards,
			Size:         len(b),
			Digest:       digest,
			Data:         p,
		}
	}
	return shards, nil
}

// Join rebuilds the cryptogram from any DataShards() of its shards. Shards
// may be given in any order.
func (c *Codec) Join(shards []Shard) ([]byte, error) {
	if len(shards) == 0 {
		return nil, ErrTooManyLost
	}
	ref := shards[0]
	pieces := make([][]byte, c.TotalShards())
	for _, s := range shards {
		if s.DataShards != c.dataShards || s.ParityShards != c.parityShards ||
			s.Size != ref.Size || s.Digest != ref.Digest {
			return nil, ErrInconsistent
		}
		if s.Index < 0 || s.Index >= len(pieces) || len(s.Data) != len(ref.Data) {
			return nil, ErrInconsistent
		}
		pieces[s.Index] = s.Data
	}

	if err := c.enc.ReconstructData(pieces); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return nil, ErrTooManyLost
		}
		return nil, err
	}

	out := make([]byte, 0, ref.Size)
	for i := 0; i < c.dataShards && len(out) < ref.Size; i++ {
		remaining := ref.Size - len(out)
		if remaining >= len(pieces[i]) {
			out = append(out, pieces[i]...)
		} else {
			out = append(out, pieces[i][:remaining]...)
		}
	}
	if len(out) != ref.Size {
		return nil, ErrInconsistent
	}

	d := Digest(out)
	if subtle.ConstantTimeCompare(d[:], ref.Digest[:]) != 1 {
		return nil, ErrDigestMismatch
	}
	return out, nil
}

// Join rebuilds a cryptogram using the codec shape recorded in the shards.
func Join(shards []Shard) ([]byte, error) {
	if len(shards) == 0 {
		return nil, ErrTooManyLost
	}
	c, err := NewCodec(shards[0].DataShards, shards[0].ParityShards)
	if err != nil {
		return nil, err
	}
	return c.Join(shards)
}
