package envelope

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrCompressionFailed   = errors.New("envelope: compression failed")
	ErrDecompressionFailed = errors.New("envelope: decompression failed")
	ErrUnknownFormat       = errors.New("envelope: unknown format")
)

// Level controls the speed/ratio tradeoff.
type Level int

const (
	LevelFast    Level = iota // Fastest, lower ratio
	LevelDefault              // Balanced
	LevelBest                 // Best ratio, slower
)

// ParseLevel maps a config name to a Level. Unknown names give LevelDefault.
func ParseLevel(s string) Level {
	switch s {
	case "fast":
		return LevelFast
	case "best":
		return LevelBest
	default:
		return LevelDefault
	}
}

var writerPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewWriter(nil)
	},
}

var readerPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewReader(nil)
	},
}

// Compress returns data as an LZ4 frame.
func Compress(data []byte, level Level) ([]byte, error) {
	var buf bytes.Buffer
	w := writerPool.Get().(*lz4.Writer)
	defer writerPool.Put(w)

	w.Reset(&buf)

	switch level {
	case LevelFast:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Fast))
	case LevelBest:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level9))
	default:
		_ = w.Apply(lz4.CompressionLevelOption(lz4.Level4))
	}

	if _, err := w.Write(data); err != nil {
		return nil, ErrCompressionFailed
	}
	if err := w.Close(); err != nil {
		return nil, ErrCompressionFailed
	}
	return buf.Bytes(), nil
}

// Decompress reads an LZ4 frame.
func Decompress(data []byte) ([]byte, error) {
	r := readerPool.Get().(*lz4.Reader)
	defer readerPool.Put(r)

	r.Reset(bytes.NewReader(data))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, ErrDecompressionFailed
	}
	return buf.Bytes(), nil
}
