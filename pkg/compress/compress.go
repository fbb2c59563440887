// Package compress provides the compression codecs used by array snapshots.
//
// Snapshots are fixed-stride primitive payloads, which compress well under
// fast LZ-family codecs. Algorithms are selected by name so the choice can
// ride in the snapshot header and the configuration file unchanged.
//
// Speed (fastest to slowest): LZ4 > S2 > Zstd > Gzip.
// Ratio (best to worst): Zstd > Gzip > S2 > LZ4.
package compress

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// LZ4 represents lz4 compression
	LZ4 Algorithm = "lz4"
	// S2 represents s2 compression (Snappy compatible)
	S2 Algorithm = "s2"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
)

// Level represents compression level, controlling the trade-off between
// compression speed and compression ratio.
type Level int

const (
	// Fastest prioritizes speed over compression ratio.
	Fastest Level = 1
	// Default balances speed and compression.
	Default Level = 5
	// Best maximizes compression ratio.
	Best Level = 9
)

// Codec provides compression and decompression. Implementations are safe
// for concurrent use.
type Codec interface {
	// Algorithm returns the codec's algorithm name.
	Algorithm() Algorithm
	// Compress compresses data in memory.
	Compress(data []byte) ([]byte, error)
	// Decompress decompresses data in memory.
	Decompress(data []byte) ([]byte, error)
}

// NewCodec returns a Codec for the given algorithm and level.
func NewCodec(algorithm Algorithm, level Level) (Codec, error) {
	switch algorithm {
	case "", None:
		return noneCodec{}, nil
	case Gzip:
		return &gzipCodec{level: int(level)}, nil
	case LZ4:
		return &lz4Codec{level: lz4Level(level)}, nil
	case S2:
		return s2Codec{}, nil
	case Zstd:
		return newZstdCodec(level)
	default:
		return nil, errors.Newf(errors.ErrorTypeUnsupported, "unknown compression algorithm %q", algorithm)
	}
}

type noneCodec struct{}

func (noneCodec) Algorithm() Algorithm                   { return None }
func (noneCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noneCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

type gzipCodec struct {
	level int
}

func (c *gzipCodec) Algorithm() Algorithm { return Gzip }

func (c *gzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "creating gzip writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip close")
	}
	return buf.Bytes(), nil
}

func (c *gzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "creating gzip reader")
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "gzip decompress")
	}
	return out, nil
}

type lz4Codec struct {
	level lz4.CompressionLevel
}

func lz4Level(level Level) lz4.CompressionLevel {
	switch {
	case level <= Fastest:
		return lz4.Fast
	case level >= Best:
		return lz4.Level9
	default:
		return lz4.Level4
	}
}

func (c *lz4Codec) Algorithm() Algorithm { return LZ4 }

func (c *lz4Codec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(c.level)); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "configuring lz4 writer")
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "lz4 compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "lz4 close")
	}
	return buf.Bytes(), nil
}

func (c *lz4Codec) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "lz4 decompress")
	}
	return out, nil
}

type s2Codec struct{}

func (s2Codec) Algorithm() Algorithm { return S2 }

func (s2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Codec) Decompress(data []byte) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "s2 decompress")
	}
	return out, nil
}

type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newZstdCodec(level Level) (*zstdCodec, error) {
	var zl zstd.EncoderLevel
	switch {
	case level <= Fastest:
		zl = zstd.SpeedFastest
	case level >= Best:
		zl = zstd.SpeedBestCompression
	default:
		zl = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zl))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "creating zstd encoder")
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "creating zstd decoder")
	}
	return &zstdCodec{enc: enc, dec: dec}, nil
}

func (c *zstdCodec) Algorithm() Algorithm { return Zstd }

func (c *zstdCodec) Compress(data []byte) ([]byte, error) {
	return c.enc.EncodeAll(data, nil), nil
}

func (c *zstdCodec) Decompress(data []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "zstd decompress")
	}
	return out, nil
}
