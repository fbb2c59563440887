package coded

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/goccy/go-json"

	"github.com/tabular-io/columnstore/pkg/array/dense"
	"github.com/tabular-io/columnstore/pkg/coding"
	"github.com/tabular-io/columnstore/pkg/compress"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// A snapshot is a self-describing persisted form of a coded array: a JSON
// header naming the coding table (with its value table for interned
// codings) followed by the compressed raw code payload. Because the header
// embeds the table, a restore reproduces the writing process's exact code
// assignment and never depends on cross-run registry stability.
//
// Layout: uvarint header length, JSON header, uvarint payload length,
// compressed codes.

const (
	widthInt32 = "int32"
	widthInt64 = "int64"
)

type snapshotHeader struct {
	Width       string             `json:"width"`
	Table       coding.Descriptor  `json:"table"`
	Length      int                `json:"length"`
	DefaultCode int64              `json:"default_code"`
	Codec       compress.Algorithm `json:"codec"`
}

func writeSnapshot(w io.Writer, header snapshotHeader, codes []byte,
	algorithm compress.Algorithm, level compress.Level) error {

	codec, err := compress.NewCodec(algorithm, level)
	if err != nil {
		return err
	}
	header.Codec = codec.Algorithm()

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "encoding snapshot header")
	}
	payload, err := codec.Compress(codes)
	if err != nil {
		return err
	}

	var frame [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(frame[:], uint64(len(headerBytes)))
	if _, err := w.Write(frame[:n]); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "writing snapshot header")
	}
	if _, err := w.Write(headerBytes); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "writing snapshot header")
	}
	n = binary.PutUvarint(frame[:], uint64(len(payload)))
	if _, err := w.Write(frame[:n]); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "writing snapshot payload")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "writing snapshot payload")
	}
	return nil
}

func readSnapshot(r io.Reader) (snapshotHeader, []byte, error) {
	var header snapshotHeader
	br := newByteReader(r)

	headerLen, err := binary.ReadUvarint(br)
	if err != nil {
		return header, nil, errors.Wrap(err, errors.ErrorTypeData, "reading snapshot header")
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(br, headerBytes); err != nil {
		return header, nil, errors.Wrap(err, errors.ErrorTypeData, "reading snapshot header")
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return header, nil, errors.Wrap(err, errors.ErrorTypeData, "decoding snapshot header")
	}

	payloadLen, err := binary.ReadUvarint(br)
	if err != nil {
		return header, nil, errors.Wrap(err, errors.ErrorTypeData, "reading snapshot payload")
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(br, payload); err != nil {
		return header, nil, errors.Wrap(err, errors.ErrorTypeData, "reading snapshot payload")
	}

	codec, err := compress.NewCodec(header.Codec, compress.Default)
	if err != nil {
		return header, nil, err
	}
	codes, err := codec.Decompress(payload)
	if err != nil {
		return header, nil, err
	}
	return header, codes, nil
}

// byteReader adapts an io.Reader for binary.ReadUvarint without buffering
// past the varint, so the remaining stream position stays exact.
type byteReader struct {
	r   io.Reader
	one [1]byte
}

func newByteReader(r io.Reader) *byteReader { return &byteReader{r: r} }

func (b *byteReader) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		return 0, err
	}
	return b.one[0], nil
}

func allIndexes(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return indexes
}

// Snapshot persists the array: table descriptor, length, default code and
// the compressed raw codes.
func (a *Int) Snapshot(w io.Writer, algorithm compress.Algorithm, level compress.Level) error {
	var codes bytes.Buffer
	if err := a.codes.Write(&codes, allIndexes(a.Length())); err != nil {
		return err
	}
	return writeSnapshot(w, snapshotHeader{
		Width:       widthInt32,
		Table:       a.table.Descriptor(),
		Length:      a.Length(),
		DefaultCode: int64(a.defCode),
	}, codes.Bytes(), algorithm, level)
}

// RestoreInt rebuilds a coded int32 array from a snapshot, backed by a dense
// code array.
func RestoreInt(r io.Reader) (*Int, error) {
	header, codes, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if header.Width != widthInt32 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"snapshot holds %s codes, not %s", header.Width, widthInt32)
	}
	table, err := coding.IntFromDescriptor(header.Table)
	if err != nil {
		return nil, err
	}
	backing := dense.NewInt(header.Length, int32(header.DefaultCode))
	if err := backing.Read(bytes.NewReader(codes), header.Length); err != nil {
		return nil, err
	}
	return NewInt(backing, table)
}

// Snapshot persists the array: table descriptor, length, default code and
// the compressed raw codes.
func (a *Int64) Snapshot(w io.Writer, algorithm compress.Algorithm, level compress.Level) error {
	var codes bytes.Buffer
	if err := a.codes.Write(&codes, allIndexes(a.Length())); err != nil {
		return err
	}
	return writeSnapshot(w, snapshotHeader{
		Width:       widthInt64,
		Table:       a.table.Descriptor(),
		Length:      a.Length(),
		DefaultCode: a.defCode,
	}, codes.Bytes(), algorithm, level)
}

// RestoreInt64 rebuilds a coded int64 array from a snapshot, backed by a
// dense code array.
func RestoreInt64(r io.Reader) (*Int64, error) {
	header, codes, err := readSnapshot(r)
	if err != nil {
		return nil, err
	}
	if header.Width != widthInt64 {
		return nil, errors.Newf(errors.ErrorTypeData,
			"snapshot holds %s codes, not %s", header.Width, widthInt64)
	}
	table, err := coding.LongFromDescriptor(header.Table)
	if err != nil {
		return nil, err
	}
	backing := dense.NewInt64(header.Length, header.DefaultCode)
	if err := backing.Read(bytes.NewReader(codes), header.Length); err != nil {
		return nil, err
	}
	return NewInt64(backing, table)
}
