package array

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/goccy/go-json"

	"github.com/tabular-io/columnstore/pkg/compress"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// A raw snapshot persists any array's fixed-stride representation behind a
// small JSON header, with the payload run through a compression codec.
// Layout mirrors the coded-array snapshot: uvarint header length, JSON
// header, uvarint payload length, compressed payload.

type snapshotHeader struct {
	Kind   string             `json:"kind"`
	Length int                `json:"length"`
	Codec  compress.Algorithm `json:"codec"`
}

// WriteSnapshot streams the whole array through the codec named by
// algorithm.
//
// Zoned arrays are the one kind whose raw payload is not self-contained: the
// per-slot zone codes index the process-wide zone registry, which assigns
// codes in lookup order. A zoned snapshot therefore restores correctly only
// within the run that wrote it. Coded arrays persist across runs via their
// own Snapshot, which embeds the coding table.
func WriteSnapshot(w io.Writer, a Array, algorithm compress.Algorithm, level compress.Level) error {
	codec, err := compress.NewCodec(algorithm, level)
	if err != nil {
		return err
	}

	indexes := make([]int, a.Length())
	for i := range indexes {
		indexes[i] = i
	}
	var raw bytes.Buffer
	if err := a.Write(&raw, indexes); err != nil {
		return err
	}
	payload, err := codec.Compress(raw.Bytes())
	if err != nil {
		return err
	}

	headerBytes, err := json.Marshal(snapshotHeader{
		Kind:   a.Kind().String(),
		Length: a.Length(),
		Codec:  codec.Algorithm(),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "encoding snapshot header")
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

// ReadSnapshot fills a from a snapshot written by WriteSnapshot. The target's
// kind must match the snapshot's; the target grows when the snapshot is
// longer than it.
func ReadSnapshot(r io.Reader, a Array) error {
	br := &byteReader{r: r}

	headerLen, err := binary.ReadUvarint(br)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "reading snapshot header")
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(br, headerBytes); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "reading snapshot header")
	}
	var header snapshotHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "decoding snapshot header")
	}
	if header.Kind != a.Kind().String() {
		return errors.Newf(errors.ErrorTypeIncompatibleType,
			"snapshot holds %s values, target is %s", header.Kind, a.Kind())
	}

	payloadLen, err := binary.ReadUvarint(br)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "reading snapshot payload")
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(br, payload); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "reading snapshot payload")
	}

	codec, err := compress.NewCodec(header.Codec, compress.Default)
	if err != nil {
		return err
	}
	raw, err := codec.Decompress(payload)
	if err != nil {
		return err
	}

	if header.Length > a.Length() {
		a.Expand(header.Length)
	}
	return a.Read(bytes.NewReader(raw), header.Length)
}
