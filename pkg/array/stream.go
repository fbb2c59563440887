package array

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/tabular-io/columnstore/pkg/errors"
	"github.com/tabular-io/columnstore/pkg/pool"
)

// ReadFixed fills slots [0, count) by decoding a fixed-stride stream through
// a pooled buffer.
func ReadFixed(r io.Reader, count, length, stride int, decode func(index int, b []byte)) error {
	if count < 0 || count > length {
		return errors.Newf(errors.ErrorTypeBounds, "read count %d invalid for length %d", count, length)
	}
	bufPtr := pool.GetBuffer()
	defer pool.PutBuffer(bufPtr)
	buf := *bufPtr
	perChunk := len(buf) / stride

	for done := 0; done < count; {
		n := count - done
		if n > perChunk {
			n = perChunk
		}
		chunk := buf[:n*stride]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "reading array stream")
		}
		for k := 0; k < n; k++ {
			decode(done+k, chunk[k*stride:(k+1)*stride])
		}
		done += n
	}
	return nil
}

// WriteFixed streams the given indexes in order through a pooled buffer.
func WriteFixed(w io.Writer, indexes []int, length, stride int, encode func(index int, b []byte)) error {
	for _, i := range indexes {
		if i < 0 || i >= length {
			return errors.Bounds(i, length)
		}
	}
	bufPtr := pool.GetBuffer()
	defer pool.PutBuffer(bufPtr)
	buf := *bufPtr
	perChunk := len(buf) / stride

	for done := 0; done < len(indexes); {
		n := len(indexes) - done
		if n > perChunk {
			n = perChunk
		}
		chunk := buf[:n*stride]
		for k := 0; k < n; k++ {
			encode(indexes[done+k], chunk[k*stride:(k+1)*stride])
		}
		if _, err := w.Write(chunk); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "writing array stream")
		}
		done += n
	}
	return nil
}

// ReadVar fills slots [0, count) from a uvarint length-prefixed stream. The
// reader is never buffered past the last element, so several arrays can share
// one stream and read back in sequence.
func ReadVar(r io.Reader, count, length int, decode func(index int, b []byte) error) error {
	if count < 0 || count > length {
		return errors.Newf(errors.ErrorTypeBounds, "read count %d invalid for length %d", count, length)
	}
	br := &byteReader{r: r}
	for i := 0; i < count; i++ {
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "reading element header")
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "reading element payload")
		}
		if err := decode(i, b); err != nil {
			return err
		}
	}
	return nil
}

// byteReader adapts an io.Reader for binary.ReadUvarint without consuming
// bytes past the varint, keeping the stream position exact for whatever is
// read next.
type byteReader struct {
	r   io.Reader
	one [1]byte
}

func (b *byteReader) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		return 0, err
	}
	return b.one[0], nil
}

// WriteVar streams the given indexes as uvarint length-prefixed payloads.
func WriteVar(w io.Writer, indexes []int, length int, encode func(index int) ([]byte, error)) error {
	for _, i := range indexes {
		if i < 0 || i >= length {
			return errors.Bounds(i, length)
		}
	}
	bw := bufio.NewWriter(w)
	var header [binary.MaxVarintLen64]byte
	for _, i := range indexes {
		b, err := encode(i)
		if err != nil {
			return err
		}
		n := binary.PutUvarint(header[:], uint64(len(b)))
		if _, err := bw.Write(header[:n]); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "writing element header")
		}
		if _, err := bw.Write(b); err != nil {
			return errors.Wrap(err, errors.ErrorTypeData, "writing element payload")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "flushing array stream")
	}
	return nil
}
