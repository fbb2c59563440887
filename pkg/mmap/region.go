// Package mmap provides writable memory-mapped file regions for array storage.
//
// A Region is a shared, writable mapping over a regular file. Stores through
// the returned byte slice reach the page cache directly; the OS writes pages
// back on its own schedule, and Sync forces an immediate flush. Remap grows
// the region by truncating the file larger and establishing a fresh mapping;
// it never relies on the kernel preserving an existing mapping across a
// resize.
package mmap

import (
	"os"
	"sync"

	"github.com/tabular-io/columnstore/pkg/errors"
)

// Region is a writable memory-mapped window over a file. It is not safe for
// concurrent mutation; callers that share a Region across views coordinate
// externally.
type Region struct {
	mu     sync.Mutex
	file   *os.File
	data   []byte
	size   int64
	closed bool
}

// Map maps size bytes of the given file read-write and shared, growing the
// file to size first if it is shorter. The file handle is owned by the
// Region afterwards and is closed by Close.
func Map(file *os.File, size int64) (*Region, error) {
	if size <= 0 {
		return nil, errors.Newf(errors.ErrorTypeResource, "mapping size must be positive, got %d", size)
	}

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeResource, "stat mapped file")
	}
	if stat.Size() < size {
		if err := file.Truncate(size); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeResource, "growing mapped file")
		}
	}

	data, err := mmap(int(file.Fd()), size)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeResource, "mmap file")
	}

	// Access pattern is random by nature of the array contract.
	_ = madviseRandom(data)

	return &Region{file: file, data: data, size: size}, nil
}

// Bytes returns the mapped window. The slice is invalidated by Remap and
// Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Size returns the size of the mapped window in bytes.
func (r *Region) Size() int64 {
	return r.size
}

// Name returns the path of the backing file.
func (r *Region) Name() string {
	return r.file.Name()
}

// Remap grows the mapping to newSize bytes. Content within the old window
// survives because the same file backs both mappings; the newly exposed tail
// is zero-filled by the file system. Shrinking is a no-op.
func (r *Region) Remap(newSize int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New(errors.ErrorTypeResource, "remap on closed region")
	}
	if newSize <= r.size {
		return nil
	}

	if err := munmap(r.data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeResource, "unmapping old window")
	}
	r.data = nil

	if err := r.file.Truncate(newSize); err != nil {
		return errors.Wrap(err, errors.ErrorTypeResource, "growing mapped file")
	}

	data, err := mmap(int(r.file.Fd()), newSize)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeResource, "remapping file")
	}
	_ = madviseRandom(data)

	r.data = data
	r.size = newSize
	return nil
}

// Sync flushes dirty pages in the window back to the file.
func (r *Region) Sync() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	if err := msync(r.data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeResource, "msync")
	}
	return nil
}

// Close unmaps the window and closes the backing file. It is idempotent.
// It does not remove the file; ownership of the path stays with the caller.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	if r.data != nil {
		if err := munmap(r.data); err != nil {
			firstErr = errors.Wrap(err, errors.ErrorTypeResource, "munmap")
		}
		r.data = nil
	}
	if err := r.file.Close(); err != nil && firstErr == nil {
		firstErr = errors.Wrap(err, errors.ErrorTypeResource, "closing mapped file")
	}
	return firstErr
}
