//go:build darwin

package mmap

import (
	"golang.org/x/sys/unix"
)

// mmap establishes a shared read-write mapping over fd.
func mmap(fd int, length int64) ([]byte, error) {
	return unix.Mmap(fd, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// munmap releases a mapping
func munmap(b []byte) error {
	return unix.Munmap(b)
}

// msync flushes dirty pages synchronously
func msync(b []byte) error {
	return unix.Msync(b, unix.MS_SYNC)
}

// madviseRandom advises the kernel the mapping will be accessed randomly
func madviseRandom(b []byte) error {
	return unix.Madvise(b, unix.MADV_RANDOM)
}
