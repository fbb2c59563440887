// Package mapped provides the file-backed array family. Slots live in a
// memory-mapped temporary file rather than the Go heap, so columns larger
// than memory page in and out under OS control. The backing file is created
// under the configured base directory with a unique name and removed on
// Close unless Persist was called.
//
// The uniform array surface is identical to the other families. Operations
// that produce a new array (Copy, Filter, Distinct, CumSum) allocate a new
// backing file; they panic with a resource error when the file system
// refuses, since the array contract has no error return there.
package mapped

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/config"
	"github.com/tabular-io/columnstore/pkg/errors"
	"github.com/tabular-io/columnstore/pkg/logger"
	"github.com/tabular-io/columnstore/pkg/mmap"
)

// minCapacitySlots keeps zero-length arrays mappable and small arrays from
// remapping on every expand.
const minCapacitySlots = 16

// fileData is the backing store shared by every view of one mapped array.
// length is the logical slot count; capacity is what the mapping can hold
// before a remap is needed.
type fileData[T comparable] struct {
	region   *mmap.Region
	path     string
	dir      string
	growth   float64
	length   int
	capacity int
	stride   int
	def      T
	put      func(b []byte, v T)
	get      func(b []byte) T
	persist  bool
	closed   bool
}

// fileColumn is the generic core embedded by the concrete kinds; copies of
// it alias the same fileData.
type fileColumn[T comparable] struct {
	data     *fileData[T]
	parallel bool
}

func newFileData[T comparable](cfg *config.StorageConfig, length int, def T,
	stride int, put func([]byte, T), get func([]byte) T) (*fileData[T], error) {

	if length < 0 {
		return nil, errors.Newf(errors.ErrorTypeBounds, "negative array length %d", length)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	dir, err := cfg.EnsureBaseDir()
	if err != nil {
		return nil, err
	}
	growth := cfg.GrowthFactor
	if growth <= 1 {
		growth = config.DefaultGrowthFactor
	}

	d := &fileData[T]{
		dir:    dir,
		growth: growth,
		length: length,
		stride: stride,
		def:    def,
		put:    put,
		get:    get,
	}
	if err := d.open(length); err != nil {
		return nil, err
	}
	d.fillRange(def, 0, length)
	return d, nil
}

// open creates the backing file and maps it with room for at least length
// slots.
func (d *fileData[T]) open(length int) error {
	capacity := length
	if capacity < minCapacitySlots {
		capacity = minCapacitySlots
	}
	path := filepath.Join(d.dir, "array-"+uuid.NewString()+".col")
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeResource, "creating array backing file")
	}
	region, err := mmap.Map(file, int64(capacity*d.stride))
	if err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	d.region = region
	d.path = path
	d.capacity = capacity
	logger.Debug("mapped array file created",
		zap.String("path", path),
		zap.Int("capacity", capacity),
		zap.Int("stride", d.stride))
	return nil
}

// sibling creates a new backing store with the same geometry parameters for
// derived arrays.
func (d *fileData[T]) sibling(length int) *fileData[T] {
	out := &fileData[T]{
		dir:    d.dir,
		growth: d.growth,
		length: length,
		stride: d.stride,
		def:    d.def,
		put:    d.put,
		get:    d.get,
	}
	if err := out.open(length); err != nil {
		panic(err)
	}
	return out
}

func (d *fileData[T]) at(index int) []byte {
	if d.closed {
		panic(errors.New(errors.ErrorTypeResource, "mapped array used after close"))
	}
	array.CheckIndex(index, d.length)
	return d.region.Bytes()[index*d.stride : (index+1)*d.stride]
}

func (d *fileData[T]) getAt(index int) T { return d.get(d.at(index)) }

func (d *fileData[T]) setAt(index int, value T) { d.put(d.at(index), value) }

func (d *fileData[T]) fillRange(value T, start, end int) {
	array.CheckRange(start, end, d.length)
	for i := start; i < end; i++ {
		d.put(d.at(i), value)
	}
}

// expand grows the logical length, remapping with growth-factor headroom
// when capacity runs out, and default-fills the new slots. It panics with a
// resource error when the remap fails.
func (d *fileData[T]) expand(newLength int) {
	if d.closed {
		panic(errors.New(errors.ErrorTypeResource, "mapped array used after close"))
	}
	if newLength <= d.length {
		return
	}
	if newLength > d.capacity {
		capacity := int(float64(d.capacity) * d.growth)
		if capacity < newLength {
			capacity = newLength
		}
		if err := d.region.Remap(int64(capacity * d.stride)); err != nil {
			panic(err)
		}
		logger.Debug("mapped array remapped",
			zap.String("path", d.path),
			zap.Int("capacity", capacity))
		d.capacity = capacity
	}
	oldLength := d.length
	d.length = newLength
	d.fillRange(d.def, oldLength, newLength)
}

func (d *fileData[T]) close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	logger.Debug("closing mapped array",
		zap.String("path", d.path),
		zap.Bool("persist", d.persist))
	err := d.region.Close()
	if !d.persist {
		if rmErr := os.Remove(d.path); rmErr != nil && err == nil {
			err = errors.Wrap(rmErr, errors.ErrorTypeResource, "removing array backing file")
		}
	}
	return err
}

func (c *fileColumn[T]) length() int { return c.data.length }

func (c *fileColumn[T]) get(index int) T { return c.data.getAt(index) }

func (c *fileColumn[T]) set(index int, value T) { c.data.setAt(index, value) }

func (c *fileColumn[T]) swap(i, j int) {
	vi, vj := c.get(i), c.get(j)
	c.set(i, vj)
	c.set(j, vi)
}

func (c *fileColumn[T]) fill(value T) { c.data.fillRange(value, 0, c.data.length) }

func (c *fileColumn[T]) expand(newLength int) { c.data.expand(newLength) }

func (c *fileColumn[T]) copyData() *fileData[T] {
	out := c.data.sibling(c.data.length)
	copy(out.region.Bytes()[:c.data.length*c.data.stride],
		c.data.region.Bytes()[:c.data.length*c.data.stride])
	return out
}

func (c *fileColumn[T]) copyRange(start, end int) *fileData[T] {
	array.CheckRange(start, end, c.data.length)
	out := c.data.sibling(end - start)
	copy(out.region.Bytes()[:(end-start)*c.data.stride],
		c.data.region.Bytes()[start*c.data.stride:end*c.data.stride])
	return out
}

func (c *fileColumn[T]) copyIndexes(indexes []int) *fileData[T] {
	out := c.data.sibling(len(indexes))
	for k, i := range indexes {
		out.setAt(k, c.get(i))
	}
	return out
}

func (c *fileColumn[T]) filter(keep func(index int) bool) *fileData[T] {
	var kept []T
	for i := 0; i < c.data.length; i++ {
		if keep(i) {
			kept = append(kept, c.get(i))
		}
	}
	out := c.data.sibling(len(kept))
	for i, v := range kept {
		out.setAt(i, v)
	}
	return out
}

func (c *fileColumn[T]) distinct(limit int) *fileData[T] {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[T]struct{}, capacity)
	var unique []T
	for i := 0; i < c.data.length; i++ {
		v := c.get(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
		if limit > 0 && len(unique) >= limit {
			break
		}
	}
	out := c.data.sibling(len(unique))
	for i, v := range unique {
		out.setAt(i, v)
	}
	return out
}

const distinctSetCap = 1024

func (c *fileColumn[T]) updateScatter(fromIndexes, toIndexes []int, get func(int) T) {
	for k := range fromIndexes {
		c.set(toIndexes[k], get(fromIndexes[k]))
	}
}

func (c *fileColumn[T]) updateRange(fromStart, toStart, count int, fromLength int, get func(int) T) {
	array.CheckRange(fromStart, fromStart+count, fromLength)
	array.CheckRange(toStart, toStart+count, c.data.length)
	for k := 0; k < count; k++ {
		c.set(toStart+k, get(fromStart+k))
	}
}

// Path returns the location of the backing file.
func (c *fileColumn[T]) Path() string { return c.data.path }

// Persist flushes the mapping and marks the backing file to survive Close.
func (c *fileColumn[T]) Persist() error {
	c.data.persist = true
	return c.data.region.Sync()
}

// Sync flushes dirty pages of the backing file to disk.
func (c *fileColumn[T]) Sync() error {
	if c.data.closed {
		return nil
	}
	return c.data.region.Sync()
}

// Close unmaps the array and deletes the backing file unless Persist was
// called. Every view of the array shares the mapping, so closing one view
// closes them all. Close is idempotent.
func (c *fileColumn[T]) Close() error { return c.data.close() }
