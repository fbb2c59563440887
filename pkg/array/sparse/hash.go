// Package sparse provides the hash-backed array family. Only slots holding a
// non-default value are materialized, so a mostly-default column costs memory
// proportional to its occupied slots rather than its logical length. The
// uniform array surface is identical to the dense family; LoadFactor exposes
// how sparse the backing store actually is.
package sparse

import (
	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// hashData is the backing store shared by every view of one logical array.
// entries holds only the slots whose value differs from def; a missing key
// reads as def. same overrides == for the store-default elision check (the
// float64 backend needs NaN == NaN there).
type hashData[T comparable] struct {
	entries map[int]T
	length  int
	def     T
	same    func(a, b T) bool
}

// hashColumn is the generic core embedded by the concrete kinds. Like the
// dense column it is a view: copies alias the same hashData.
type hashColumn[T comparable] struct {
	data     *hashData[T]
	parallel bool
}

func newHashColumn[T comparable](length int, def T, same func(a, b T) bool) hashColumn[T] {
	if length < 0 {
		panic(errors.Newf(errors.ErrorTypeBounds, "negative array length %d", length))
	}
	return hashColumn[T]{data: &hashData[T]{
		entries: make(map[int]T),
		length:  length,
		def:     def,
		same:    same,
	}}
}

func (d *hashData[T]) isDefault(v T) bool {
	if d.same != nil {
		return d.same(v, d.def)
	}
	return v == d.def
}

func (c *hashColumn[T]) length() int { return c.data.length }

// loadFactor is occupied slots over logical length; an empty array reads 0.
func (c *hashColumn[T]) loadFactor() float64 {
	if c.data.length == 0 {
		return 0
	}
	return float64(len(c.data.entries)) / float64(c.data.length)
}

func (c *hashColumn[T]) get(index int) T {
	array.CheckIndex(index, c.data.length)
	if v, ok := c.data.entries[index]; ok {
		return v
	}
	return c.data.def
}

// set stores value, removing the entry instead when value is the default so
// the load factor reflects real occupancy.
func (c *hashColumn[T]) set(index int, value T) {
	array.CheckIndex(index, c.data.length)
	if c.data.isDefault(value) {
		delete(c.data.entries, index)
		return
	}
	c.data.entries[index] = value
}

func (c *hashColumn[T]) swap(i, j int) {
	vi, vj := c.get(i), c.get(j)
	c.set(i, vj)
	c.set(j, vi)
}

func (c *hashColumn[T]) fill(value T) {
	if c.data.isDefault(value) {
		c.data.entries = make(map[int]T)
		return
	}
	for i := 0; i < c.data.length; i++ {
		c.data.entries[i] = value
	}
}

func (c *hashColumn[T]) fillRange(value T, start, end int) {
	array.CheckRange(start, end, c.data.length)
	for i := start; i < end; i++ {
		c.set(i, value)
	}
}

// expand grows the logical length only; new slots are implicit defaults, so
// growth allocates nothing.
func (c *hashColumn[T]) expand(newLength int) {
	if newLength > c.data.length {
		c.data.length = newLength
	}
}

func (c *hashColumn[T]) copyData() *hashData[T] {
	entries := make(map[int]T, len(c.data.entries))
	for i, v := range c.data.entries {
		entries[i] = v
	}
	return &hashData[T]{entries: entries, length: c.data.length, def: c.data.def, same: c.data.same}
}

func (c *hashColumn[T]) copyRange(start, end int) *hashData[T] {
	array.CheckRange(start, end, c.data.length)
	entries := make(map[int]T)
	for i, v := range c.data.entries {
		if i >= start && i < end {
			entries[i-start] = v
		}
	}
	return &hashData[T]{entries: entries, length: end - start, def: c.data.def, same: c.data.same}
}

func (c *hashColumn[T]) copyIndexes(indexes []int) *hashData[T] {
	entries := make(map[int]T)
	for k, i := range indexes {
		array.CheckIndex(i, c.data.length)
		if v, ok := c.data.entries[i]; ok {
			entries[k] = v
		}
	}
	return &hashData[T]{entries: entries, length: len(indexes), def: c.data.def, same: c.data.same}
}

func (c *hashColumn[T]) filter(keep func(index int) bool) *hashData[T] {
	entries := make(map[int]T)
	n := 0
	for i := 0; i < c.data.length; i++ {
		if !keep(i) {
			continue
		}
		if v, ok := c.data.entries[i]; ok {
			entries[n] = v
		}
		n++
	}
	return &hashData[T]{entries: entries, length: n, def: c.data.def, same: c.data.same}
}

// distinct walks slots in index order so the result keeps first-occurrence
// order, including the default value wherever an unoccupied slot appears.
func (c *hashColumn[T]) distinct(limit int) *hashData[T] {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[T]struct{}, capacity)
	out := &hashData[T]{entries: make(map[int]T), def: c.data.def, same: c.data.same}
	for i := 0; i < c.data.length; i++ {
		v := c.data.def
		if e, ok := c.data.entries[i]; ok {
			v = e
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if !c.data.isDefault(v) {
			out.entries[out.length] = v
		}
		out.length++
		if limit > 0 && out.length >= limit {
			break
		}
	}
	return out
}

const distinctSetCap = 1024

func (c *hashColumn[T]) updateScatter(fromIndexes, toIndexes []int, get func(int) T) {
	for k := range fromIndexes {
		c.set(toIndexes[k], get(fromIndexes[k]))
	}
}

func (c *hashColumn[T]) updateRange(fromStart, toStart, count int, fromLength int, get func(int) T) {
	array.CheckRange(fromStart, fromStart+count, fromLength)
	array.CheckRange(toStart, toStart+count, c.data.length)
	for k := 0; k < count; k++ {
		c.set(toStart+k, get(fromStart+k))
	}
}
