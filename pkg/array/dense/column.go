// Package dense provides the in-process slice-backed array family. One slot
// is materialized per logical index, the load factor is always 1, and the
// typed fast paths read and write the backing slice directly.
package dense

import (
	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/errors"
)

// columnData is the backing store shared by every view of one logical array.
type columnData[T comparable] struct {
	values []T
	def    T
}

// column is the generic core embedded by the concrete kinds. A column is a
// view: copies of it alias the same columnData, so mutation through one view
// is visible through the other.
type column[T comparable] struct {
	data     *columnData[T]
	parallel bool
}

func newColumn[T comparable](length int, def T) column[T] {
	if length < 0 {
		panic(errors.Newf(errors.ErrorTypeBounds, "negative array length %d", length))
	}
	values := make([]T, length)
	if def != *new(T) {
		for i := range values {
			values[i] = def
		}
	}
	return column[T]{data: &columnData[T]{values: values, def: def}}
}

func (c *column[T]) length() int { return len(c.data.values) }

func (c *column[T]) get(index int) T {
	array.CheckIndex(index, len(c.data.values))
	return c.data.values[index]
}

func (c *column[T]) set(index int, value T) {
	array.CheckIndex(index, len(c.data.values))
	c.data.values[index] = value
}

func (c *column[T]) swap(i, j int) {
	array.CheckIndex(i, len(c.data.values))
	array.CheckIndex(j, len(c.data.values))
	c.data.values[i], c.data.values[j] = c.data.values[j], c.data.values[i]
}

func (c *column[T]) fill(value T) {
	for i := range c.data.values {
		c.data.values[i] = value
	}
}

func (c *column[T]) fillRange(value T, start, end int) {
	array.CheckRange(start, end, len(c.data.values))
	for i := start; i < end; i++ {
		c.data.values[i] = value
	}
}

func (c *column[T]) expand(newLength int) {
	if newLength <= len(c.data.values) {
		return
	}
	grown := make([]T, newLength)
	copy(grown, c.data.values)
	if c.data.def != *new(T) {
		for i := len(c.data.values); i < newLength; i++ {
			grown[i] = c.data.def
		}
	}
	c.data.values = grown
}

func (c *column[T]) copyData() *columnData[T] {
	values := make([]T, len(c.data.values))
	copy(values, c.data.values)
	return &columnData[T]{values: values, def: c.data.def}
}

func (c *column[T]) copyRange(start, end int) *columnData[T] {
	array.CheckRange(start, end, len(c.data.values))
	values := make([]T, end-start)
	copy(values, c.data.values[start:end])
	return &columnData[T]{values: values, def: c.data.def}
}

func (c *column[T]) copyIndexes(indexes []int) *columnData[T] {
	values := make([]T, len(indexes))
	for k, i := range indexes {
		array.CheckIndex(i, len(c.data.values))
		values[k] = c.data.values[i]
	}
	return &columnData[T]{values: values, def: c.data.def}
}

// distinct returns first-occurrence-ordered unique values, up to limit when
// limit > 0. The set is sized to min(limit, distinctSetCap).
func (c *column[T]) distinct(limit int) []T {
	capacity := distinctSetCap
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	seen := make(map[T]struct{}, capacity)
	var out []T
	for _, v := range c.data.values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

const distinctSetCap = 1024

func (c *column[T]) filter(keep func(index int) bool) []T {
	var out []T
	for i := range c.data.values {
		if keep(i) {
			out = append(out, c.data.values[i])
		}
	}
	return out
}

// updateScatter applies a validated scatter-update through a typed getter.
func (c *column[T]) updateScatter(fromIndexes, toIndexes []int, get func(int) T) {
	for k := range fromIndexes {
		c.data.values[toIndexes[k]] = get(fromIndexes[k])
	}
}

func (c *column[T]) updateRange(fromStart, toStart, count int, fromLength int, get func(int) T) {
	array.CheckRange(fromStart, fromStart+count, fromLength)
	array.CheckRange(toStart, toStart+count, len(c.data.values))
	for k := 0; k < count; k++ {
		c.data.values[toStart+k] = get(fromStart + k)
	}
}
