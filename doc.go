// Package columnstore is a columnar array storage engine: typed resizable
// arrays that back the columns of a data table.
//
// Three interchangeable backend families implement one array contract:
//
//   - dense: one heap slot per index (pkg/array/dense)
//   - mapped: slots in a memory-mapped temporary file, for arrays larger
//     than comfortable heap use (pkg/array/mapped)
//   - sparse: a hash map of non-default slots (pkg/array/sparse)
//
// Rich element types (currencies, years, time zones, civil dates and times,
// instants, enums) store a compact integer code per slot and translate
// through a coding table (pkg/coding, pkg/array/coded). Zoned date-times
// store an epoch-millisecond instant beside a zone code.
//
// pkg/array/factory picks the backend for a logical type and storage mode;
// pkg/reduce runs fork-join min/max and predicate-count scans over any
// array. Arrays snapshot to streams with optional compression (pkg/compress).
package columnstore
