package array

import (
	"encoding/binary"
	"math"
)

// Fixed per-element strides of the raw representation, shared by the mapped
// file layout and the streaming Read/Write surface. There is no header or
// framing at this layer; a file or stream is a bare fixed-stride sequence.
const (
	// StrideBool stores a boolean as a little-endian int16 0/1.
	StrideBool = 2
	// StrideInt stores an int32.
	StrideInt = 4
	// StrideInt64 stores an int64.
	StrideInt64 = 8
	// StrideFloat64 stores a float64 bit pattern.
	StrideFloat64 = 8
	// StrideZoned stores an 8-byte epoch-millis int64 followed by a
	// 2-byte zone code.
	StrideZoned = 10
)

// PutBool encodes v into b[0:2].
func PutBool(b []byte, v bool) {
	var u uint16
	if v {
		u = 1
	}
	binary.LittleEndian.PutUint16(b, u)
}

// GetBool decodes b[0:2].
func GetBool(b []byte) bool {
	return binary.LittleEndian.Uint16(b) != 0
}

// PutInt32 encodes v into b[0:4].
func PutInt32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

// GetInt32 decodes b[0:4].
func GetInt32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// PutInt64 encodes v into b[0:8].
func PutInt64(b []byte, v int64) {
	binary.LittleEndian.PutUint64(b, uint64(v))
}

// GetInt64 decodes b[0:8].
func GetInt64(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

// PutFloat64 encodes v into b[0:8].
func PutFloat64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// GetFloat64 decodes b[0:8].
func GetFloat64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// PutZoned encodes an (instant, zone) pair into b[0:10].
func PutZoned(b []byte, millis int64, zone int16) {
	binary.LittleEndian.PutUint64(b, uint64(millis))
	binary.LittleEndian.PutUint16(b[8:], uint16(zone))
}

// GetZoned decodes b[0:10].
func GetZoned(b []byte) (millis int64, zone int16) {
	millis = int64(binary.LittleEndian.Uint64(b))
	zone = int16(binary.LittleEndian.Uint16(b[8:]))
	return millis, zone
}
