package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	err := Bounds(12, 10)
	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeBounds, err.Type)
	assert.Contains(t, err.Error(), "index 12")
	assert.Contains(t, err.Error(), "length 10")
	assert.Equal(t, 12, err.Details["index"])
	assert.Equal(t, 10, err.Details["length"])
	assert.True(t, IsType(err, ErrorTypeBounds))
	assert.False(t, IsType(err, ErrorTypeResource))
}

func TestLengthMismatch(t *testing.T) {
	err := LengthMismatch(3, 5)
	assert.Equal(t, ErrorTypeLengthMismatch, err.Type)
	assert.Equal(t, 3, err.Details["from_length"])
	assert.Equal(t, 5, err.Details["to_length"])
}

func TestIncompatibleType(t *testing.T) {
	err := IncompatibleType("", 42)
	assert.Equal(t, ErrorTypeIncompatibleType, err.Type)
	assert.Contains(t, err.Error(), "string")
	assert.Contains(t, err.Error(), "int")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, ErrorTypeResource, "cannot map file")
	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")

	// wrapping an *Error keeps the original stack
	outer := Wrap(err, ErrorTypeResource, "opening array")
	assert.Equal(t, err.Stack, outer.Stack)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeResource, "ignored"))
}

func TestStackCaptured(t *testing.T) {
	err := New(ErrorTypeUnsupported, "nope")
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestStackCaptured")
}
