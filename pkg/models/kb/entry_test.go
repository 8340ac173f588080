package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	sum, err := Dot(Vector{1, 2, 3}, Vector{4, 5, 6})
	require.NoError(t, err)
	assert.InDelta(t, 32.0, sum, 1e-6)
}

func TestDotLengthMismatch(t *testing.T) {
	_, err := Dot(Vector{1, 2}, Vector{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}
