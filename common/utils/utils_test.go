package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRandomHex(t *testing.T) {
	first := GetRandomHex(12)
	second := GetRandomHex(12)

	assert.Len(t, first, 24)
	assert.NotEqual(t, first, second)

	_, err := hex.DecodeString(first)
	require.NoError(t, err)
}
