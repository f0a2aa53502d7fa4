package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiv(t *testing.T) {
	require.Equal(t, 4, DivFloor(17, 4))
	require.Equal(t, 5, DivCeil(17, 4))
	require.Equal(t, 4, DivCeil(16, 4))
	require.Equal(t, uint16(8), DivFloor[uint16](32, 4))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 16, Clamp(8, 16, 32768))
	require.Equal(t, 32768, Clamp(65536, 16, 32768))
	require.Equal(t, 64, Clamp(64, 16, 32768))
	require.Equal(t, 3, Min(3, 7))
	require.Equal(t, 7, Max(3, 7))
}
