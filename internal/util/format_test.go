package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCount(t *testing.T) {
	tests := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45000:   "-45,000",
		100000:   "100,000",
		-1000000: "-1,000,000",
	}
	for in, want := range tests {
		require.Equal(t, want, FormatCount(in))
	}
}

func TestFormatCost(t *testing.T) {
	require.Equal(t, "12.50", FormatCost(12.5))
	require.Equal(t, "0.00", FormatCost(0))
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", TruncateString("short", 10))
	require.Equal(t, "longer ...", TruncateString("longer string", 10))
	require.Equal(t, "lo", TruncateString("longer", 2))
}
