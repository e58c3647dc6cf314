package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy\x7f"
	require.Equal(t, "abcd\n\txy", SanitizeText(in))
}

func TestSanitizeTextTrims(t *testing.T) {
	require.Equal(t, "", SanitizeText(" \x00\n\t "))
}

func TestShortDigest(t *testing.T) {
	d := ShortDigest([]byte("hello"))
	require.Len(t, d, 12)
	require.Equal(t, SHA256Hex([]byte("hello"))[:12], d)
}
