package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToWei(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"1.234", "1234000000000000000"},
		{"1", "1000000000000000000"},
		{"0.000000000000000001", "1"},
		{" 42 ", "42000000000000000000"},
		{"0", "0"},
	}

	for _, tc := range tests {
		v, err := ToWei(tc.in)
		require.Nil(t, err, tc.in)
		require.Equal(t, tc.expected, v.String())
	}

	for _, in := range []string{"", "-1", "abc", "0.0000000000000000001"} {
		_, err := ToWei(in)
		require.NotNil(t, err, in)
	}
}

func TestFromWei(t *testing.T) {
	v, ok := new(big.Int).SetString("1234000000000000000", 10)
	require.True(t, ok)

	require.Equal(t, "1.234", FromWei(v))
	require.Equal(t, "1", FromWei(OneVetInWei))
	require.Equal(t, "0.000000000000000001", FromWei(big.NewInt(1)))
	require.Equal(t, "0", FromWei(big.NewInt(0)))
	require.Equal(t, "0", FromWei(nil))
}
