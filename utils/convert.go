package utils

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// VET and VTHO both have 18 decimals.
	Decimals = 18
)

var (
	OneVetInWei = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)
)

// ToWei converts a decimal token amount (e.g. "1.5") to wei.
func ToWei(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	value, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	value.Mul(value, new(big.Rat).SetInt(OneVetInWei))
	if !value.IsInt() {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, Decimals)
	}

	return new(big.Int).Set(value.Num()), nil
}

// FromWei formats a wei amount as a decimal token amount without trailing zeros.
func FromWei(v *big.Int) string {
	if v == nil {
		return "0"
	}

	s := new(big.Rat).SetFrac(v, OneVetInWei).FloatString(Decimals)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
