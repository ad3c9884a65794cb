package wallet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/tyler-smith/go-bip32"
)

// ThorRootPath is m/44'/818'/0'/0, the index of the account is appended.
var ThorRootPath = accounts.DerivationPath{
	bip32.FirstHardenedChild + 44,
	bip32.FirstHardenedChild + 818,
	bip32.FirstHardenedChild,
	0,
}

// AccountPath returns the derivation path of the account at index.
func AccountPath(index uint32) accounts.DerivationPath {
	path := make(accounts.DerivationPath, 0, len(ThorRootPath)+1)
	path = append(path, ThorRootPath...)
	return append(path, index)
}

// ParsePath parses an absolute derivation path. Both ' and h mark a hardened component.
func ParsePath(path string) (accounts.DerivationPath, error) {
	if !strings.HasPrefix(strings.TrimSpace(path), "m") {
		return nil, fmt.Errorf("invalid path %q: only absolute paths are supported", path)
	}

	return accounts.ParseDerivationPath(strings.ReplaceAll(path, "h", "'"))
}

// DeriveKey returns the raw private key at path of the seed.
func DeriveKey(seed []byte, path string) ([]byte, error) {
	indexes, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	return derive(seed, indexes)
}

func derive(seed []byte, path accounts.DerivationPath) ([]byte, error) {
	node, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	for _, index := range path {
		node, err = node.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("cannot derive child %d: %w", index, err)
		}
	}

	return node.Key, nil
}
