package crypto

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	PrivateKeyLength = 32
	SignatureLength  = ethcrypto.SignatureLength
)

var (
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")
)

// ParsePrivateKey turns raw key bytes into a secp256k1 private key. The scalar must be exactly
// 32 bytes, non-zero and lower than the curve order.
func ParsePrivateKey(raw []byte) (*ecdsa.PrivateKey, error) {
	if len(raw) != PrivateKeyLength {
		return nil, ErrInvalidPrivateKey
	}

	key, err := ethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}

	return key, nil
}

func IsValidPrivateKey(raw []byte) bool {
	_, err := ParsePrivateKey(raw)
	return err == nil
}

// AddressFromKey returns the account address controlled by the raw private key.
func AddressFromKey(raw []byte) (common.Address, error) {
	key, err := ParsePrivateKey(raw)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(key.PublicKey), nil
}

// GenerateKey returns the raw bytes of a fresh random private key.
func GenerateKey() ([]byte, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return ethcrypto.FromECDSA(key), nil
}
