package crypto

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
)

// Sign produces a 65 bytes [R || S || V] recoverable signature of hash, where V is 0 or 1.
func Sign(hash common.Hash, rawKey []byte) ([]byte, error) {
	key, err := ParsePrivateKey(rawKey)
	if err != nil {
		return nil, err
	}

	return ethcrypto.Sign(hash[:], key)
}

// RecoverAddress returns the address of the key that produced sig over hash.
func RecoverAddress(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}

	pub, err := ethcrypto.SigToPub(hash[:], sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	return ethcrypto.PubkeyToAddress(*pub), nil
}

// VerifySignature checks that sig over hash was produced by addr.
func VerifySignature(hash common.Hash, sig []byte, addr common.Address) bool {
	signer, err := RecoverAddress(hash, sig)
	if err != nil {
		return false
	}

	return signer == addr
}
