package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"
)

// Blake2b256 returns the 256-bit BLAKE2b digest of the concatenation of parts.
func Blake2b256(parts ...[]byte) common.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only fails for keys longer than 64 bytes.
		panic(err)
	}

	for _, p := range parts {
		h.Write(p)
	}

	var out common.Hash
	h.Sum(out[:0])
	return out
}
