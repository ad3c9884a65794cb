package crypto

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func TestBlake2b256(t *testing.T) {
	require.Equal(t,
		"0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		Blake2b256().Hex(),
	)
	require.Equal(t,
		"0x256c83b297114d201b30179f3f0ef0cace9783622da5974326b436178aeef610",
		Blake2b256([]byte("hello world")).Hex(),
	)

	// Parts are hashed as one concatenated message.
	require.Equal(t, Blake2b256([]byte("hello world")), Blake2b256([]byte("hello"), []byte(" "), []byte("world")))
}

func TestAddressFromKey(t *testing.T) {
	key := hexutil.MustDecode("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")

	addr, err := AddressFromKey(key)
	require.Nil(t, err)
	require.Equal(t, common.HexToAddress("0x2c7536E3605D9C16a7a3D7b1898e529396a65c23"), addr)
}

func TestParsePrivateKey(t *testing.T) {
	curveOrder := hexutil.MustDecode("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	invalid := [][]byte{
		nil,
		make([]byte, 31),
		make([]byte, 32),
		make([]byte, 33),
		curveOrder,
		bytes.Repeat([]byte{0xff}, 32),
	}
	for _, raw := range invalid {
		_, err := ParsePrivateKey(raw)
		require.ErrorIs(t, err, ErrInvalidPrivateKey)
		require.False(t, IsValidPrivateKey(raw))
	}

	key, err := GenerateKey()
	require.Nil(t, err)
	require.Len(t, key, PrivateKeyLength)
	require.True(t, IsValidPrivateKey(key))
}

func TestSignAndRecover(t *testing.T) {
	key, err := GenerateKey()
	require.Nil(t, err)
	addr, err := AddressFromKey(key)
	require.Nil(t, err)

	hash := Blake2b256([]byte("message"))
	sig, err := Sign(hash, key)
	require.Nil(t, err)
	require.Len(t, sig, SignatureLength)

	recovered, err := RecoverAddress(hash, sig)
	require.Nil(t, err)
	require.Equal(t, addr, recovered)
	require.True(t, VerifySignature(hash, sig, addr))

	// Another message recovers another key.
	require.False(t, VerifySignature(Blake2b256([]byte("other")), sig, addr))

	_, err = RecoverAddress(hash, sig[:64])
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = Sign(hash, make([]byte, 32))
	require.ErrorIs(t, err, ErrInvalidPrivateKey)
}
