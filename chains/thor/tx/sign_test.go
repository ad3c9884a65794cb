package tx

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/chains/thor/crypto"
	"github.com/stretchr/testify/require"
)

func mustAddress(t *testing.T, key []byte) common.Address {
	addr, err := crypto.AddressFromKey(key)
	require.Nil(t, err)
	return addr
}

func TestSign(t *testing.T) {
	for _, txType := range []TxType{TypeLegacy, TypeDynamicFee} {
		tx := getTestTx(t, txType, false)

		signed, err := tx.Sign(senderKey)
		require.Nil(t, err)
		require.True(t, signed.IsSigned())
		require.Len(t, signed.Signature(), crypto.SignatureLength)

		origin, err := signed.Origin()
		require.Nil(t, err)
		require.Equal(t, mustAddress(t, senderKey), origin)

		hash, err := signed.SigningHash()
		require.Nil(t, err)
		id, err := signed.ID()
		require.Nil(t, err)
		require.Equal(t, crypto.Blake2b256(hash[:], origin[:]), id)

		_, err = signed.GasPayer()
		require.ErrorIs(t, err, ErrNotDelegatedTransaction)
	}
}

func TestSign_Errors(t *testing.T) {
	plain := getTestTx(t, TypeDynamicFee, false)
	delegated := getTestTx(t, TypeDynamicFee, true)
	badKey := bytes.Repeat([]byte{0xff}, 32)

	_, err := plain.Sign(badKey)
	require.ErrorIs(t, err, ErrInvalidSecp256k1PrivateKey)

	_, err = plain.Sign(senderKey[:31])
	require.ErrorIs(t, err, ErrInvalidSecp256k1PrivateKey)

	_, err = delegated.Sign(senderKey)
	require.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = plain.SignAsSender(senderKey)
	require.ErrorIs(t, err, ErrNotDelegatedTransaction)

	_, err = plain.SignAsGasPayer(mustAddress(t, senderKey), payerKey)
	require.ErrorIs(t, err, ErrNotDelegatedTransaction)

	_, err = plain.SignAsSenderAndGasPayer(senderKey, payerKey)
	require.ErrorIs(t, err, ErrNotDelegatedTransaction)

	// Gas payer needs the sender slice first.
	_, err = delegated.SignAsGasPayer(mustAddress(t, senderKey), payerKey)
	require.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = delegated.SignAsGasPayer(mustAddress(t, senderKey), badKey)
	require.ErrorIs(t, err, ErrInvalidSecp256k1PrivateKey)

	// The gas payer key is checked first.
	_, err = delegated.SignAsSenderAndGasPayer(badKey, badKey)
	var txErr *Error
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, InvalidSecp256k1PrivateKey, txErr.Kind)
	require.Equal(t, "gasPayerKey", txErr.Field)

	_, err = delegated.SignAsSenderAndGasPayer(badKey, payerKey)
	require.ErrorAs(t, err, &txErr)
	require.Equal(t, "senderKey", txErr.Field)
}

func TestSign_Delegated(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)
	sender := mustAddress(t, senderKey)

	senderSigned, err := tx.SignAsSender(senderKey)
	require.Nil(t, err)
	require.False(t, senderSigned.IsSigned())
	require.Len(t, senderSigned.Signature(), crypto.SignatureLength)

	origin, err := senderSigned.Origin()
	require.Nil(t, err)
	require.Equal(t, sender, origin)

	_, err = senderSigned.GasPayer()
	require.ErrorIs(t, err, ErrUnavailableTransactionField)
	_, err = senderSigned.ID()
	require.ErrorIs(t, err, ErrUnavailableTransactionField)

	full, err := senderSigned.SignAsGasPayer(sender, payerKey)
	require.Nil(t, err)
	require.True(t, full.IsSigned())
	require.Len(t, full.Signature(), 2*crypto.SignatureLength)

	payer, err := full.GasPayer()
	require.Nil(t, err)
	require.Equal(t, mustAddress(t, payerKey), payer)

	origin, err = full.Origin()
	require.Nil(t, err)
	require.Equal(t, sender, origin)

	// Two steps and one step give the same transaction.
	oneStep, err := tx.SignAsSenderAndGasPayer(senderKey, payerKey)
	require.Nil(t, err)
	require.Equal(t, full.Signature(), oneStep.Signature())

	enc1, err := full.Encoded()
	require.Nil(t, err)
	enc2, err := oneStep.Encoded()
	require.Nil(t, err)
	require.Equal(t, enc1, enc2)

	id1, err := full.ID()
	require.Nil(t, err)
	id2, err := oneStep.ID()
	require.Nil(t, err)
	require.Equal(t, id1, id2)

	// The gas payer signature is not part of the id.
	plainHash, err := tx.SigningHash()
	require.Nil(t, err)
	require.Equal(t, crypto.Blake2b256(plainHash[:], sender[:]), id1)
}

func TestSign_ReplaceGasPayer(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)
	sender := mustAddress(t, senderKey)

	full, err := tx.SignAsSenderAndGasPayer(senderKey, payerKey)
	require.Nil(t, err)

	replaced, err := full.SignAsGasPayer(sender, otherKey)
	require.Nil(t, err)
	require.Len(t, replaced.Signature(), 2*crypto.SignatureLength)
	require.Equal(t, full.Signature()[:crypto.SignatureLength], replaced.Signature()[:crypto.SignatureLength])

	payer, err := replaced.GasPayer()
	require.Nil(t, err)
	require.Equal(t, mustAddress(t, otherKey), payer)

	// Anything after the sender slice is dropped.
	garbage := append(full.Signature()[:crypto.SignatureLength], bytes.Repeat([]byte{0xab}, 100)...)
	resigned, err := tx.WithSignature(garbage).SignAsGasPayer(sender, payerKey)
	require.Nil(t, err)
	require.Equal(t, full.Signature(), resigned.Signature())
}

func TestSign_WithGasPayerSignature(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)
	sender := mustAddress(t, senderKey)

	senderSigned, err := tx.SignAsSender(senderKey)
	require.Nil(t, err)

	hash, err := senderSigned.DelegatorSigningHash(sender)
	require.Nil(t, err)
	payerSig, err := crypto.Sign(hash, payerKey)
	require.Nil(t, err)

	full, err := senderSigned.WithGasPayerSignature(payerSig)
	require.Nil(t, err)
	require.True(t, full.IsSigned())

	payer, err := full.GasPayer()
	require.Nil(t, err)
	require.Equal(t, mustAddress(t, payerKey), payer)

	_, err = senderSigned.WithGasPayerSignature(payerSig[:64])
	require.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = tx.WithGasPayerSignature(payerSig)
	require.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = getTestTx(t, TypeDynamicFee, false).WithGasPayerSignature(payerSig)
	require.ErrorIs(t, err, ErrNotDelegatedTransaction)
}

func TestIsSigned_SignatureLength(t *testing.T) {
	plain := getTestTx(t, TypeDynamicFee, false)
	delegated := getTestTx(t, TypeDynamicFee, true)

	for _, n := range []int{0, 1, 64, 65, 66, 129, 130, 131, 195} {
		sig := make([]byte, n)
		require.Equal(t, n == 65, plain.WithSignature(sig).IsSigned(), "plain, %d bytes", n)
		require.Equal(t, n == 130, delegated.WithSignature(sig).IsSigned(), "delegated, %d bytes", n)
	}
}

func TestUnsignedAccessors(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)

	_, err := tx.Origin()
	require.ErrorIs(t, err, ErrUnavailableTransactionField)

	_, err = tx.ID()
	require.ErrorIs(t, err, ErrUnavailableTransactionField)

	_, err = tx.GasPayer()
	require.ErrorIs(t, err, ErrUnavailableTransactionField)

	_, err = getTestTx(t, TypeDynamicFee, false).GasPayer()
	require.ErrorIs(t, err, ErrNotDelegatedTransaction)
}

func TestDelegatorSigningHash(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)
	addrA := common.HexToAddress("0x000000000000000000000000000000000000000a")
	addrB := common.HexToAddress("0x000000000000000000000000000000000000000b")

	plain, err := tx.SigningHash()
	require.Nil(t, err)
	hashA, err := tx.DelegatorSigningHash(addrA)
	require.Nil(t, err)
	hashB, err := tx.DelegatorSigningHash(addrB)
	require.Nil(t, err)

	require.NotEqual(t, hashA, hashB)
	require.NotEqual(t, plain, hashA)
	require.NotEqual(t, plain, hashB)
	require.Equal(t, crypto.Blake2b256(plain[:], addrA[:]), hashA)

	// A gas payer signature made for one sender does not recover the payer for another one.
	senderSigned, err := tx.SignAsSender(senderKey)
	require.Nil(t, err)
	wrong, err := senderSigned.SignAsGasPayer(mustAddress(t, otherKey), payerKey)
	require.Nil(t, err)

	payer, err := wrong.GasPayer()
	require.Nil(t, err)
	require.NotEqual(t, mustAddress(t, payerKey), payer)
}
