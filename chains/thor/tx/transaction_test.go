package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

var (
	testTo   = common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	testData = hexutil.MustDecode("0x000000606060")

	senderKey = hexutil.MustDecode("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	payerKey  = hexutil.MustDecode("0x8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f")
	otherKey  = hexutil.MustDecode("0x1111111111111111111111111111111111111111111111111111111111111111")
)

func getTestBody(txType TxType, delegated bool) *Body {
	to := testTo
	body := &Body{
		Type:       txType,
		ChainTag:   1,
		BlockRef:   hexutil.MustDecode("0x00000000aabbccdd"),
		Expiration: 32,
		Clauses: []Clause{
			{To: &to, Value: big.NewInt(10000), Data: testData},
			{To: &to, Value: big.NewInt(20000), Data: testData},
		},
		Gas:   21000,
		Nonce: 12345678,
	}

	switch txType {
	case TypeLegacy:
		body.GasPriceCoef = 128
	case TypeDynamicFee:
		body.MaxPriorityFeePerGas = big.NewInt(10_000_000_000_000)
		body.MaxFeePerGas = big.NewInt(20_000_000_000_000)
	}

	if delegated {
		body.Reserved = &Reserved{Features: DelegationFeature}
	}

	return body
}

func getTestTx(t *testing.T, txType TxType, delegated bool) *Transaction {
	tx, err := NewTransaction(getTestBody(txType, delegated))
	require.Nil(t, err)
	return tx
}

func requireBodyEqual(t *testing.T, expected, actual Body) {
	require.Equal(t, expected.Type, actual.Type)
	require.Equal(t, expected.ChainTag, actual.ChainTag)
	require.Equal(t, expected.BlockRef, actual.BlockRef)
	require.Equal(t, expected.Expiration, actual.Expiration)
	require.Equal(t, expected.GasPriceCoef, actual.GasPriceCoef)
	requireBigEqual(t, expected.MaxFeePerGas, actual.MaxFeePerGas)
	requireBigEqual(t, expected.MaxPriorityFeePerGas, actual.MaxPriorityFeePerGas)
	require.Equal(t, expected.Gas, actual.Gas)
	require.Equal(t, expected.DependsOn, actual.DependsOn)
	require.Equal(t, expected.Nonce, actual.Nonce)
	require.Equal(t, expected.Reserved, actual.Reserved)

	require.Len(t, actual.Clauses, len(expected.Clauses))
	for i := range expected.Clauses {
		require.Equal(t, expected.Clauses[i].To, actual.Clauses[i].To)
		requireBigEqual(t, expected.Clauses[i].Value, actual.Clauses[i].Value)
		require.Equal(t, expected.Clauses[i].Data, actual.Clauses[i].Data)
	}
}

func requireBigEqual(t *testing.T, expected, actual *big.Int) {
	if expected == nil {
		require.Nil(t, actual)
		return
	}

	require.NotNil(t, actual)
	require.Zero(t, expected.Cmp(actual), "expected %s, got %s", expected, actual)
}

func TestNewTransaction_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(b *Body)
		field  string
	}{
		{"short block ref", func(b *Body) { b.BlockRef = b.BlockRef[:7] }, "blockRef"},
		{"missing block ref", func(b *Body) { b.BlockRef = nil }, "blockRef"},
		{"bad depends on", func(b *Body) { b.DependsOn = []byte{1, 2, 3} }, "dependsOn"},
		{"missing clause value", func(b *Body) { b.Clauses[1].Value = nil }, "clauses.#1.value"},
		{"negative clause value", func(b *Body) { b.Clauses[0].Value = big.NewInt(-1) }, "clauses.#0.value"},
		{"oversized clause value", func(b *Body) { b.Clauses[0].Value = new(big.Int).Lsh(big.NewInt(1), 256) }, "clauses.#0.value"},
		{"missing max fee", func(b *Body) { b.MaxFeePerGas = nil }, "maxFeePerGas"},
		{"missing priority fee", func(b *Body) { b.MaxPriorityFeePerGas = nil }, "maxPriorityFeePerGas"},
		{"coef on dynamic fee", func(b *Body) { b.GasPriceCoef = 1 }, "gasPriceCoef"},
		{"unknown type", func(b *Body) { b.Type = 0x02 }, "type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := getTestBody(TypeDynamicFee, false)
			tc.modify(body)

			_, err := NewTransaction(body)
			require.ErrorIs(t, err, ErrInvalidTransactionField)

			var txErr *Error
			require.ErrorAs(t, err, &txErr)
			require.Equal(t, tc.field, txErr.Field)
		})
	}

	body := getTestBody(TypeLegacy, false)
	body.MaxFeePerGas = big.NewInt(1)
	_, err := NewTransaction(body)
	require.ErrorIs(t, err, ErrInvalidTransactionField)

	_, err = NewTransaction(nil)
	require.ErrorIs(t, err, ErrInvalidTransactionField)
}

func TestTransaction_Immutable(t *testing.T) {
	body := getTestBody(TypeDynamicFee, false)
	tx, err := NewTransaction(body)
	require.Nil(t, err)

	// Changing the source body or a returned copy does not leak into the transaction.
	body.Clauses[0].Value.SetInt64(1)
	body.BlockRef[7] = 0
	got := tx.Body()
	got.Clauses[0].Data[0] = 0xff
	got.MaxFeePerGas.SetInt64(0)

	requireBodyEqual(t, *getTestBody(TypeDynamicFee, false), tx.Body())

	signed, err := tx.Sign(senderKey)
	require.Nil(t, err)
	require.False(t, tx.IsSigned())
	require.Nil(t, tx.Signature())
	require.True(t, signed.IsSigned())

	sig := signed.Signature()
	sig[0] ^= 0xff
	require.NotEqual(t, sig, signed.Signature())
}

func TestTransaction_Accessors(t *testing.T) {
	tx := getTestTx(t, TypeDynamicFee, true)

	require.Equal(t, TypeDynamicFee, tx.Type())
	require.Equal(t, uint8(1), tx.ChainTag())
	require.Equal(t, uint32(0xaabbccdd), BlockRefNumber(tx.BlockRef()))
	require.Equal(t, uint32(32), tx.Expiration())
	require.Equal(t, uint64(21000), tx.Gas())
	require.Equal(t, uint64(12345678), tx.Nonce())
	require.Nil(t, tx.DependsOn())
	require.Len(t, tx.Clauses(), 2)
	require.Equal(t, &testTo, tx.To())
	requireBigEqual(t, big.NewInt(30000), tx.Value())
	requireBigEqual(t, big.NewInt(20_000_000_000_000), tx.MaxFeePerGas())
	requireBigEqual(t, big.NewInt(10_000_000_000_000), tx.MaxPriorityFeePerGas())
	require.True(t, tx.IsDelegated())

	gas, err := tx.IntrinsicGas()
	require.Nil(t, err)
	require.Equal(t, uint64(37432), gas)
}

func TestBlockRef(t *testing.T) {
	ref := NewBlockRef(0xaabbccdd)
	require.Equal(t, hexutil.MustDecode("0xaabbccdd00000000"), ref)
	require.Equal(t, uint32(0xaabbccdd), BlockRefNumber(ref))

	id := common.HexToHash("0x0000000a11223344556677881122334455667788112233445566778811223344")
	require.Equal(t, hexutil.MustDecode("0x0000000a11223344"), BlockRefFromID(id))
	require.Equal(t, uint32(10), BlockRefNumber(BlockRefFromID(id)))
}
