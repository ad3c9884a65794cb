package tx

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/chains/thor/crypto"
)

// Transaction is an immutable body plus an optional signature. Signing returns a new value.
type Transaction struct {
	body Body
	sig  []byte
}

// NewTransaction validates body and returns an unsigned transaction holding a copy of it.
func NewTransaction(body *Body) (*Transaction, error) {
	return newTransaction(body, nil)
}

func newTransaction(body *Body, sig []byte) (*Transaction, error) {
	if err := ValidateBody(body); err != nil {
		return nil, err
	}

	return &Transaction{body: body.copy(), sig: copyBytes(sig)}, nil
}

// Body returns a copy of the transaction body.
func (t *Transaction) Body() Body {
	return t.body.copy()
}

// Signature returns a copy of the raw signature, nil when unsigned.
func (t *Transaction) Signature() []byte {
	return copyBytes(t.sig)
}

func (t *Transaction) Type() TxType {
	return t.body.Type
}

func (t *Transaction) ChainTag() uint8 {
	return t.body.ChainTag
}

func (t *Transaction) BlockRef() []byte {
	return copyBytes(t.body.BlockRef)
}

func (t *Transaction) Expiration() uint32 {
	return t.body.Expiration
}

func (t *Transaction) Gas() uint64 {
	return t.body.Gas
}

func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

func (t *Transaction) DependsOn() []byte {
	return copyBytes(t.body.DependsOn)
}

func (t *Transaction) Clauses() []Clause {
	return t.Body().Clauses
}

func (t *Transaction) MaxFeePerGas() *big.Int {
	return t.Body().MaxFeePerGas
}

func (t *Transaction) MaxPriorityFeePerGas() *big.Int {
	return t.Body().MaxPriorityFeePerGas
}

func (t *Transaction) IsDelegated() bool {
	return t.body.IsDelegated()
}

// IsSigned is true when the signature holds exactly one slice (plain) or exactly two slices
// (delegated).
func (t *Transaction) IsSigned() bool {
	want := crypto.SignatureLength
	if t.IsDelegated() {
		want *= 2
	}

	return len(t.sig) == want
}

// IntrinsicGas returns the minimum gas the transaction clauses require.
func (t *Transaction) IntrinsicGas() (uint64, error) {
	return IntrinsicGas(t.body.Clauses...)
}

// Value returns the sum of the clause values.
func (t *Transaction) Value() *big.Int {
	total := new(big.Int)
	for _, c := range t.body.Clauses {
		total.Add(total, c.Value)
	}

	return total
}

// EncodeUnsigned returns the wire bytes without the signature field.
func (t *Transaction) EncodeUnsigned() ([]byte, error) {
	return encode(&t.body, nil, false)
}

// EncodeSigned returns the wire bytes including the signature field, which may be empty or
// partial.
func (t *Transaction) EncodeSigned() ([]byte, error) {
	return encode(&t.body, t.sig, true)
}

// Encoded returns the bytes to hand to a node: the signed layout when the transaction is fully
// signed, the unsigned one otherwise.
func (t *Transaction) Encoded() ([]byte, error) {
	if t.IsSigned() {
		return t.EncodeSigned()
	}

	return t.EncodeUnsigned()
}

// To returns the destination of the first clause, if any.
func (t *Transaction) To() *common.Address {
	if len(t.body.Clauses) == 0 || t.body.Clauses[0].To == nil {
		return nil
	}

	to := *t.body.Clauses[0].To
	return &to
}
