package tx

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/chains/thor/crypto"
)

// SigningHash is the hash the sender signs: blake2b-256 of the unsigned encoding.
func (t *Transaction) SigningHash() (common.Hash, error) {
	enc, err := t.EncodeUnsigned()
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Blake2b256(enc), nil
}

// DelegatorSigningHash is the hash a gas payer signs for the given sender. Binding the sender
// address keeps a gas payer signature from being reused with another sender.
func (t *Transaction) DelegatorSigningHash(sender common.Address) (common.Hash, error) {
	h, err := t.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Blake2b256(h[:], sender[:]), nil
}

// Origin recovers the sender from the first signature slice.
func (t *Transaction) Origin() (common.Address, error) {
	if len(t.sig) < crypto.SignatureLength {
		return common.Address{}, newError(UnavailableTransactionField, "origin", "transaction is not signed")
	}

	h, err := t.SigningHash()
	if err != nil {
		return common.Address{}, err
	}

	addr, err := crypto.RecoverAddress(h, t.sig[:crypto.SignatureLength])
	if err != nil {
		return common.Address{}, &Error{Kind: InvalidTransactionField, Field: "signature", Msg: "cannot recover origin", Err: err}
	}

	return addr, nil
}

// GasPayer recovers the gas payer from the second signature slice of a delegated transaction.
func (t *Transaction) GasPayer() (common.Address, error) {
	if !t.IsDelegated() {
		return common.Address{}, newError(NotDelegatedTransaction, "gasPayer", "transaction is not delegated")
	}

	if len(t.sig) < 2*crypto.SignatureLength {
		return common.Address{}, newError(UnavailableTransactionField, "gasPayer", "gas payer signature missing")
	}

	origin, err := t.Origin()
	if err != nil {
		return common.Address{}, err
	}

	h, err := t.DelegatorSigningHash(origin)
	if err != nil {
		return common.Address{}, err
	}

	addr, err := crypto.RecoverAddress(h, t.sig[crypto.SignatureLength:2*crypto.SignatureLength])
	if err != nil {
		return common.Address{}, &Error{Kind: InvalidTransactionField, Field: "signature", Msg: "cannot recover gas payer", Err: err}
	}

	return addr, nil
}

// ID is the transaction id: blake2b-256 of the signing hash followed by the origin address.
func (t *Transaction) ID() (common.Hash, error) {
	if !t.IsSigned() {
		return common.Hash{}, newError(UnavailableTransactionField, "id", "transaction is not signed")
	}

	h, err := t.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}

	origin, err := t.Origin()
	if err != nil {
		return common.Hash{}, err
	}

	return crypto.Blake2b256(h[:], origin[:]), nil
}
