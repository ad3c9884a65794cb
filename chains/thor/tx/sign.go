package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/chains/thor/crypto"
)

func checkKey(key []byte, field string) error {
	if !crypto.IsValidPrivateKey(key) {
		return newError(InvalidSecp256k1PrivateKey, field, "invalid private key")
	}

	return nil
}

// Sign signs a non delegated transaction with the sender key.
func (t *Transaction) Sign(senderKey []byte) (*Transaction, error) {
	if err := checkKey(senderKey, "senderKey"); err != nil {
		return nil, err
	}

	if t.IsDelegated() {
		return nil, fieldError("reserved", "transaction is delegated, use SignAsSender and SignAsGasPayer")
	}

	sig, err := t.senderSignature(senderKey)
	if err != nil {
		return nil, err
	}

	return t.withSig(sig), nil
}

// SignAsSender adds the sender slice to a delegated transaction. The result is not yet signed
// in the IsSigned sense; the gas payer has to sign it next.
func (t *Transaction) SignAsSender(senderKey []byte) (*Transaction, error) {
	if err := checkKey(senderKey, "senderKey"); err != nil {
		return nil, err
	}

	if !t.IsDelegated() {
		return nil, newError(NotDelegatedTransaction, "reserved", "transaction is not delegated")
	}

	sig, err := t.senderSignature(senderKey)
	if err != nil {
		return nil, err
	}

	return t.withSig(sig), nil
}

// SignAsGasPayer appends the gas payer slice for sender to a sender signed transaction. Any
// previous gas payer slice is replaced.
func (t *Transaction) SignAsGasPayer(sender common.Address, gasPayerKey []byte) (*Transaction, error) {
	if err := checkKey(gasPayerKey, "gasPayerKey"); err != nil {
		return nil, err
	}

	if !t.IsDelegated() {
		return nil, newError(NotDelegatedTransaction, "reserved", "transaction is not delegated")
	}

	if len(t.sig) < crypto.SignatureLength {
		return nil, fieldError("signature", "sender signature missing, use SignAsSender first")
	}

	payerSig, err := t.gasPayerSignature(sender, gasPayerKey)
	if err != nil {
		return nil, err
	}

	return t.withSig(joinSigs(t.sig[:crypto.SignatureLength], payerSig)), nil
}

// SignAsSenderAndGasPayer produces a fully signed delegated transaction in one call.
func (t *Transaction) SignAsSenderAndGasPayer(senderKey, gasPayerKey []byte) (*Transaction, error) {
	if err := checkKey(gasPayerKey, "gasPayerKey"); err != nil {
		return nil, err
	}
	if err := checkKey(senderKey, "senderKey"); err != nil {
		return nil, err
	}

	if !t.IsDelegated() {
		return nil, newError(NotDelegatedTransaction, "reserved", "transaction is not delegated")
	}

	senderSig, err := t.senderSignature(senderKey)
	if err != nil {
		return nil, err
	}

	sender, err := crypto.AddressFromKey(senderKey)
	if err != nil {
		return nil, newError(InvalidSecp256k1PrivateKey, "senderKey", err.Error())
	}

	payerSig, err := t.gasPayerSignature(sender, gasPayerKey)
	if err != nil {
		return nil, err
	}

	return t.withSig(joinSigs(senderSig, payerSig)), nil
}

// WithSignature returns a copy of the transaction carrying sig. The length is not checked;
// IsSigned tells whether it is complete.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	return t.withSig(sig)
}

// WithGasPayerSignature attaches a gas payer slice produced elsewhere to a sender signed
// delegated transaction.
func (t *Transaction) WithGasPayerSignature(payerSig []byte) (*Transaction, error) {
	if !t.IsDelegated() {
		return nil, newError(NotDelegatedTransaction, "reserved", "transaction is not delegated")
	}

	if len(t.sig) < crypto.SignatureLength {
		return nil, fieldError("signature", "sender signature missing, use SignAsSender first")
	}

	if len(payerSig) != crypto.SignatureLength {
		return nil, fieldError("signature", fmt.Sprintf("gas payer signature must be %d bytes, got %d", crypto.SignatureLength, len(payerSig)))
	}

	return t.withSig(joinSigs(t.sig[:crypto.SignatureLength], payerSig)), nil
}

func (t *Transaction) senderSignature(key []byte) ([]byte, error) {
	h, err := t.SigningHash()
	if err != nil {
		return nil, err
	}

	return signHash(h, key, "senderKey")
}

func (t *Transaction) gasPayerSignature(sender common.Address, key []byte) ([]byte, error) {
	h, err := t.DelegatorSigningHash(sender)
	if err != nil {
		return nil, err
	}

	return signHash(h, key, "gasPayerKey")
}

func signHash(h common.Hash, key []byte, field string) ([]byte, error) {
	sig, err := crypto.Sign(h, key)
	if err != nil {
		return nil, &Error{Kind: InvalidSecp256k1PrivateKey, Field: field, Msg: "signing failed", Err: err}
	}

	return sig, nil
}

func (t *Transaction) withSig(sig []byte) *Transaction {
	return &Transaction{body: t.body.copy(), sig: copyBytes(sig)}
}

func joinSigs(sender, payer []byte) []byte {
	out := make([]byte, 0, len(sender)+len(payer))
	out = append(out, sender...)
	return append(out, payer...)
}
