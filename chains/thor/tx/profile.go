package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// wireTx is what the profiles serialize: a body plus the optional signature.
type wireTx struct {
	body Body
	sig  []byte
}

var clauseKind = StructKind[Clause]{Fields: []Field[Clause]{
	Bind[Clause, []byte]("to", NullableBlobKind{Bytes: common.AddressLength},
		func(c *Clause) []byte {
			if c.To == nil {
				return nil
			}
			return c.To.Bytes()
		},
		func(c *Clause, v []byte) {
			if v == nil {
				c.To = nil
				return
			}
			to := common.BytesToAddress(v)
			c.To = &to
		}),
	Bind[Clause, *big.Int]("value", NumericKind{MaxBytes: MaxFeeBytes},
		func(c *Clause) *big.Int { return c.Value },
		func(c *Clause, v *big.Int) { c.Value = v }),
	Bind[Clause, []byte]("data", BufferKind{},
		func(c *Clause) []byte { return c.Data },
		func(c *Clause, v []byte) { c.Data = v }),
}}

var (
	chainTagField = Bind[wireTx, uint64]("chainTag", UintKind{MaxBytes: 1},
		func(w *wireTx) uint64 { return uint64(w.body.ChainTag) },
		func(w *wireTx, v uint64) { w.body.ChainTag = uint8(v) })
	blockRefField = Bind[wireTx, []byte]("blockRef", CompactBlobKind{Bytes: BlockRefLength},
		func(w *wireTx) []byte { return w.body.BlockRef },
		func(w *wireTx, v []byte) { w.body.BlockRef = v })
	expirationField = Bind[wireTx, uint64]("expiration", UintKind{MaxBytes: 4},
		func(w *wireTx) uint64 { return uint64(w.body.Expiration) },
		func(w *wireTx, v uint64) { w.body.Expiration = uint32(v) })
	clausesField = Bind[wireTx, []Clause]("clauses", ListKind[Clause]{Item: clauseKind},
		func(w *wireTx) []Clause { return w.body.Clauses },
		func(w *wireTx, v []Clause) { w.body.Clauses = v })
	gasPriceCoefField = Bind[wireTx, uint64]("gasPriceCoef", UintKind{MaxBytes: 1},
		func(w *wireTx) uint64 { return uint64(w.body.GasPriceCoef) },
		func(w *wireTx, v uint64) { w.body.GasPriceCoef = uint8(v) })
	maxPriorityFeePerGasField = Bind[wireTx, *big.Int]("maxPriorityFeePerGas", NumericKind{MaxBytes: MaxFeeBytes},
		func(w *wireTx) *big.Int { return w.body.MaxPriorityFeePerGas },
		func(w *wireTx, v *big.Int) { w.body.MaxPriorityFeePerGas = v })
	maxFeePerGasField = Bind[wireTx, *big.Int]("maxFeePerGas", NumericKind{MaxBytes: MaxFeeBytes},
		func(w *wireTx) *big.Int { return w.body.MaxFeePerGas },
		func(w *wireTx, v *big.Int) { w.body.MaxFeePerGas = v })
	gasField = Bind[wireTx, uint64]("gas", UintKind{MaxBytes: 8},
		func(w *wireTx) uint64 { return w.body.Gas },
		func(w *wireTx, v uint64) { w.body.Gas = v })
	dependsOnField = Bind[wireTx, []byte]("dependsOn", NullableBlobKind{Bytes: DependsOnLength},
		func(w *wireTx) []byte { return w.body.DependsOn },
		func(w *wireTx, v []byte) { w.body.DependsOn = v })
	nonceField = Bind[wireTx, uint64]("nonce", UintKind{MaxBytes: 8},
		func(w *wireTx) uint64 { return w.body.Nonce },
		func(w *wireTx, v uint64) { w.body.Nonce = v })
	reservedField = Bind[wireTx, *Reserved]("reserved", ReservedKind{},
		func(w *wireTx) *Reserved { return w.body.Reserved },
		func(w *wireTx, v *Reserved) { w.body.Reserved = v })
	signatureField = Bind[wireTx, []byte]("signature", BufferKind{},
		func(w *wireTx) []byte { return w.sig },
		func(w *wireTx, v []byte) { w.sig = v })
)

// profile is the pair of wire layouts of one transaction type.
type profile struct {
	unsigned StructKind[wireTx]
	signed   StructKind[wireTx]
}

func newProfile(fields ...Field[wireTx]) *profile {
	unsigned := StructKind[wireTx]{Fields: fields}
	return &profile{
		unsigned: unsigned,
		signed:   unsigned.Extend(signatureField),
	}
}

var profiles = map[TxType]*profile{
	TypeDynamicFee: newProfile(
		chainTagField,
		blockRefField,
		expirationField,
		clausesField,
		maxPriorityFeePerGasField,
		maxFeePerGasField,
		gasField,
		dependsOnField,
		nonceField,
		reservedField,
	),
	TypeLegacy: newProfile(
		chainTagField,
		blockRefField,
		expirationField,
		clausesField,
		gasPriceCoefField,
		gasField,
		dependsOnField,
		nonceField,
		reservedField,
	),
}

func profileOf(t TxType) (*profile, error) {
	p, ok := profiles[t]
	if !ok {
		return nil, &Error{Kind: InvalidTransactionField, Field: "type", Msg: "unsupported transaction type", Value: t.String()}
	}

	return p, nil
}

// encode serializes body (and sig when signed is set) with the profile of the body type and
// prepends the type byte for typed transactions.
func encode(body *Body, sig []byte, signed bool) ([]byte, error) {
	p, err := profileOf(body.Type)
	if err != nil {
		return nil, err
	}

	kind := p.unsigned
	if signed {
		kind = p.signed
	}

	item, err := kind.Encode(wireTx{body: *body, sig: sig}, "")
	if err != nil {
		return nil, err
	}

	enc, err := rlp.EncodeToBytes(item)
	if err != nil {
		return nil, &Error{Kind: InvalidDataType, Field: "body", Msg: "rlp encoding failed", Err: err}
	}

	if body.Type == TypeLegacy {
		return enc, nil
	}

	return append([]byte{byte(body.Type)}, enc...), nil
}

// Decode parses raw wire bytes into a transaction. The first byte selects the layout: 0x51 is
// a dynamic fee transaction, an RLP list prefix is a legacy one. When signed is set the
// trailing signature field is expected.
func Decode(raw []byte, signed bool) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, fieldError("raw", "empty input")
	}

	txType := TypeLegacy
	payload := raw
	switch {
	case raw[0] == byte(TypeDynamicFee):
		txType = TypeDynamicFee
		payload = raw[1:]
	case raw[0] >= 0xc0:
		// RLP list, untyped.
	default:
		return nil, &Error{Kind: InvalidTransactionField, Field: "type", Msg: "unsupported transaction type", Value: fmt.Sprintf("0x%02x", raw[0])}
	}

	p, err := profileOf(txType)
	if err != nil {
		return nil, err
	}

	var item interface{}
	if err := rlp.DecodeBytes(payload, &item); err != nil {
		return nil, &Error{Kind: InvalidTransactionField, Field: "raw", Msg: "malformed rlp", Err: err}
	}

	kind := p.unsigned
	if signed {
		kind = p.signed
	}

	w, err := kind.Decode(item, "")
	if err != nil {
		return nil, err
	}
	w.body.Type = txType

	return newTransaction(&w.body, w.sig)
}
