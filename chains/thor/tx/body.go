package tx

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type TxType byte

const (
	// TypeLegacy transactions carry a gas price coefficient and no type prefix on the wire.
	TypeLegacy TxType = 0x00

	// TypeDynamicFee transactions carry max fee / max priority fee and are prefixed by 0x51.
	TypeDynamicFee TxType = 0x51
)

const (
	BlockRefLength  = 8
	DependsOnLength = common.HashLength

	// MaxFeeBytes is the width of fee and value fields.
	MaxFeeBytes = 32
)

func (t TxType) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeDynamicFee:
		return "dynamic-fee"
	}

	return fmt.Sprintf("0x%02x", byte(t))
}

// Clause is one action of a transaction. A nil To creates a contract.
type Clause struct {
	To    *common.Address
	Value *big.Int
	Data  []byte
}

func (c Clause) copy() Clause {
	cpy := Clause{Data: copyBytes(c.Data)}
	if c.To != nil {
		to := *c.To
		cpy.To = &to
	}
	if c.Value != nil {
		cpy.Value = new(big.Int).Set(c.Value)
	}

	return cpy
}

// Body is the signer independent payload of a transaction.
type Body struct {
	Type       TxType
	ChainTag   uint8
	BlockRef   []byte
	Expiration uint32
	Clauses    []Clause

	// GasPriceCoef is used by legacy transactions only.
	GasPriceCoef uint8

	// Fee caps of dynamic fee transactions.
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int

	Gas       uint64
	DependsOn []byte
	Nonce     uint64
	Reserved  *Reserved
}

func (b *Body) copy() Body {
	cpy := Body{
		Type:         b.Type,
		ChainTag:     b.ChainTag,
		BlockRef:     copyBytes(b.BlockRef),
		Expiration:   b.Expiration,
		GasPriceCoef: b.GasPriceCoef,
		Gas:          b.Gas,
		DependsOn:    copyBytes(b.DependsOn),
		Nonce:        b.Nonce,
		Reserved:     b.Reserved.copy(),
	}
	if len(b.Clauses) > 0 {
		cpy.Clauses = make([]Clause, len(b.Clauses))
		for i, c := range b.Clauses {
			cpy.Clauses[i] = c.copy()
		}
	}
	if b.MaxFeePerGas != nil {
		cpy.MaxFeePerGas = new(big.Int).Set(b.MaxFeePerGas)
	}
	if b.MaxPriorityFeePerGas != nil {
		cpy.MaxPriorityFeePerGas = new(big.Int).Set(b.MaxPriorityFeePerGas)
	}

	return cpy
}

// IsDelegated reports whether the body asks for a gas payer.
func (b *Body) IsDelegated() bool {
	return b.Reserved.IsDelegated()
}

// ValidateBody checks that every field of the body is present and encodable. It is run by
// NewTransaction and Decode, so any *Transaction holds a valid body.
func ValidateBody(b *Body) error {
	if b == nil {
		return fieldError("body", "missing")
	}

	if b.Type != TypeLegacy && b.Type != TypeDynamicFee {
		return &Error{Kind: InvalidTransactionField, Field: "type", Msg: "unsupported transaction type", Value: b.Type.String()}
	}

	if len(b.BlockRef) != BlockRefLength {
		return fieldError("blockRef", fmt.Sprintf("expected %d bytes, got %d", BlockRefLength, len(b.BlockRef)))
	}

	if len(b.DependsOn) != 0 && len(b.DependsOn) != DependsOnLength {
		return fieldError("dependsOn", fmt.Sprintf("expected %d bytes, got %d", DependsOnLength, len(b.DependsOn)))
	}

	for i, c := range b.Clauses {
		if err := validateAmount(c.Value, fmt.Sprintf("clauses.#%d.value", i)); err != nil {
			return err
		}
	}

	switch b.Type {
	case TypeDynamicFee:
		if b.GasPriceCoef != 0 {
			return fieldError("gasPriceCoef", "not allowed on dynamic fee transactions")
		}
		if err := validateAmount(b.MaxFeePerGas, "maxFeePerGas"); err != nil {
			return err
		}
		if err := validateAmount(b.MaxPriorityFeePerGas, "maxPriorityFeePerGas"); err != nil {
			return err
		}

	case TypeLegacy:
		if b.MaxFeePerGas != nil || b.MaxPriorityFeePerGas != nil {
			return fieldError("maxFeePerGas", "not allowed on legacy transactions")
		}
	}

	return nil
}

func validateAmount(v *big.Int, field string) error {
	if v == nil {
		return fieldError(field, "missing")
	}

	if v.Sign() < 0 {
		return &Error{Kind: InvalidTransactionField, Field: field, Msg: "negative", Value: v.String()}
	}

	if v.BitLen() > 8*MaxFeeBytes {
		return &Error{Kind: InvalidTransactionField, Field: field, Msg: "exceeds 256 bits", Value: v.String()}
	}

	return nil
}

// NewBlockRef returns a block reference carrying only the block number.
func NewBlockRef(blockNumber uint32) []byte {
	ref := make([]byte, BlockRefLength)
	binary.BigEndian.PutUint32(ref, blockNumber)
	return ref
}

// BlockRefFromID returns the block reference of a block, i.e. the first 8 bytes of its id.
func BlockRefFromID(id common.Hash) []byte {
	return copyBytes(id[:BlockRefLength])
}

// BlockRefNumber returns the block number encoded in a block reference.
func BlockRefNumber(ref []byte) uint32 {
	if len(ref) < 4 {
		return 0
	}

	return binary.BigEndian.Uint32(ref)
}
