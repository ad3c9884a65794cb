package tx

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

type jsonClause struct {
	To    *common.Address `json:"to"`
	Value *hexutil.Big    `json:"value"`
	Data  hexutil.Bytes   `json:"data"`
}

type jsonTx struct {
	ID                   *common.Hash    `json:"id"`
	Type                 uint8           `json:"type"`
	Origin               *common.Address `json:"origin"`
	GasPayer             *common.Address `json:"gasPayer"`
	Size                 int             `json:"size"`
	ChainTag             uint8           `json:"chainTag"`
	BlockRef             hexutil.Bytes   `json:"blockRef"`
	Expiration           uint32          `json:"expiration"`
	Clauses              []jsonClause    `json:"clauses"`
	GasPriceCoef         *uint8          `json:"gasPriceCoef,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	Gas                  uint64          `json:"gas"`
	DependsOn            *common.Hash    `json:"dependsOn"`
	Nonce                hexutil.Uint64  `json:"nonce"`
	Delegated            bool            `json:"delegated"`
}

// MarshalJSON renders the transaction the way a node reports it. Derived fields that are not
// available yet (id, origin, gasPayer) are null.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	enc, err := t.Encoded()
	if err != nil {
		return nil, err
	}

	out := jsonTx{
		Type:       uint8(t.body.Type),
		Size:       len(enc),
		ChainTag:   t.body.ChainTag,
		BlockRef:   t.body.BlockRef,
		Expiration: t.body.Expiration,
		Clauses:    make([]jsonClause, 0, len(t.body.Clauses)),
		Gas:        t.body.Gas,
		Nonce:      hexutil.Uint64(t.body.Nonce),
		Delegated:  t.IsDelegated(),
	}

	for _, c := range t.body.Clauses {
		out.Clauses = append(out.Clauses, jsonClause{
			To:    c.To,
			Value: (*hexutil.Big)(c.Value),
			Data:  c.Data,
		})
	}

	switch t.body.Type {
	case TypeLegacy:
		coef := t.body.GasPriceCoef
		out.GasPriceCoef = &coef
	case TypeDynamicFee:
		out.MaxFeePerGas = (*hexutil.Big)(t.body.MaxFeePerGas)
		out.MaxPriorityFeePerGas = (*hexutil.Big)(t.body.MaxPriorityFeePerGas)
	}

	if len(t.body.DependsOn) == DependsOnLength {
		h := common.BytesToHash(t.body.DependsOn)
		out.DependsOn = &h
	}

	if t.IsSigned() {
		id, err := t.ID()
		if err != nil {
			return nil, err
		}
		origin, err := t.Origin()
		if err != nil {
			return nil, err
		}
		out.ID = &id
		out.Origin = &origin

		if t.IsDelegated() {
			payer, err := t.GasPayer()
			if err != nil {
				return nil, err
			}
			out.GasPayer = &payer
		}
	}

	return json.Marshal(out)
}

func parseAmount(s, field string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok || v.Sign() < 0 {
		return nil, &Error{Kind: InvalidDataType, Field: field, Msg: "invalid amount", Value: s}
	}

	return v, nil
}
