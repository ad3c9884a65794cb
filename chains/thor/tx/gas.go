package tx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

const (
	TxGas                     uint64 = 5000
	ClauseGas                 uint64 = 16000
	ClauseGasContractCreation uint64 = 48000
	ZeroGasData               uint64 = 4
	NonZeroGasData            uint64 = 68
)

var nameServiceRe = regexp.MustCompile(`^([a-z0-9-]+\.)+[a-z0-9-]+$`)

// IntrinsicGas returns the minimum gas a transaction with the given clauses must declare. An
// empty clause list is charged like a single transfer.
func IntrinsicGas(clauses ...Clause) (uint64, error) {
	if len(clauses) == 0 {
		return TxGas + ClauseGas, nil
	}

	total := TxGas
	for i, c := range clauses {
		cost := ClauseGas
		if c.To == nil {
			cost = ClauseGasContractCreation
		}

		dataCost, err := dataGas(c.Data, fmt.Sprintf("clauses.#%d.data", i))
		if err != nil {
			return 0, err
		}

		var overflow bool
		if cost, overflow = math.SafeAdd(cost, dataCost); overflow {
			return 0, gasOverflow()
		}
		if total, overflow = math.SafeAdd(total, cost); overflow {
			return 0, gasOverflow()
		}
	}

	return total, nil
}

func dataGas(data []byte, field string) (uint64, error) {
	var zeros uint64
	for _, b := range data {
		if b == 0 {
			zeros++
		}
	}
	nonZeros := uint64(len(data)) - zeros

	zeroCost, overflow := math.SafeMul(zeros, ZeroGasData)
	if overflow {
		return 0, gasOverflow()
	}
	nonZeroCost, overflow := math.SafeMul(nonZeros, NonZeroGasData)
	if overflow {
		return 0, gasOverflow()
	}
	cost, overflow := math.SafeAdd(zeroCost, nonZeroCost)
	if overflow {
		return 0, gasOverflow()
	}

	return cost, nil
}

func gasOverflow() error {
	return dataTypeError("gas", "intrinsic gas overflows uint64")
}

// RawClause is a clause as found in JSON requests: To is a hex address, a name service name
// (e.g. "alice.vet") or nil for contract creation, Data is 0x prefixed hex.
type RawClause struct {
	To    *string `json:"to"`
	Value string  `json:"value"`
	Data  string  `json:"data"`
}

// IntrinsicGasOf validates raw clauses and returns their intrinsic gas. Name service
// destinations cost like any other call.
func IntrinsicGasOf(clauses []RawClause) (uint64, error) {
	parsed := make([]Clause, 0, len(clauses))
	for i, rc := range clauses {
		ctx := fmt.Sprintf("clauses.#%d", i)
		if rc.To != nil && !isAddressOrName(*rc.To) {
			return 0, &Error{Kind: InvalidDataType, Field: joinCtx(ctx, "to"), Msg: "invalid address", Value: *rc.To}
		}

		data, err := decodeData(rc.Data, joinCtx(ctx, "data"))
		if err != nil {
			return 0, err
		}

		c := Clause{Data: data}
		if rc.To != nil {
			// Only the presence of a destination matters for gas.
			c.To = &common.Address{}
		}
		parsed = append(parsed, c)
	}

	return IntrinsicGas(parsed...)
}

// Clause converts a raw clause whose To is a hex address. Name service names have to be
// resolved by the caller first.
func (rc RawClause) Clause() (Clause, error) {
	c := Clause{}
	if rc.To != nil {
		if !common.IsHexAddress(*rc.To) {
			return c, &Error{Kind: InvalidDataType, Field: "to", Msg: "invalid address", Value: *rc.To}
		}
		to := common.HexToAddress(*rc.To)
		c.To = &to
	}

	value, err := parseAmount(rc.Value, "value")
	if err != nil {
		return c, err
	}
	c.Value = value

	if c.Data, err = decodeData(rc.Data, "data"); err != nil {
		return c, err
	}

	return c, nil
}

func isAddressOrName(s string) bool {
	if common.IsHexAddress(s) {
		return true
	}

	return !strings.HasPrefix(s, "0x") && nameServiceRe.MatchString(strings.ToLower(s))
}

func decodeData(s, field string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, &Error{Kind: InvalidDataType, Field: field, Msg: "invalid hex", Value: s, Err: err}
	}

	return copyBytes(b), nil
}
