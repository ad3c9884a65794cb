package server

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains/thor/crypto"
	"github.com/sisu-network/thortx/chains/thor/tx"
	"github.com/sisu-network/thortx/types"
)

// Processor is the part of the core processor the api exposes.
type Processor interface {
	DispatchTx(request *types.DispatchedTxRequest) *types.DispatchedTxResult
	SuggestFees() (*big.Int, *big.Int)
}

type Fees struct {
	MaxFeePerGas         *hexutil.Big `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *hexutil.Big `json:"maxPriorityFeePerGas"`
}

// ApiHandler serves the thortx namespace. It dispatches signed txs and acts as gas payer for
// delegated txs when a delegator key is configured.
type ApiHandler struct {
	chain        string
	chainTag     int
	processor    Processor
	delegatorKey []byte
}

// NewApi creates the handler. chainTag < 0 accepts txs of any chain.
func NewApi(chain string, chainTag int, processor Processor, delegatorKey []byte) (*ApiHandler, error) {
	if delegatorKey != nil && !crypto.IsValidPrivateKey(delegatorKey) {
		return nil, fmt.Errorf("invalid delegator key")
	}

	return &ApiHandler{
		chain:        chain,
		chainTag:     chainTag,
		processor:    processor,
		delegatorKey: delegatorKey,
	}, nil
}

// Empty function for checking health only.
func (api *ApiHandler) CheckHealth() {
}

func (api *ApiHandler) DispatchTx(raw hexutil.Bytes) *types.DispatchedTxResult {
	return api.processor.DispatchTx(&types.DispatchedTxRequest{
		Chain: api.chain,
		Tx:    raw,
	})
}

func (api *ApiHandler) SuggestFees() *Fees {
	maxFee, tip := api.processor.SuggestFees()
	return &Fees{
		MaxFeePerGas:         (*hexutil.Big)(maxFee),
		MaxPriorityFeePerGas: (*hexutil.Big)(tip),
	}
}

// SignAsGasPayer returns the gas payer signature of a delegated tx sent by origin. raw is the
// unsigned encoding of the tx.
func (api *ApiHandler) SignAsGasPayer(origin common.Address, raw hexutil.Bytes) (hexutil.Bytes, error) {
	if api.delegatorKey == nil {
		return nil, fmt.Errorf("gas payer is not enabled")
	}

	t, err := tx.Decode(raw, false)
	if err != nil {
		log.Error("Failed to decode tx to sponsor, err = ", err)
		return nil, err
	}

	if !t.IsDelegated() {
		return nil, tx.ErrNotDelegatedTransaction
	}

	if api.chainTag >= 0 && int(t.ChainTag()) != api.chainTag {
		return nil, fmt.Errorf("unexpected chain tag 0x%02x", t.ChainTag())
	}

	hash, err := t.DelegatorSigningHash(origin)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash, api.delegatorKey)
	if err != nil {
		return nil, err
	}

	log.Verbose("Signed as gas payer for origin ", origin.Hex(), ", gas = ", t.Gas())
	return sig, nil
}
