package client

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/types"
)

// DelegatorClient talks to a thortx server acting as gas payer.
type DelegatorClient interface {
	TryDial()
	CheckHealth() error
	SignAsGasPayer(origin common.Address, raw []byte) ([]byte, error)
	DispatchTx(raw []byte) (*types.DispatchedTxResult, error)
}
