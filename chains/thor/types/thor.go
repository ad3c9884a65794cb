package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type Block struct {
	Number       uint32         `json:"number"`
	Id           common.Hash    `json:"id"`
	Size         uint32         `json:"size"`
	ParentId     common.Hash    `json:"parentID"`
	Timestamp    uint64         `json:"timestamp"`
	GasLimit     uint64         `json:"gasLimit"`
	Beneficiary  common.Address `json:"beneficiary"`
	GasUsed      uint64         `json:"gasUsed"`
	TotalScore   uint64         `json:"totalScore"`
	TxsRoot      common.Hash    `json:"txsRoot"`
	StateRoot    common.Hash    `json:"stateRoot"`
	ReceiptsRoot common.Hash    `json:"receiptsRoot"`
	Signer       common.Address `json:"signer"`
	IsTrunk      bool           `json:"isTrunk"`
	Transactions []common.Hash  `json:"transactions"`

	// Only present after the dynamic fee fork.
	BaseFeePerGas *hexutil.Big `json:"baseFeePerGas,omitempty"`
}

type Account struct {
	Balance *hexutil.Big `json:"balance"`
	Energy  *hexutil.Big `json:"energy"`
	HasCode bool         `json:"hasCode"`
}

type RawTxRequest struct {
	Raw string `json:"raw"`
}

type TxIdResponse struct {
	Id common.Hash `json:"id"`
}

type TxMeta struct {
	BlockId        common.Hash `json:"blockID"`
	BlockNumber    uint32      `json:"blockNumber"`
	BlockTimestamp uint64      `json:"blockTimestamp"`
}

type RawTx struct {
	Raw  hexutil.Bytes `json:"raw"`
	Meta *TxMeta       `json:"meta"`
}

type ReceiptMeta struct {
	TxMeta
	TxId     common.Hash    `json:"txID"`
	TxOrigin common.Address `json:"txOrigin"`
}

type Receipt struct {
	Type     uint8          `json:"type"`
	GasUsed  uint64         `json:"gasUsed"`
	GasPayer common.Address `json:"gasPayer"`
	Paid     *hexutil.Big   `json:"paid"`
	Reward   *hexutil.Big   `json:"reward"`
	Reverted bool           `json:"reverted"`
	Meta     ReceiptMeta    `json:"meta"`
}
