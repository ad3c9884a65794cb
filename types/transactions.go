package types

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusReverted  TxStatus = "reverted"
	TxStatusFailed    TxStatus = "failed"
	TxStatusTimeout   TxStatus = "timeout"
)

// A data model that represents a dispatched transaction.
type Tx struct {
	Chain       string
	Hash        string
	Serialized  []byte
	Origin      string
	GasPayer    string
	Status      TxStatus
	BlockHeight int64
}
