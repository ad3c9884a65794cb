package types

type DispatchedTxRequest struct {
	Chain string

	// Signed wire bytes of the transaction.
	Tx     []byte
	TxHash string
}

type DispatchedTxResult struct {
	Success bool
	Err     DispatchError
	Chain   string
	TxHash  string

	Origin   string
	GasPayer string
}

func NewDispatchTxError(request *DispatchedTxRequest, err DispatchError) *DispatchedTxResult {
	return &DispatchedTxResult{
		Success: false,
		Err:     err,
		Chain:   request.Chain,
		TxHash:  request.TxHash,
	}
}
