package server

import (
	"math/big"

	"github.com/sisu-network/thortx/types"
)

type MockProcessor struct {
	DispatchTxFunc  func(request *types.DispatchedTxRequest) *types.DispatchedTxResult
	SuggestFeesFunc func() (*big.Int, *big.Int)
}

func (m *MockProcessor) DispatchTx(request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	if m.DispatchTxFunc != nil {
		return m.DispatchTxFunc(request)
	}

	return &types.DispatchedTxResult{Chain: request.Chain}
}

func (m *MockProcessor) SuggestFees() (*big.Int, *big.Int) {
	if m.SuggestFeesFunc != nil {
		return m.SuggestFeesFunc()
	}

	return new(big.Int), new(big.Int)
}
