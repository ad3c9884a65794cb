package chains

import "github.com/sisu-network/thortx/types"

type MockDispatcher struct {
	StartFunc    func()
	DispatchFunc func(request *types.DispatchedTxRequest) *types.DispatchedTxResult
}

func (m *MockDispatcher) Start() {
	if m.StartFunc != nil {
		m.StartFunc()
	}
}

func (m *MockDispatcher) Dispatch(request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	if m.DispatchFunc != nil {
		return m.DispatchFunc(request)
	}

	return &types.DispatchedTxResult{Success: true, Chain: request.Chain, TxHash: request.TxHash}
}
