package database

import "github.com/sisu-network/thortx/types"

type MockDb struct {
	InitFunc           func() error
	CloseFunc          func() error
	SaveTxFunc         func(tx *types.Tx) error
	UpdateTxStatusFunc func(hash string, status types.TxStatus, blockHeight int64) error
	GetTxFunc          func(hash string) (*types.Tx, error)
	LoadPendingTxsFunc func(chain string) ([]*types.Tx, error)
}

func (mock *MockDb) Init() error {
	if mock.InitFunc != nil {
		return mock.InitFunc()
	}

	return nil
}

func (mock *MockDb) Close() error {
	if mock.CloseFunc != nil {
		return mock.CloseFunc()
	}

	return nil
}

func (mock *MockDb) SaveTx(tx *types.Tx) error {
	if mock.SaveTxFunc != nil {
		return mock.SaveTxFunc(tx)
	}

	return nil
}

func (mock *MockDb) UpdateTxStatus(hash string, status types.TxStatus, blockHeight int64) error {
	if mock.UpdateTxStatusFunc != nil {
		return mock.UpdateTxStatusFunc(hash, status, blockHeight)
	}

	return nil
}

func (mock *MockDb) GetTx(hash string) (*types.Tx, error) {
	if mock.GetTxFunc != nil {
		return mock.GetTxFunc(hash)
	}

	return nil, ErrTxNotFound
}

func (mock *MockDb) LoadPendingTxs(chain string) ([]*types.Tx, error) {
	if mock.LoadPendingTxsFunc != nil {
		return mock.LoadPendingTxsFunc(chain)
	}

	return nil, nil
}
