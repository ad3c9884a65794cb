package client

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/types"
)

type MockDelegatorClient struct {
	TryDialFunc        func()
	CheckHealthFunc    func() error
	SignAsGasPayerFunc func(origin common.Address, raw []byte) ([]byte, error)
	DispatchTxFunc     func(raw []byte) (*types.DispatchedTxResult, error)
}

func (c *MockDelegatorClient) TryDial() {
	if c.TryDialFunc != nil {
		c.TryDialFunc()
	}
}

func (c *MockDelegatorClient) CheckHealth() error {
	if c.CheckHealthFunc != nil {
		return c.CheckHealthFunc()
	}

	return nil
}

func (c *MockDelegatorClient) SignAsGasPayer(origin common.Address, raw []byte) ([]byte, error) {
	if c.SignAsGasPayerFunc != nil {
		return c.SignAsGasPayerFunc(origin, raw)
	}

	return nil, nil
}

func (c *MockDelegatorClient) DispatchTx(raw []byte) (*types.DispatchedTxResult, error) {
	if c.DispatchTxFunc != nil {
		return c.DispatchTxFunc(raw)
	}

	return nil, nil
}
