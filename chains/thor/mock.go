package thor

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/thortx/chains/thor/types"
)

type MockThorClient struct {
	BestBlockFunc          func(ctx context.Context) (*types.Block, error)
	BlockByNumberFunc      func(ctx context.Context, number uint32) (*types.Block, error)
	ChainTagFunc           func(ctx context.Context) (byte, error)
	AccountFunc            func(ctx context.Context, addr common.Address) (*types.Account, error)
	SendRawTransactionFunc func(ctx context.Context, raw []byte) (common.Hash, error)
	RawTransactionFunc     func(ctx context.Context, id common.Hash) (*types.RawTx, error)
	TransactionReceiptFunc func(ctx context.Context, id common.Hash) (*types.Receipt, error)
}

func (c *MockThorClient) BestBlock(ctx context.Context) (*types.Block, error) {
	if c.BestBlockFunc != nil {
		return c.BestBlockFunc(ctx)
	}

	return nil, nil
}

func (c *MockThorClient) BlockByNumber(ctx context.Context, number uint32) (*types.Block, error) {
	if c.BlockByNumberFunc != nil {
		return c.BlockByNumberFunc(ctx, number)
	}

	return nil, nil
}

func (c *MockThorClient) ChainTag(ctx context.Context) (byte, error) {
	if c.ChainTagFunc != nil {
		return c.ChainTagFunc(ctx)
	}

	return 0, nil
}

func (c *MockThorClient) Account(ctx context.Context, addr common.Address) (*types.Account, error) {
	if c.AccountFunc != nil {
		return c.AccountFunc(ctx, addr)
	}

	return nil, nil
}

func (c *MockThorClient) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	if c.SendRawTransactionFunc != nil {
		return c.SendRawTransactionFunc(ctx, raw)
	}

	return common.Hash{}, nil
}

func (c *MockThorClient) RawTransaction(ctx context.Context, id common.Hash) (*types.RawTx, error) {
	if c.RawTransactionFunc != nil {
		return c.RawTransactionFunc(ctx, id)
	}

	return nil, nil
}

func (c *MockThorClient) TransactionReceipt(ctx context.Context, id common.Hash) (*types.Receipt, error) {
	if c.TransactionReceiptFunc != nil {
		return c.TransactionReceiptFunc(ctx, id)
	}

	return nil, nil
}
