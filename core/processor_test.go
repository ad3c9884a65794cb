package core

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang/mock/gomock"
	"github.com/sisu-network/thortx/chains/thor"
	"github.com/sisu-network/thortx/chains/thor/tx"
	thortypes "github.com/sisu-network/thortx/chains/thor/types"
	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/database"
	mockdatabase "github.com/sisu-network/thortx/tests/mock/database"
	"github.com/sisu-network/thortx/types"
	"github.com/stretchr/testify/require"
)

var senderKey = hexutil.MustDecode("0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")

type statusUpdate struct {
	hash        string
	status      types.TxStatus
	blockHeight int64
}

func getTestCfg() config.Chain {
	return config.Chain{
		Chain:                "thor-testnet",
		ChainTag:             0x27,
		Expiration:           32,
		PollInterval:         1,
		MaxFeePerGas:         "20000000000000",
		MaxPriorityFeePerGas: "0",
	}
}

func getSignedRaw(t *testing.T) ([]byte, common.Hash) {
	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	unsigned, err := tx.NewTransaction(&tx.Body{
		Type:                 tx.TypeDynamicFee,
		ChainTag:             0x27,
		BlockRef:             tx.NewBlockRef(100),
		Expiration:           32,
		Clauses:              []tx.Clause{{To: &to, Value: big.NewInt(1)}},
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(0),
		Gas:                  21000,
	})
	require.Nil(t, err)

	signed, err := unsigned.Sign(senderKey)
	require.Nil(t, err)
	raw, err := signed.Encoded()
	require.Nil(t, err)
	id, err := signed.ID()
	require.Nil(t, err)

	return raw, id
}

func mockForProcessor(receipts map[common.Hash]*thortypes.Receipt) *thor.MockThorClient {
	balance := (*hexutil.Big)(big.NewInt(1_000_000_000))
	return &thor.MockThorClient{
		BestBlockFunc: func(ctx context.Context) (*thortypes.Block, error) {
			return &thortypes.Block{Number: 101, BaseFeePerGas: (*hexutil.Big)(big.NewInt(10))}, nil
		},
		AccountFunc: func(ctx context.Context, addr common.Address) (*thortypes.Account, error) {
			return &thortypes.Account{Balance: balance, Energy: balance}, nil
		},
		SendRawTransactionFunc: func(ctx context.Context, raw []byte) (common.Hash, error) {
			return common.Hash{}, nil
		},
		TransactionReceiptFunc: func(ctx context.Context, id common.Hash) (*thortypes.Receipt, error) {
			receipt, ok := receipts[id]
			if !ok {
				return nil, thor.ErrNotFound
			}
			return receipt, nil
		},
	}
}

func TestProcessor_DispatchTx(t *testing.T) {
	raw, id := getSignedRaw(t)

	receipt := &thortypes.Receipt{Reverted: true}
	receipt.Meta.BlockNumber = 102
	client := mockForProcessor(map[common.Hash]*thortypes.Receipt{id: receipt})

	updates := make(chan statusUpdate, 10)
	var saved *types.Tx
	db := &database.MockDb{
		SaveTxFunc: func(tx *types.Tx) error {
			saved = tx
			return nil
		},
		UpdateTxStatusFunc: func(hash string, status types.TxStatus, blockHeight int64) error {
			updates <- statusUpdate{hash, status, blockHeight}
			return nil
		},
	}

	p := NewProcessor(getTestCfg(), db, client)
	p.Start()
	defer p.Stop()

	result := p.DispatchTx(&types.DispatchedTxRequest{Tx: raw})
	require.True(t, result.Success)
	require.Equal(t, "thor-testnet", result.Chain)
	require.Equal(t, id.Hex(), result.TxHash)
	require.Equal(t, id.Hex(), saved.Hash)

	select {
	case update := <-updates:
		require.Equal(t, statusUpdate{id.Hex(), types.TxStatusReverted, 102}, update)
	case <-time.After(5 * time.Second):
		t.Fatal("tx status is not updated")
	}
}

func TestProcessor_ResumePendingTxs(t *testing.T) {
	id := common.HexToHash("0x1234")
	receipt := &thortypes.Receipt{}
	receipt.Meta.BlockNumber = 7
	client := mockForProcessor(map[common.Hash]*thortypes.Receipt{id: receipt})

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	done := make(chan struct{})
	db := mockdatabase.NewMockDatabase(ctrl)
	db.EXPECT().LoadPendingTxs("thor-testnet").Return([]*types.Tx{
		{Chain: "thor-testnet", Hash: id.Hex(), Status: types.TxStatusPending},
	}, nil)
	db.EXPECT().UpdateTxStatus(id.Hex(), types.TxStatusConfirmed, int64(7)).DoAndReturn(
		func(hash string, status types.TxStatus, blockHeight int64) error {
			close(done)
			return nil
		},
	)

	p := NewProcessor(getTestCfg(), db, client)
	p.Start()
	defer p.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tx status is not updated")
	}
}

func TestProcessor_SuggestFees(t *testing.T) {
	p := NewProcessor(getTestCfg(), &database.MockDb{}, mockForProcessor(nil))
	p.Start()
	defer p.Stop()

	// The best block base fee is 10.
	maxFee, tip := p.SuggestFees()
	require.Equal(t, int64(20), maxFee.Int64())
	require.Zero(t, tip.Sign())
}

func TestTrackResultToStatus(t *testing.T) {
	require.Equal(t, types.TxStatusConfirmed, trackResultToStatus(0))
	require.Equal(t, types.TxStatusReverted, trackResultToStatus(1))
	require.Equal(t, types.TxStatusTimeout, trackResultToStatus(2))
}
