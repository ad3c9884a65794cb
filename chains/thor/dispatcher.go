package thor

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains"
	"github.com/sisu-network/thortx/chains/thor/tx"
	"github.com/sisu-network/thortx/database"
	"github.com/sisu-network/thortx/network"
	"github.com/sisu-network/thortx/types"
)

const (
	RpcTimeOut = 30 * time.Second
)

type ThorDispatcher struct {
	chain  string
	client ThorClient
	db     database.Database
}

func NewDispatcher(chain string, client ThorClient, db database.Database) chains.Dispatcher {
	return &ThorDispatcher{
		chain:  chain,
		client: client,
		db:     db,
	}
}

// Start implements Dispatcher interface.
func (d *ThorDispatcher) Start() {
	// Do nothing.
}

func (d *ThorDispatcher) Dispatch(request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	t, err := tx.Decode(request.Tx, true)
	if err != nil {
		log.Error("Failed to decode thor transaction, err = ", err)
		return types.NewDispatchTxError(request, types.ErrMarshal)
	}

	if !t.IsSigned() {
		log.Error("Cannot dispatch an unsigned transaction, delegated = ", t.IsDelegated())
		return types.NewDispatchTxError(request, types.ErrNotSigned)
	}

	id, err := t.ID()
	if err != nil {
		log.Error("Failed to get tx id, err = ", err)
		return types.NewDispatchTxError(request, types.ErrMarshal)
	}
	origin, err := t.Origin()
	if err != nil {
		log.Error("Failed to recover tx origin, err = ", err)
		return types.NewDispatchTxError(request, types.ErrMarshal)
	}
	payer := origin
	if t.IsDelegated() {
		payer, err = t.GasPayer()
		if err != nil {
			log.Error("Failed to recover tx gas payer, err = ", err)
			return types.NewDispatchTxError(request, types.ErrMarshal)
		}
	}

	result := &types.DispatchedTxResult{
		Chain:    request.Chain,
		TxHash:   id.Hex(),
		Origin:   origin.Hex(),
		GasPayer: payer.Hex(),
	}

	if errType := d.check(t, origin, payer); errType != types.ErrNil {
		result.Err = errType
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), RpcTimeOut)
	_, err = d.client.SendRawTransaction(ctx, request.Tx)
	cancel()

	if err != nil && !isKnownTxErr(err) {
		log.Error("Failed to dispatch tx, err = ", err)
		result.Err = types.ErrSubmitTx
		return result
	}

	log.Verbose("Tx is dispatched successfully for chain ", request.Chain, " from ", origin,
		" txHash = ", id.Hex())
	result.Success = true

	d.save(request.Chain, id, request.Tx, origin, payer, t.IsDelegated())

	return result
}

// check verifies expiry and the balances of the accounts charged by the tx.
func (d *ThorDispatcher) check(t *tx.Transaction, origin, payer common.Address) types.DispatchError {
	ctx, cancel := context.WithTimeout(context.Background(), RpcTimeOut)
	defer cancel()

	best, err := d.client.BestBlock(ctx)
	if err != nil || best == nil {
		log.Error("Cannot get best block for chain ", d.chain, ", err = ", err)
		return types.ErrGeneric
	}

	if isExpired(t, best.Number) {
		log.Errorf("Tx expired, block ref = %d, expiration = %d, best block = %d",
			tx.BlockRefNumber(t.BlockRef()), t.Expiration(), best.Number)
		return types.ErrExpired
	}

	account, err := d.client.Account(ctx, origin)
	if err != nil || account == nil || account.Balance == nil {
		log.Errorf("Cannot get balance for account %s, err = %v", origin, err)
		return types.ErrGeneric
	}

	value := t.Value()
	if value.Cmp(account.Balance.ToInt()) > 0 {
		log.Errorf("balance smaller than the tx value, from = %s, balance = %s, value = %s",
			origin, account.Balance.ToInt(), value)
		return types.ErrNotEnoughBalance
	}

	if t.Type() != tx.TypeDynamicFee {
		return types.ErrNil
	}

	if payer != origin {
		account, err = d.client.Account(ctx, payer)
		if err != nil || account == nil || account.Energy == nil {
			log.Errorf("Cannot get energy for gas payer %s, err = %v", payer, err)
			return types.ErrGeneric
		}
	}

	if account.Energy == nil {
		log.Errorf("Cannot get energy for account %s", payer)
		return types.ErrGeneric
	}

	fee := new(big.Int).Mul(t.MaxFeePerGas(), new(big.Int).SetUint64(t.Gas()))
	if fee.Cmp(account.Energy.ToInt()) > 0 {
		log.Errorf("energy smaller than the max fee, payer = %s, energy = %s, max fee = %s",
			payer, account.Energy.ToInt(), fee)
		return types.ErrNotEnoughBalance
	}

	return types.ErrNil
}

func (d *ThorDispatcher) save(chain string, id common.Hash, raw []byte, origin, payer common.Address, delegated bool) {
	if d.db == nil {
		return
	}

	record := &types.Tx{
		Chain:      chain,
		Hash:       id.Hex(),
		Serialized: raw,
		Origin:     origin.Hex(),
		Status:     types.TxStatusPending,
	}
	if delegated {
		record.GasPayer = payer.Hex()
	}

	if err := d.db.SaveTx(record); err != nil {
		log.Error("Failed to save dispatched tx ", id.Hex(), ", err = ", err)
	}
}

// isExpired is true once the best block is past the last block the tx can be packed into.
func isExpired(t *tx.Transaction, bestBlock uint32) bool {
	last := uint64(tx.BlockRefNumber(t.BlockRef())) + uint64(t.Expiration())
	return uint64(bestBlock) > last
}

// A node rejects a tx that is already in its pool. Another party may have submitted the same
// tx, so this counts as a successful submission.
func isKnownTxErr(err error) bool {
	var statusErr *network.StatusError
	msg := err.Error()
	if errors.As(err, &statusErr) {
		msg = string(statusErr.Body)
	}

	return strings.Contains(msg, "known tx") || strings.Contains(msg, "known transaction")
}
