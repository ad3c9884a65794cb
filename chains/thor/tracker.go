package thor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/groupcache/lru"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains"
	"github.com/sisu-network/thortx/chains/thor/types"
	chainstypes "github.com/sisu-network/thortx/chains/types"
	"go.uber.org/atomic"
)

const (
	TrackedCacheSize = 10_000

	// Thor produces a block every 10 seconds.
	BlockInterval = 10 * time.Second
)

var (
	errNotIncluded = errors.New("tx not included yet")
)

// Tracker polls the receipts of dispatched txs and reports their outcome on the update channel.
type Tracker struct {
	chain    string
	client   ThorClient
	updateCh chan<- *chainstypes.TrackUpdate

	interval time.Duration
	timeout  time.Duration

	tracked  *lru.Cache
	lock     *sync.Mutex
	inFlight *atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
}

// NewTracker creates a tracker. A tx that has no receipt after timeout is reported as timed out.
func NewTracker(chain string, client ThorClient, interval, timeout time.Duration,
	updateCh chan<- *chainstypes.TrackUpdate) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		chain:    chain,
		client:   client,
		updateCh: updateCh,
		interval: interval,
		timeout:  timeout,
		tracked:  lru.New(TrackedCacheSize),
		lock:     &sync.Mutex{},
		inFlight: atomic.NewInt32(0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

var _ chains.Watcher = (*Tracker)(nil)

func (t *Tracker) Start() {
	log.Info("Starting tx tracker for chain ", t.chain)
}

func (t *Tracker) Stop() {
	t.cancel()
}

// TrackTx starts polling the receipt of a tx. A tx already tracked is ignored.
func (t *Tracker) TrackTx(txHash string) {
	t.lock.Lock()
	if _, ok := t.tracked.Get(txHash); ok {
		t.lock.Unlock()
		log.Verbose("Tx ", txHash, " is already tracked")
		return
	}
	t.tracked.Add(txHash, true)
	t.lock.Unlock()

	t.inFlight.Inc()
	go t.track(txHash)
}

// InFlight returns the number of txs still waiting for a receipt.
func (t *Tracker) InFlight() int32 {
	return t.inFlight.Load()
}

func (t *Tracker) track(txHash string) {
	defer t.inFlight.Dec()

	id := common.HexToHash(txHash)
	var receipt *types.Receipt

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.interval
	bo.MaxInterval = 4 * t.interval
	bo.MaxElapsedTime = t.timeout

	err := backoff.Retry(func() error {
		ctx, cancel := context.WithTimeout(t.ctx, RpcTimeOut)
		defer cancel()

		r, err := t.client.TransactionReceipt(ctx, id)
		if err == ErrNotFound || (err == nil && r == nil) {
			return errNotIncluded
		}
		if err != nil {
			log.Verbose("Failed to get receipt of tx ", txHash, ", err = ", err)
			return err
		}

		receipt = r
		return nil
	}, backoff.WithContext(bo, t.ctx))

	if t.ctx.Err() != nil {
		t.forget(txHash)
		return
	}

	update := &chainstypes.TrackUpdate{
		Chain: t.chain,
		Hash:  txHash,
	}

	if err != nil {
		log.Warn("Tx ", txHash, " is not included after ", t.timeout, ", err = ", err)
		update.Result = chainstypes.TrackResultTimeout
		t.forget(txHash)
	} else {
		update.BlockHeight = int64(receipt.Meta.BlockNumber)
		update.GasUsed = receipt.GasUsed
		update.GasPayer = receipt.GasPayer.Hex()
		update.Result = chainstypes.TrackResultConfirmed
		if receipt.Reverted {
			update.Result = chainstypes.TrackResultFailure
		}
	}

	select {
	case t.updateCh <- update:
	case <-t.ctx.Done():
	}
}

// forget lets a timed out tx be tracked again.
func (t *Tracker) forget(txHash string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.tracked.Remove(txHash)
}
