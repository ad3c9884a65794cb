package core

import (
	"context"
	"math/big"
	"time"

	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains"
	"github.com/sisu-network/thortx/chains/thor"
	chainstypes "github.com/sisu-network/thortx/chains/types"
	"github.com/sisu-network/thortx/config"
	"github.com/sisu-network/thortx/database"
	"github.com/sisu-network/thortx/types"
	"go.uber.org/atomic"
)

// Processor wires the node client, the dispatcher, the tracker and the tx store of a chain.
type Processor struct {
	cfg    config.Chain
	db     database.Database
	client thor.ThorClient

	dispatcher    chains.Dispatcher
	tracker       chains.Watcher
	gasCalculator *thor.GasCalculator

	txTrackCh chan *chainstypes.TrackUpdate
	ctx       context.Context
	cancel    context.CancelFunc
	started   *atomic.Bool
}

func NewProcessor(cfg config.Chain, db database.Database, client thor.ThorClient) *Processor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Processor{
		cfg:           cfg,
		db:            db,
		client:        client,
		gasCalculator: thor.NewGasCalculator(cfg, client),
		txTrackCh:     make(chan *chainstypes.TrackUpdate, 1000),
		ctx:           ctx,
		cancel:        cancel,
		started:       atomic.NewBool(false),
	}
}

func (p *Processor) pollInterval() time.Duration {
	if p.cfg.PollInterval <= 0 {
		return thor.BlockInterval
	}

	return time.Duration(p.cfg.PollInterval) * time.Millisecond
}

func (p *Processor) Start() {
	if !p.started.CAS(false, true) {
		return
	}

	log.Info("Starting tx processor for chain ", p.cfg.Chain)

	// A tx can be packed up to expiration blocks after its block ref.
	timeout := thor.BlockInterval * time.Duration(p.cfg.Expiration+1)

	p.dispatcher = thor.NewDispatcher(p.cfg.Chain, p.client, p.db)
	p.tracker = thor.NewTracker(p.cfg.Chain, p.client, p.pollInterval(), timeout, p.txTrackCh)

	p.dispatcher.Start()
	p.tracker.Start()
	p.gasCalculator.Start()

	go p.listen()
	go p.pollBlocks()

	p.loadPendingTxs()
}

func (p *Processor) Stop() {
	if !p.started.Load() {
		return
	}

	p.cancel()
	p.tracker.Stop()
}

// loadPendingTxs resumes tracking of the txs dispatched before a restart.
func (p *Processor) loadPendingTxs() {
	txs, err := p.db.LoadPendingTxs(p.cfg.Chain)
	if err != nil {
		log.Error("Cannot load pending txs, err = ", err)
		return
	}

	if len(txs) > 0 {
		log.Info("Resume tracking ", len(txs), " pending txs")
	}

	for _, tx := range txs {
		p.tracker.TrackTx(tx.Hash)
	}
}

// pollBlocks feeds the best block to the gas calculator. The polling interval follows the
// block pace.
func (p *Processor) pollBlocks() {
	blockTime := thor.NewBlockTimeTracker(p.pollInterval())
	var last uint32

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-time.After(blockTime.GetSleepTime()):
		}

		ctx, cancel := context.WithTimeout(p.ctx, thor.RpcTimeOut)
		block, err := p.client.BestBlock(ctx)
		cancel()

		if err != nil || block == nil {
			log.Verbose("Cannot get best block, err = ", err)
			blockTime.HitBlockWithMinorDelay()
			continue
		}

		if block.Number == last {
			blockTime.MissBlock()
			continue
		}

		last = block.Number
		blockTime.HitBlock()
		p.gasCalculator.AddNewBlock(block)
	}
}

func (p *Processor) listen() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case update := <-p.txTrackCh:
			log.Verbose("Tx ", update.Hash, " is done tracking, result = ", update.Result)

			status := trackResultToStatus(update.Result)
			if err := p.db.UpdateTxStatus(update.Hash, status, update.BlockHeight); err != nil {
				log.Error("Cannot update status of tx ", update.Hash, ", err = ", err)
			}
		}
	}
}

func trackResultToStatus(result chainstypes.TrackResult) types.TxStatus {
	switch result {
	case chainstypes.TrackResultConfirmed:
		return types.TxStatusConfirmed
	case chainstypes.TrackResultFailure:
		return types.TxStatusReverted
	default:
		return types.TxStatusTimeout
	}
}

// DispatchTx submits a signed tx and tracks it when the submission succeeds.
func (p *Processor) DispatchTx(request *types.DispatchedTxRequest) *types.DispatchedTxResult {
	if request.Chain == "" {
		request.Chain = p.cfg.Chain
	}

	result := p.dispatcher.Dispatch(request)
	log.Info("Dispatched tx for chain ", request.Chain, " tx hash = ", result.TxHash, " success = ", result.Success)

	if result.Success {
		p.tracker.TrackTx(result.TxHash)
	}

	return result
}

// SuggestFees returns (maxFeePerGas, maxPriorityFeePerGas) for a new dynamic fee tx.
func (p *Processor) SuggestFees() (*big.Int, *big.Int) {
	return p.gasCalculator.SuggestFees()
}

func (p *Processor) GetDispatcher() chains.Dispatcher {
	return p.dispatcher
}
