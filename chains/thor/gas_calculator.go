package thor

import (
	"context"
	"math/big"
	"sync"

	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains/thor/types"
	"github.com/sisu-network/thortx/config"
)

const (
	BaseFeeQueueSize = 40
)

var (
	// Initial base fee of the dynamic fee fork, 10^13 wei.
	DefaultBaseFee = big.NewInt(10_000_000_000_000)
)

// GasCalculator suggests max fee & priority fee for dynamic fee txs based on the base fee of
// recent blocks.
type GasCalculator struct {
	cfg    config.Chain
	client ThorClient

	baseFeeQueue []*big.Int
	queueIndex   int
	lock         *sync.RWMutex
}

func NewGasCalculator(cfg config.Chain, client ThorClient) *GasCalculator {
	return &GasCalculator{
		cfg:          cfg,
		client:       client,
		baseFeeQueue: make([]*big.Int, 0, BaseFeeQueueSize),
		lock:         &sync.RWMutex{},
	}
}

// Start seeds the calculator with the best block.
func (g *GasCalculator) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), RpcTimeOut)
	block, err := g.client.BestBlock(ctx)
	cancel()

	if err != nil {
		log.Errorf("Failed to get best block for chain %s, err = %v", g.cfg.Chain, err)
		return
	}

	g.AddNewBlock(block)
}

// AddNewBlock records the base fee of a block. Blocks before the dynamic fee fork have none.
func (g *GasCalculator) AddNewBlock(block *types.Block) {
	if block == nil || block.BaseFeePerGas == nil {
		return
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if len(g.baseFeeQueue) < BaseFeeQueueSize {
		g.baseFeeQueue = append(g.baseFeeQueue, nil)
	}

	next := (g.queueIndex + 1) % len(g.baseFeeQueue)
	g.baseFeeQueue[next] = new(big.Int).Set(block.BaseFeePerGas.ToInt())
	g.queueIndex = next
}

// GetBaseFee returns the average base fee of the recorded blocks.
func (g *GasCalculator) GetBaseFee() *big.Int {
	g.lock.RLock()
	defer g.lock.RUnlock()

	if len(g.baseFeeQueue) == 0 {
		return new(big.Int).Set(DefaultBaseFee)
	}

	total := new(big.Int)
	for _, fee := range g.baseFeeQueue {
		total.Add(total, fee)
	}

	return total.Div(total, big.NewInt(int64(len(g.baseFeeQueue))))
}

// GetTip returns the configured priority fee.
func (g *GasCalculator) GetTip() *big.Int {
	return parseFee(g.cfg.MaxPriorityFeePerGas, new(big.Int))
}

// SuggestFees returns (maxFeePerGas, maxPriorityFeePerGas). The max fee covers twice the base fee
// plus the tip and falls back to the configured max fee when no base fee was seen.
func (g *GasCalculator) SuggestFees() (*big.Int, *big.Int) {
	tip := g.GetTip()

	g.lock.RLock()
	seen := len(g.baseFeeQueue) > 0
	g.lock.RUnlock()

	if !seen {
		return parseFee(g.cfg.MaxFeePerGas, DefaultBaseFee), tip
	}

	maxFee := new(big.Int).Mul(g.GetBaseFee(), big.NewInt(2))
	return maxFee.Add(maxFee, tip), tip
}

func parseFee(s string, fallback *big.Int) *big.Int {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok || v.Sign() < 0 {
		return new(big.Int).Set(fallback)
	}

	return v
}
