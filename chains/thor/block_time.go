package thor

import (
	"sync"
	"time"
)

// BlockTimeTracker adapts the polling interval to the pace of new blocks: it shrinks while every
// poll finds a new block and grows when a poll finds none.
type BlockTimeTracker struct {
	lock           *sync.RWMutex
	currentValue   time.Duration
	consecutiveHit int

	min, max time.Duration
}

func NewBlockTimeTracker(interval time.Duration) *BlockTimeTracker {
	return &BlockTimeTracker{
		lock:         &sync.RWMutex{},
		currentValue: interval,
		min:          interval / 10,
		max:          interval * 2,
	}
}

// HitBlock is called when a poll returns a new block.
func (t *BlockTimeTracker) HitBlock() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.consecutiveHit++
	if t.consecutiveHit >= 3 {
		t.currentValue = t.currentValue * 6 / 10 // Drop by 40%
	} else {
		t.currentValue = t.currentValue * 950 / 1000 // Drop by 5%
	}

	t.clamp()
}

// HitBlockWithMinorDelay is called when a poll fails for a transient reason.
func (t *BlockTimeTracker) HitBlockWithMinorDelay() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.currentValue = t.currentValue * 1025 / 1000 // Increase by 2.5%
	t.consecutiveHit = 0
	t.clamp()
}

// MissBlock is called when a poll returns the block seen last time.
func (t *BlockTimeTracker) MissBlock() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.currentValue = t.currentValue * 11 / 10 // Increase by 10%
	t.consecutiveHit = 0
	t.clamp()
}

func (t *BlockTimeTracker) clamp() {
	if t.currentValue < t.min {
		t.currentValue = t.min
	}
	if t.currentValue > t.max {
		t.currentValue = t.max
	}
}

func (t *BlockTimeTracker) GetSleepTime() time.Duration {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.currentValue
}
