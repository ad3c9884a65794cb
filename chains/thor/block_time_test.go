package thor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBlockTimeTracker(t *testing.T) {
	timeTracker := NewBlockTimeTracker(10 * time.Second)

	timeTracker.HitBlock()
	require.Equal(t, 9500*time.Millisecond, timeTracker.GetSleepTime())
	timeTracker.HitBlock()
	require.Equal(t, 9025*time.Millisecond, timeTracker.GetSleepTime())
	timeTracker.HitBlock()
	require.Equal(t, 5415*time.Millisecond, timeTracker.GetSleepTime())
	require.Equal(t, 3, timeTracker.consecutiveHit)

	timeTracker.HitBlockWithMinorDelay()
	require.Equal(t, 5550375*time.Microsecond, timeTracker.GetSleepTime())
	require.Equal(t, 0, timeTracker.consecutiveHit)
	timeTracker.MissBlock()
	require.Equal(t, time.Duration(6105412500), timeTracker.GetSleepTime())
	require.Equal(t, 0, timeTracker.consecutiveHit)
}

func TestBlockTimeTracker_Bounds(t *testing.T) {
	timeTracker := NewBlockTimeTracker(10 * time.Second)

	for i := 0; i < 50; i++ {
		timeTracker.HitBlock()
	}
	require.Equal(t, time.Second, timeTracker.GetSleepTime())

	for i := 0; i < 50; i++ {
		timeTracker.MissBlock()
	}
	require.Equal(t, 20*time.Second, timeTracker.GetSleepTime())
}
