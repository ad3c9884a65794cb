package types

type TrackResult int

const (
	TrackResultConfirmed TrackResult = iota
	TrackResultFailure
	TrackResultTimeout
)

type TrackUpdate struct {
	Chain       string
	Hash        string
	BlockHeight int64
	Result      TrackResult

	// Gas actually charged and the account it was charged to.
	GasUsed  uint64
	GasPayer string
}
