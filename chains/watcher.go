package chains

type Watcher interface {
	Start()
	Stop()

	// Track a dispatched tx until it is included in a block or times out.
	TrackTx(txHash string)
}
