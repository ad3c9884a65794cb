package chains

import (
	"github.com/sisu-network/thortx/types"
)

type Dispatcher interface {
	Start()
	Dispatch(request *types.DispatchedTxRequest) *types.DispatchedTxResult
}
