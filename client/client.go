package client

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/types"
)

var (
	RetryTime = 10 * time.Second

	ErrDelegatorNotConnected = errors.New("delegator server is not connected")
)

type DefaultDelegatorClient struct {
	client    *rpc.Client
	url       string
	connected bool
}

func NewDelegatorClient(url string) DelegatorClient {
	return &DefaultDelegatorClient{
		url: url,
	}
}

func (c *DefaultDelegatorClient) TryDial() {
	log.Info("Trying to dial delegator server")

	for {
		log.Info("Dialing...", c.url)
		var err error
		c.client, err = rpc.DialContext(context.Background(), c.url)
		if err != nil {
			log.Error("Cannot connect to delegator server err = ", err)
			time.Sleep(RetryTime)
			continue
		}

		err = c.call(nil, "thortx_checkHealth")
		if err != nil {
			log.Error("Delegator server is not healthy err = ", err)
			c.client.Close()
			time.Sleep(RetryTime)
			continue
		}

		c.connected = true
		break
	}

	log.Info("Delegator server is connected")
}

func (c *DefaultDelegatorClient) call(result interface{}, method string, args ...interface{}) error {
	if c.client == nil {
		return ErrDelegatorNotConnected
	}

	return c.client.CallContext(context.Background(), result, method, args...)
}

func (c *DefaultDelegatorClient) CheckHealth() error {
	return c.call(nil, "thortx_checkHealth")
}

func (c *DefaultDelegatorClient) SignAsGasPayer(origin common.Address, raw []byte) ([]byte, error) {
	var sig hexutil.Bytes
	err := c.call(&sig, "thortx_signAsGasPayer", origin, hexutil.Bytes(raw))
	if err != nil {
		log.Error("Cannot get gas payer signature, origin = ", origin.Hex(), ", err = ", err)
		return nil, err
	}

	return sig, nil
}

func (c *DefaultDelegatorClient) DispatchTx(raw []byte) (*types.DispatchedTxResult, error) {
	result := &types.DispatchedTxResult{}
	err := c.call(result, "thortx_dispatchTx", hexutil.Bytes(raw))
	if err != nil {
		log.Error("Cannot dispatch tx through delegator server, err = ", err)
		return nil, err
	}

	return result, nil
}
