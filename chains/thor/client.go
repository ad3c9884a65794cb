package thor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sisu-network/lib/log"
	"github.com/sisu-network/thortx/chains/thor/types"
	"github.com/sisu-network/thortx/network"
)

type APIErr struct {
	message string
}

func NewApiErr(message string) error {
	return &APIErr{message: message}
}

func (e *APIErr) Error() string {
	return e.message
}

var (
	// ErrNotFound is returned when the node answers null for a block, tx or receipt.
	ErrNotFound = NewApiErr("not found")
)

// ThorClient is a thin wrapper around the REST api of a node so that we can mock it in
// dispatcher and tracker tests.
type ThorClient interface {
	BestBlock(ctx context.Context) (*types.Block, error)
	BlockByNumber(ctx context.Context, number uint32) (*types.Block, error)
	ChainTag(ctx context.Context) (byte, error)
	Account(ctx context.Context, addr common.Address) (*types.Account, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	RawTransaction(ctx context.Context, id common.Hash) (*types.RawTx, error)
	TransactionReceipt(ctx context.Context, id common.Hash) (*types.Receipt, error)
}

type defaultThorClient struct {
	url  string
	http network.Http
}

func NewThorClient(url string, httpClient network.Http) ThorClient {
	return &defaultThorClient{
		url:  strings.TrimSuffix(url, "/"),
		http: httpClient,
	}
}

func (c *defaultThorClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return err
	}

	body, err := c.http.Get(req)
	if err != nil {
		return err
	}

	return decodeBody(body, out)
}

func (c *defaultThorClient) post(ctx context.Context, path string, in, out interface{}) error {
	bz, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(bz))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.http.Post(req)
	if err != nil {
		return err
	}

	return decodeBody(body, out)
}

func decodeBody(body []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ErrNotFound
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return NewApiErr(fmt.Sprintf("cannot decode response %q: %v", string(trimmed), err))
	}

	return nil
}

func (c *defaultThorClient) BestBlock(ctx context.Context) (*types.Block, error) {
	block := &types.Block{}
	if err := c.get(ctx, "/blocks/best", block); err != nil {
		return nil, err
	}

	return block, nil
}

func (c *defaultThorClient) BlockByNumber(ctx context.Context, number uint32) (*types.Block, error) {
	block := &types.Block{}
	if err := c.get(ctx, fmt.Sprintf("/blocks/%d", number), block); err != nil {
		return nil, err
	}

	return block, nil
}

// ChainTag is the last byte of the genesis block id.
func (c *defaultThorClient) ChainTag(ctx context.Context) (byte, error) {
	genesis, err := c.BlockByNumber(ctx, 0)
	if err != nil {
		return 0, err
	}

	return genesis.Id[len(genesis.Id)-1], nil
}

func (c *defaultThorClient) Account(ctx context.Context, addr common.Address) (*types.Account, error) {
	account := &types.Account{}
	if err := c.get(ctx, "/accounts/"+addr.Hex(), account); err != nil {
		return nil, err
	}

	return account, nil
}

func (c *defaultThorClient) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	resp := &types.TxIdResponse{}
	if err := c.post(ctx, "/transactions", &types.RawTxRequest{Raw: hexutil.Encode(raw)}, resp); err != nil {
		log.Error("Failed to send transaction to ", c.url, ", err = ", err)
		return common.Hash{}, err
	}

	return resp.Id, nil
}

func (c *defaultThorClient) RawTransaction(ctx context.Context, id common.Hash) (*types.RawTx, error) {
	tx := &types.RawTx{}
	if err := c.get(ctx, "/transactions/"+id.Hex()+"?raw=true", tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (c *defaultThorClient) TransactionReceipt(ctx context.Context, id common.Hash) (*types.Receipt, error) {
	receipt := &types.Receipt{}
	if err := c.get(ctx, "/transactions/"+id.Hex()+"/receipt", receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}
