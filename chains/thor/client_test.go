package thor

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/sisu-network/thortx/network"
	mocknetwork "github.com/sisu-network/thortx/tests/mock/network"
	"github.com/stretchr/testify/require"
)

const (
	testNodeUrl   = "http://localhost:8669/"
	testGenesisId = "0x000000000b2bce3c70bc649a02749e8687721b09ed2e15997f466536b20bb127"
)

func TestClient_BestBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocknetwork.NewMockHttp(ctrl)
	httpClient.EXPECT().Get(gomock.Any()).DoAndReturn(func(req *http.Request) ([]byte, error) {
		require.Equal(t, "http://localhost:8669/blocks/best", req.URL.String())
		return []byte(`{"number":17,"id":"` + testGenesisId + `","baseFeePerGas":"0x9184e72a000"}`), nil
	})

	block, err := NewThorClient(testNodeUrl, httpClient).BestBlock(context.Background())
	require.Nil(t, err)
	require.Equal(t, uint32(17), block.Number)
	require.Equal(t, common.HexToHash(testGenesisId), block.Id)
	require.Equal(t, big.NewInt(10_000_000_000_000), block.BaseFeePerGas.ToInt())
}

func TestClient_ChainTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocknetwork.NewMockHttp(ctrl)
	httpClient.EXPECT().Get(gomock.Any()).DoAndReturn(func(req *http.Request) ([]byte, error) {
		require.Equal(t, "/blocks/0", req.URL.Path)
		return []byte(`{"number":0,"id":"` + testGenesisId + `"}`), nil
	})

	tag, err := NewThorClient(testNodeUrl, httpClient).ChainTag(context.Background())
	require.Nil(t, err)
	require.Equal(t, byte(0x27), tag)
}

func TestClient_SendRawTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := common.HexToHash("0x01")
	httpClient := mocknetwork.NewMockHttp(ctrl)
	httpClient.EXPECT().Post(gomock.Any()).DoAndReturn(func(req *http.Request) ([]byte, error) {
		require.Equal(t, "/transactions", req.URL.Path)

		bz, err := io.ReadAll(req.Body)
		require.Nil(t, err)
		body := map[string]string{}
		require.Nil(t, json.Unmarshal(bz, &body))
		require.Equal(t, "0x51f8", body["raw"])

		return []byte(`{"id":"` + id.Hex() + `"}`), nil
	})

	result, err := NewThorClient(testNodeUrl, httpClient).SendRawTransaction(context.Background(), []byte{0x51, 0xf8})
	require.Nil(t, err)
	require.Equal(t, id, result)
}

func TestClient_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := common.HexToHash("0x01")
	httpClient := mocknetwork.NewMockHttp(ctrl)
	gomock.InOrder(
		httpClient.EXPECT().Get(gomock.Any()).Return([]byte("null\n"), nil),
		httpClient.EXPECT().Get(gomock.Any()).Return([]byte("{"), nil),
		httpClient.EXPECT().Get(gomock.Any()).Return(nil, network.NewStatusError(http.StatusBadRequest, []byte("bad id"))),
	)

	client := NewThorClient(testNodeUrl, httpClient)

	_, err := client.TransactionReceipt(context.Background(), id)
	require.Equal(t, ErrNotFound, err)

	_, err = client.RawTransaction(context.Background(), id)
	var apiErr *APIErr
	require.ErrorAs(t, err, &apiErr)

	_, err = client.Account(context.Background(), common.Address{})
	var statusErr *network.StatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestClient_Account(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	addr := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	httpClient := mocknetwork.NewMockHttp(ctrl)
	httpClient.EXPECT().Get(gomock.Any()).DoAndReturn(func(req *http.Request) ([]byte, error) {
		require.Equal(t, "/accounts/"+addr.Hex(), req.URL.Path)
		return []byte(`{"balance":"0x3e8","energy":"0x0","hasCode":false}`), nil
	})

	account, err := NewThorClient(testNodeUrl, httpClient).Account(context.Background(), addr)
	require.Nil(t, err)
	require.Equal(t, int64(1000), account.Balance.ToInt().Int64())
	require.Zero(t, account.Energy.ToInt().Sign())
}
