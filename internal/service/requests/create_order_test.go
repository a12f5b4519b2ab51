package requests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderBody() string {
	return `{
		"sourceChain": "EVM",
		"destinationChain": "APTOS",
		"sourceUserAddress": "0x1111111111111111111111111111111111111111",
		"destinationUserAddress": "0x1",
		"sourceTokenAddress": "0x2222222222222222222222222222222222222222",
		"destinationTokenAddress": "0x2",
		"sourceTokenAmount": "500",
		"destinationTokenAmount": "1000",
		"auctionDuration": 500
	}`
}

func postReq(t *testing.T, body string) *http.Request {
	t.Helper()
	r, err := http.NewRequest(http.MethodPost, "/user/orders", strings.NewReader(body))
	require.NoError(t, err)
	return r
}

func TestNewCreateOrder(t *testing.T) {
	req, err := NewCreateOrder(postReq(t, orderBody()))
	require.NoError(t, err)

	assert.Equal(t, data.ChainEVM, req.SourceChain)
	assert.Equal(t, data.ChainAptos, req.DestinationChain)
	assert.Equal(t, "1000", req.DestinationTokenAmount)
	assert.EqualValues(t, 500, req.AuctionDuration)
	assert.Nil(t, req.AuctionStartTime)
}

func TestNewCreateOrderRejects(t *testing.T) {
	_, err := NewCreateOrder(postReq(t, "{not json"))
	assert.Error(t, err)

	_, err = NewCreateOrder(postReq(t, strings.Replace(orderBody(), `"EVM"`, `"SOLANA"`, 1)))
	assert.Error(t, err)

	_, err = NewCreateOrder(postReq(t, strings.Replace(orderBody(), `"auctionDuration": 500`, `"auctionDuration": 0`, 1)))
	assert.Error(t, err)

	_, err = NewCreateOrder(postReq(t, strings.Replace(orderBody(), `"sourceTokenAmount": "500",`, ``, 1)))
	assert.Error(t, err)
}
