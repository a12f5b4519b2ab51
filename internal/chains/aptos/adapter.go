package aptos

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"github.com/go-resty/resty/v2"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const (
	defaultMaxGasAmount = "100000"
	defaultGasUnitPrice = "100"
	txExpirySlack       = 10 * time.Minute
)

// Adapter drives the fusion Move module on an Aptos fullnode through its
// REST API: encode_submission for the signing message, ed25519 over it,
// then submission.
type Adapter struct {
	log    *logan.Entry
	http   *resty.Client
	module string

	address string
	key     ed25519.PrivateKey
}

func New(log *logan.Entry, endpoint, module, address string, key ed25519.PrivateKey, timeout time.Duration) *Adapter {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(endpoint, "/")).
		SetTimeout(timeout)

	return &Adapter{
		log:     log.WithField("chain", "aptos"),
		http:    client,
		module:  module,
		address: address,
		key:     key,
	}
}

type accountResponse struct {
	SequenceNumber string `json:"sequence_number"`
}

type entryFunctionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

type rawTransaction struct {
	Sender                  string               `json:"sender"`
	SequenceNumber          string               `json:"sequence_number"`
	MaxGasAmount            string               `json:"max_gas_amount"`
	GasUnitPrice            string               `json:"gas_unit_price"`
	ExpirationTimestampSecs string               `json:"expiration_timestamp_secs"`
	Payload                 entryFunctionPayload `json:"payload"`
}

type signedTransaction struct {
	rawTransaction
	Signature txSignature `json:"signature"`
}

type txSignature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type pendingTransaction struct {
	Hash string `json:"hash"`
}

type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

func (a *Adapter) entryFunction(name string) string {
	return fmt.Sprintf("%s::fusion::%s", a.module, name)
}

// submit runs the encode-sign-submit cycle for one entry function call.
func (a *Adapter) submit(ctx context.Context, function string, arguments []string) (string, error) {
	var account accountResponse
	resp, err := a.http.R().SetContext(ctx).
		SetResult(&account).
		Get("/v1/accounts/" + a.address)
	if err != nil {
		return "", errors.Wrap(err, "failed to get account")
	}
	if resp.IsError() {
		return "", errors.Errorf("account request failed: %s", resp.Status())
	}

	tx := rawTransaction{
		Sender:                  a.address,
		SequenceNumber:          account.SequenceNumber,
		MaxGasAmount:            defaultMaxGasAmount,
		GasUnitPrice:            defaultGasUnitPrice,
		ExpirationTimestampSecs: strconv.FormatInt(time.Now().Add(txExpirySlack).Unix(), 10),
		Payload: entryFunctionPayload{
			Type:          "entry_function_payload",
			Function:      function,
			TypeArguments: []string{},
			Arguments:     arguments,
		},
	}

	var signingMessage string
	resp, err = a.http.R().SetContext(ctx).
		SetBody(tx).
		SetResult(&signingMessage).
		Post("/v1/transactions/encode_submission")
	if err != nil {
		return "", errors.Wrap(err, "failed to encode submission")
	}
	if resp.IsError() {
		return "", errors.Errorf("encode_submission failed: %s", resp.Status())
	}

	message, err := hex.DecodeString(strings.TrimPrefix(signingMessage, "0x"))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode signing message")
	}

	signature := ed25519.Sign(a.key, message)
	signed := signedTransaction{
		rawTransaction: tx,
		Signature: txSignature{
			Type:      "ed25519_signature",
			PublicKey: "0x" + hex.EncodeToString(a.key.Public().(ed25519.PublicKey)),
			Signature: "0x" + hex.EncodeToString(signature),
		},
	}

	var pending pendingTransaction
	var apiErr apiError
	resp, err = a.http.R().SetContext(ctx).
		SetBody(signed).
		SetResult(&pending).
		SetError(&apiErr).
		Post("/v1/transactions")
	if err != nil {
		return "", errors.Wrap(err, "failed to submit transaction")
	}
	if resp.IsError() {
		return "", errors.Errorf("transaction rejected: %s (%s)", apiErr.Message, apiErr.ErrorCode)
	}

	a.log.WithFields(logan.F{"function": function, "tx": pending.Hash}).Debug("transaction submitted")
	return pending.Hash, nil
}

func hexBytes(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func (a *Adapter) CreateEscrow(ctx context.Context, side data.EscrowSide, imm swap.Immutables) (chains.CreateResult, error) {
	now := uint64(time.Now().Unix())
	expiration := now + swap.DstCancellation(imm.Timelocks)

	hash, err := a.submit(ctx, a.entryFunction("initiate_swap"), []string{
		imm.Taker,
		imm.Amount.Dec(),
		strconv.FormatUint(uint64(chainTag(side)), 10),
		strconv.FormatUint(uint64(chainTag(oppositeSide(side))), 10),
		imm.Maker,
		hexBytes(imm.Hashlock.Bytes()),
		strconv.FormatUint(expiration, 10),
	})
	if err != nil {
		return chains.CreateResult{}, err
	}

	// the fullnode does not return the ledger timestamp for a pending
	// transaction, submission time stands in for it
	return chains.CreateResult{
		Address:    a.address,
		TxRef:      hash,
		DeployedAt: now,
	}, nil
}

func (a *Adapter) Withdraw(ctx context.Context, side data.EscrowSide, params chains.WithdrawParams, imm swap.Immutables) (chains.WithdrawResult, error) {
	var hash string
	var err error

	if len(params.Secret) > 0 {
		hash, err = a.submit(ctx, a.entryFunction("claim_swap"), []string{
			imm.Maker,
			hexBytes(params.Secret),
		})
	} else {
		hash, err = a.submit(ctx, a.entryFunction("refund_swap"), []string{
			hexBytes(params.SecretHash),
		})
	}
	if err != nil {
		return chains.WithdrawResult{}, err
	}

	return chains.WithdrawResult{TxRef: hash}, nil
}

// ValidateAddress accepts canonical Aptos account addresses: an optionally
// 0x-prefixed hex string of at most 64 digits.
func (a *Adapter) ValidateAddress(address string) bool {
	s := strings.TrimPrefix(address, "0x")
	if len(s) == 0 || len(s) > 64 {
		return false
	}
	_, err := hex.DecodeString(leftPadHex(s))
	return err == nil
}

func leftPadHex(s string) string {
	if len(s)%2 == 1 {
		return "0" + s
	}
	return s
}

func chainTag(side data.EscrowSide) uint8 {
	if side == data.EscrowSideSrc {
		return 1
	}
	return 2
}

func oppositeSide(side data.EscrowSide) data.EscrowSide {
	if side == data.EscrowSideSrc {
		return data.EscrowSideDst
	}
	return data.EscrowSideSrc
}
