package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains/aptos"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains/evm"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const defaultRequestTimeout = 10 * time.Second

func (c *config) Chains() chains.Set {
	return c.chainsOnce.Do(func() interface{} {
		set := chains.Set{
			data.ChainEVM:   c.evmAdapter(),
			data.ChainAptos: c.aptosAdapter(),
		}
		return set
	}).(chains.Set)
}

func (c *config) evmAdapter() *evm.Adapter {
	var cfg struct {
		RPC        string         `fig:"rpc,required"`
		ChainID    int64          `fig:"chain_id,required"`
		Resolver   common.Address `fig:"resolver,required"`
		Factory    common.Address `fig:"factory,required"`
		PrivateKey string         `fig:"private_key,required"`
	}

	err := figure.Out(&cfg).
		With(figure.EthereumHooks).
		From(kv.MustGetStringMap(c.getter, "evm")).
		Please()
	if err != nil {
		panic(errors.Wrap(err, "failed to figure out evm"))
	}

	cli, err := ethclient.Dial(cfg.RPC)
	if err != nil {
		panic(errors.Wrap(err, "failed to connect to evm RPC provider"))
	}

	key, err := crypto.HexToECDSA(cfg.PrivateKey)
	if err != nil {
		panic(errors.Wrap(err, "failed to parse evm private key"))
	}

	adapter, err := evm.New(c.Log(), cli, big.NewInt(cfg.ChainID), cfg.Resolver, cfg.Factory, key)
	if err != nil {
		panic(errors.Wrap(err, "failed to create evm adapter"))
	}
	return adapter
}

func (c *config) aptosAdapter() *aptos.Adapter {
	var cfg struct {
		Endpoint       string        `fig:"endpoint,required"`
		Module         string        `fig:"module,required"`
		Address        string        `fig:"address,required"`
		PrivateKey     string        `fig:"private_key,required"`
		RequestTimeout time.Duration `fig:"request_timeout"`
	}

	err := figure.Out(&cfg).
		From(kv.MustGetStringMap(c.getter, "aptos")).
		Please()
	if err != nil {
		panic(errors.Wrap(err, "failed to figure out aptos"))
	}

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	seed, err := hex.DecodeString(cfg.PrivateKey)
	if err != nil || len(seed) != ed25519.SeedSize {
		panic(errors.New("aptos private key must be a 32-byte hex seed"))
	}

	return aptos.New(c.Log(), cfg.Endpoint, cfg.Module, cfg.Address, ed25519.NewKeyFromSeed(seed), cfg.RequestTimeout)
}
