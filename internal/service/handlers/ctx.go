package handlers

import (
	"context"
	"net/http"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"gitlab.com/distributed_lab/logan/v3"
)

type ctxKey int

const (
	logCtxKey ctxKey = iota
	storeCtxKey
	busCtxKey
	chainsCtxKey
	engineCtxKey
	schedulerCtxKey
	coordinatorCtxKey
)

func CtxLog(entry *logan.Entry) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, logCtxKey, entry)
	}
}

func Log(r *http.Request) *logan.Entry {
	return r.Context().Value(logCtxKey).(*logan.Entry)
}

func CtxStore(s data.Store) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, storeCtxKey, s)
	}
}

func Store(r *http.Request) data.Store {
	return r.Context().Value(storeCtxKey).(data.Store)
}

func CtxBus(b *events.Bus) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, busCtxKey, b)
	}
}

func Bus(r *http.Request) *events.Bus {
	return r.Context().Value(busCtxKey).(*events.Bus)
}

func CtxChains(set chains.Set) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, chainsCtxKey, set)
	}
}

func Chains(r *http.Request) chains.Set {
	return r.Context().Value(chainsCtxKey).(chains.Set)
}

func CtxEngine(e *auction.Engine) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, engineCtxKey, e)
	}
}

func Engine(r *http.Request) *auction.Engine {
	return r.Context().Value(engineCtxKey).(*auction.Engine)
}

func CtxScheduler(s *auction.Scheduler) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, schedulerCtxKey, s)
	}
}

func Scheduler(r *http.Request) *auction.Scheduler {
	return r.Context().Value(schedulerCtxKey).(*auction.Scheduler)
}

func CtxCoordinator(c *escrow.Coordinator) func(context.Context) context.Context {
	return func(ctx context.Context) context.Context {
		return context.WithValue(ctx, coordinatorCtxKey, c)
	}
}

func Coordinator(r *http.Request) *escrow.Coordinator {
	return r.Context().Value(coordinatorCtxKey).(*escrow.Coordinator)
}
