package service

import (
	"context"

	"github.com/auralshin/crosschain-evm-aptos-swap/internal/auction"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/chains"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/config"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/data/postgres"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/escrow"
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/events"
	"gitlab.com/distributed_lab/ape"
	"gitlab.com/distributed_lab/logan/v3"
)

type service struct {
	log *logan.Entry
	cfg config.Config

	store       data.Store
	bus         *events.Bus
	chains      chains.Set
	engine      *auction.Engine
	scheduler   *auction.Scheduler
	coordinator *escrow.Coordinator
}

func (s *service) run() error {
	s.log.Info("Service started")

	go s.resumeAuctions(context.Background())

	r := s.router()
	ape.Serve(context.Background(), r, s.cfg, ape.ServeOpts{})
	return nil
}

func newService(cfg config.Config) *service {
	log := cfg.Log()
	store := postgres.NewStore(cfg.DB())
	bus := events.NewBus(log)
	engine := auction.NewEngine(log, store, bus)

	return &service{
		log:         log,
		cfg:         cfg,
		store:       store,
		bus:         bus,
		chains:      cfg.Chains(),
		engine:      engine,
		scheduler:   auction.NewScheduler(log, engine.CloseAuction),
		coordinator: escrow.NewCoordinator(log, store, bus, cfg.Chains(), cfg.Timelocks()),
	}
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(); err != nil {
		panic(err)
	}
}
