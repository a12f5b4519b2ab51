package service

import (
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/service/handlers"
	"github.com/go-chi/chi/v5"
	"gitlab.com/distributed_lab/ape"
)

func (s *service) router() chi.Router {
	r := chi.NewRouter()

	r.Use(
		ape.RecoverMiddleware(s.log),
		ape.LoganMiddleware(s.log),
		ape.CtxMiddleware(
			handlers.CtxLog(s.log),
			handlers.CtxStore(s.store),
			handlers.CtxBus(s.bus),
			handlers.CtxChains(s.chains),
			handlers.CtxEngine(s.engine),
			handlers.CtxScheduler(s.scheduler),
			handlers.CtxCoordinator(s.coordinator),
		),
	)

	r.Route("/user", func(r chi.Router) {
		r.Post("/orders", handlers.CreateOrder)
		r.Get("/orders", handlers.ListOrders)
		r.Get("/orders/{id}", handlers.GetOrder)
		r.Post("/orders/{id}/secret", handlers.RevealSecret)
	})

	r.Route("/resolver", func(r chi.Router) {
		r.Post("/orders/{id}/bids", handlers.PlaceBid)
		r.Post("/orders/{id}/close-auction", handlers.CloseAuction)
		r.Post("/orders/{id}/source-escrow", handlers.CreateSourceEscrow)
		r.Post("/orders/{id}/destination-escrow", handlers.CreateDestinationEscrow)
		r.Post("/orders/{id}/withdraw", handlers.Withdraw)
	})

	r.Get("/orders/auction", handlers.OrdersWebsocket)

	return r
}
