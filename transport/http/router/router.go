package router

import (
	"rental/internal/handlers/block"
	"rental/internal/handlers/booking"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	Block   block.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Block.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
