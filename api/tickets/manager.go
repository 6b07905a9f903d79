package tickets

import (
	"comandas_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type TicketRoutesManager struct {
	logger        *gecho.Logger
	ticketService *services.TicketService
}

func NewTicketRoutesManager(logger *gecho.Logger, ticketService *services.TicketService) *TicketRoutesManager {
	return &TicketRoutesManager{
		logger:        logger,
		ticketService: ticketService,
	}
}

func (trm *TicketRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", trm.ListOpenTickets)
		r.Get("/board", trm.GetBoard)
		r.Post("/", trm.OpenTicket)

		r.Route("/{number}", func(r chi.Router) {
			r.Get("/", trm.GetTicket)
			r.Post("/reload", trm.ReloadTicket)
			r.Post("/items", trm.AddItem)
			r.Put("/items/{itemID}", trm.SetItemQuantity)
			r.Delete("/items/{itemID}", trm.RemoveItem)
			r.Put("/customer", trm.AssignCustomer)
			r.Post("/close", trm.CloseTicket)
		})
	})
}
