package tickets

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (trm *TicketRoutesManager) ListOpenTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := trm.ticketService.ListOpen(r.Context())
	if err != nil {
		handling.WriteError(err, "Failed to list open tickets", trm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"tickets": tickets,
			"count":   len(tickets),
		}),
		gecho.Send(),
	)
}

func (trm *TicketRoutesManager) GetBoard(w http.ResponseWriter, r *http.Request) {
	slots, err := trm.ticketService.Board(r.Context())
	if err != nil {
		handling.WriteError(err, "Failed to build ticket board", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(slots), gecho.Send())
}

func (trm *TicketRoutesManager) GetTicket(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}

	ticket, err := trm.ticketService.Get(r.Context(), number)
	if err != nil {
		handling.WriteError(err, "Failed to fetch ticket", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}

func (trm *TicketRoutesManager) ReloadTicket(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}

	ticket, err := trm.ticketService.Reload(r.Context(), number)
	if err != nil {
		handling.WriteError(err, "Failed to reload ticket", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}
