package tickets

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (trm *TicketRoutesManager) OpenTicket(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OpenTicketRequest](r)
	if err != nil {
		trm.logger.Debug("Invalid open ticket body", gecho.Field("error", err))
		handling.WriteError(err, "Invalid body", trm.logger, w)
		return
	}

	ticket, err := trm.ticketService.Open(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Failed to open ticket", trm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Ticket opened"),
		gecho.WithData(ticket),
		gecho.Send(),
	)
}
