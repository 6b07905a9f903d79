package tickets

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (trm *TicketRoutesManager) CloseTicket(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CloseTicketRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", trm.logger, w)
		return
	}

	result, err := trm.ticketService.Close(r.Context(), number, body)
	if err != nil {
		handling.WriteError(err, "Failed to close ticket", trm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Ticket closed"),
		gecho.WithData(result),
		gecho.Send(),
	)
}
