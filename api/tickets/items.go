package tickets

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (trm *TicketRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AddItemRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", trm.logger, w)
		return
	}

	ticket, err := trm.ticketService.AddItem(r.Context(), number, body.ProductID)
	if err != nil {
		handling.WriteError(err, "Failed to add item", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}

// SetItemQuantity handles PUT /tickets/{number}/items/{itemID}. A quantity below 1 removes the item.
func (trm *TicketRoutesManager) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}
	itemID, err := lib.URLParamUUID(r, "itemID")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid item id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SetQuantityRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", trm.logger, w)
		return
	}

	ticket, err := trm.ticketService.SetQuantity(r.Context(), number, itemID, *body.Quantity)
	if err != nil {
		handling.WriteError(err, "Failed to update item quantity", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}

func (trm *TicketRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}
	itemID, err := lib.URLParamUUID(r, "itemID")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid item id"), gecho.Send())
		return
	}

	ticket, err := trm.ticketService.RemoveItem(r.Context(), number, itemID)
	if err != nil {
		handling.WriteError(err, "Failed to remove item", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}

func (trm *TicketRoutesManager) AssignCustomer(w http.ResponseWriter, r *http.Request) {
	number, err := lib.URLParamInt(r, "number")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid ticket number"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AssignCustomerRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", trm.logger, w)
		return
	}

	ticket, err := trm.ticketService.AssignCustomer(r.Context(), number, body.CustomerID)
	if err != nil {
		handling.WriteError(err, "Failed to assign customer", trm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(ticket), gecho.Send())
}
