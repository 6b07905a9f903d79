package customers

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListCustomers handles GET /customers?search= matching name or phone
func (crm *CustomerRoutesManager) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := crm.customerService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		handling.WriteError(err, "Failed to list customers", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"customers": customers,
			"count":     len(customers),
		}),
		gecho.Send(),
	)
}

func (crm *CustomerRoutesManager) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid customer id"), gecho.Send())
		return
	}

	customer, err := crm.customerService.Get(r.Context(), id)
	if err != nil {
		handling.WriteError(err, "Failed to fetch customer", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(customer), gecho.Send())
}

func (crm *CustomerRoutesManager) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CustomerRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", crm.logger, w)
		return
	}

	customer, err := crm.customerService.Create(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Failed to create customer", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Customer created"),
		gecho.WithData(customer),
		gecho.Send(),
	)
}

func (crm *CustomerRoutesManager) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid customer id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CustomerRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", crm.logger, w)
		return
	}

	customer, err := crm.customerService.Update(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Failed to update customer", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(customer), gecho.Send())
}

func (crm *CustomerRoutesManager) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := lib.URLParamUUID(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid customer id"), gecho.Send())
		return
	}

	if err := crm.customerService.Delete(r.Context(), id); err != nil {
		handling.WriteError(err, "Failed to delete customer", crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Customer deleted"), gecho.Send())
}
