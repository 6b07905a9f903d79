package customers

import (
	"comandas_server/api/middleware"
	"comandas_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CustomerRoutesManager struct {
	logger          *gecho.Logger
	mw              *middleware.Middleware
	customerService *services.CustomerService
}

func NewCustomerRoutesManager(logger *gecho.Logger, mw *middleware.Middleware, customerService *services.CustomerService) *CustomerRoutesManager {
	return &CustomerRoutesManager{
		logger:          logger,
		mw:              mw,
		customerService: customerService,
	}
}

func (crm *CustomerRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", crm.ListCustomers)
		r.Post("/", crm.CreateCustomer)
		r.Get("/{id}", crm.GetCustomer)
		r.Put("/{id}", crm.UpdateCustomer)

		// Deleting detaches the customer from past tickets
		r.With(crm.mw.AdminAuthMiddleware).Delete("/{id}", crm.DeleteCustomer)
	})
}
