package api

import (
	"comandas_server/api/auth"
	"comandas_server/api/customers"
	"comandas_server/api/debug"
	"comandas_server/api/health"
	"comandas_server/api/middleware"
	"comandas_server/api/products"
	"comandas_server/api/reports"
	"comandas_server/api/tickets"
	"comandas_server/services"
	"comandas_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	mw             *middleware.Middleware
	healthRoutes   *health.HealthRoutesManager
	authRoutes     *auth.AuthRoutesManager
	ticketRoutes   *tickets.TicketRoutesManager
	productRoutes  *products.ProductRoutesManager
	customerRoutes *customers.CustomerRoutesManager
	reportRoutes   *reports.ReportRoutesManager
	debugRoutes    *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, cfg *structs.Config, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		mw:             mw,
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, sm.CacheService, cfg, mw),
		ticketRoutes:   tickets.NewTicketRoutesManager(logger, sm.TicketService),
		productRoutes:  products.NewProductRoutesManager(logger, mw, sm.ProductService),
		customerRoutes: customers.NewCustomerRoutesManager(logger, mw, sm.CustomerService),
		reportRoutes:   reports.NewReportRoutesManager(logger, sm.ReportService),
		debugRoutes:    debug.NewDebugRoutesManager(logger, sm.CacheService, cfg.Server.Environment != "production"),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	// Public
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)

	// Operators only
	r.Group(func(r chi.Router) {
		r.Use(rm.mw.OperatorAuthMiddleware)
		rm.ticketRoutes.RegisterRoutes(r)
		rm.productRoutes.RegisterRoutes(r)
		rm.customerRoutes.RegisterRoutes(r)
		rm.reportRoutes.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(rm.mw.AdminAuthMiddleware)
			rm.debugRoutes.RegisterRoutes(r)
		})
	})
}
