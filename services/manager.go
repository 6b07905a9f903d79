package services

import (
	"comandas_server/database"
	"comandas_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService     *AuthService
	CacheService    *CacheService
	HealthService   *HealthService
	TicketService   *TicketService
	ProductService  *ProductService
	CustomerService *CustomerService
	ReportService   *ReportService
}

// NewServiceManager wires every service to store. db is nil when store lives in memory.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store Store) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)

	return &ServiceManager{
		AuthService:     NewAuthService(cfg, logger, store),
		CacheService:    cacheService,
		HealthService:   NewHealthService(logger, db, cacheService),
		TicketService:   NewTicketService(logger, cfg, store, store, store),
		ProductService:  NewProductService(logger, store, cacheService),
		CustomerService: NewCustomerService(logger, store),
		ReportService:   NewReportService(logger, store, store, store, store),
	}
}
