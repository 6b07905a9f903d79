package products

import (
	"comandas_server/api/middleware"
	"comandas_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	mw             *middleware.Middleware
	productService *services.ProductService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	mw *middleware.Middleware,
	productService *services.ProductService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		mw:             mw,
		productService: productService,
	}
}

// RegisterRoutes expects an operator to be authenticated already; catalog writes need an admin.
func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchProducts)
	r.Get("/products/{id}", prm.FetchProductByID)

	r.Group(func(r chi.Router) {
		r.Use(prm.mw.AdminAuthMiddleware)
		r.Post("/products", prm.CreateProduct)
		r.Put("/products/{id}", prm.UpdateProduct)
		r.Patch("/products/{id}/active", prm.SetProductActive)
		r.Delete("/products/{id}", prm.DeleteProduct)
	})
}
