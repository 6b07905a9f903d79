package auth

import (
	"comandas_server/api/middleware"
	"comandas_server/services"
	"comandas_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	cacheService *services.CacheService
	cfg          *structs.Config
	mw           *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	authService *services.AuthService,
	cacheService *services.CacheService,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:       logger,
		authService:  authService,
		cacheService: cacheService,
		cfg:          cfg,
		mw:           mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", arm.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.OperatorAuthMiddleware)
			r.Get("/me", arm.HandleMe)
			r.Post("/logout", arm.HandleLogout)

			r.With(arm.mw.AdminAuthMiddleware).Post("/operators", arm.HandleRegisterOperator)
		})
	})
}
