package auth

import (
	"comandas_server/api/middleware"
	"comandas_server/config"
	"comandas_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if ok {
		if err := arm.cacheService.BlacklistToken(r.Context(), claims.Jti, claims.Exp); err != nil {
			arm.logger.Error("Failed to blacklist access token during logout", gecho.Field("error", err))
			gecho.InternalServerError(w,
				gecho.WithMessage("Failed to logout"),
				gecho.Send(),
			)
			return
		}
	}

	lib.ClearAccessCookie(config.IsProduction(), w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
