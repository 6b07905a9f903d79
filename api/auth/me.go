package auth

import (
	"comandas_server/api/middleware"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Not authenticated"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"id":         claims.Sub,
			"username":   claims.Username,
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
