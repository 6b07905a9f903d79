package auth

import (
	"comandas_server/config"
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Debug("Failed to extract request body", gecho.Field("error", err))
		handling.WriteError(err, "Invalid body", arm.logger, w)
		return
	}

	res, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			arm.logger.Warn("Login failed", gecho.Field("username", body.Username))
			gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
			return
		}
		handling.HandleError(err, "Login failed", arm.logger, w)
		return
	}

	lib.SetAccessCookie(res.AccessToken, res.ExpiresAt, config.IsProduction(), w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(res),
		gecho.Send(),
	)
}
