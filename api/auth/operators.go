package auth

import (
	"comandas_server/handling"
	"comandas_server/lib"
	"comandas_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegisterOperator(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterOperatorRequest](r)
	if err != nil {
		handling.WriteError(err, "Invalid body", arm.logger, w)
		return
	}

	operator, err := arm.authService.RegisterOperator(r.Context(), body)
	if err != nil {
		handling.WriteError(err, "Failed to register operator", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Operator registered"),
		gecho.WithData(operator),
		gecho.Send(),
	)
}
