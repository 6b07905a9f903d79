package handling

import (
	"comandas_server/comanda"
	"comandas_server/lib"
	"comandas_server/services"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
}

// WriteError answers with the status that fits err. Anything unrecognised becomes a 500.
func WriteError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	var (
		conflict     *comanda.ConflictError
		empty        *comanda.EmptyTicketError
		insufficient *comanda.InsufficientPaymentError
		reverted     *comanda.RevertedError
		validation   *lib.ValidationError
	)

	switch {
	case errors.As(err, &conflict):
		gecho.Conflict(w, gecho.WithMessage(conflict.Error()), gecho.WithData(map[string]any{"number": conflict.Number}), gecho.Send())
		return
	case errors.As(err, &insufficient):
		gecho.BadRequest(w,
			gecho.WithMessage(insufficient.Error()),
			gecho.WithData(map[string]any{
				"total":    insufficient.Total,
				"tendered": insufficient.Tendered,
				"missing":  insufficient.Missing(),
			}),
			gecho.Send(),
		)
		return
	case errors.As(err, &empty):
		gecho.BadRequest(w, gecho.WithMessage(empty.Error()), gecho.Send())
		return
	case errors.As(err, &validation):
		gecho.BadRequest(w, gecho.WithMessage("Validation failed"), gecho.WithData(validation.Errors), gecho.Send())
		return
	case errors.As(err, &reverted):
		logger.Warn(msg, gecho.Field("error", err))
		gecho.ServiceUnavailable(w, gecho.WithMessage("The change could not be saved and was undone"), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidBody):
		gecho.BadRequest(w, gecho.WithMessage("Invalid body"), gecho.Send())
		return
	case errors.Is(err, comanda.ErrInvalidNumber),
		errors.Is(err, comanda.ErrInvalidMethod),
		errors.Is(err, comanda.ErrInvalidQuantity),
		errors.Is(err, comanda.ErrProductInactive),
		errors.Is(err, services.ErrNegativePrice):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case errors.Is(err, comanda.ErrTicketNotOpen), errors.Is(err, comanda.ErrItemNotFound), comanda.IsNotFound(err):
		gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case comanda.IsConflict(err):
		gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
	gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
}
