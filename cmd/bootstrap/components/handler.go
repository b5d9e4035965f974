package components

import (
	"dorm-services/internal/handler"
	"dorm-services/internal/handler/api"
	"dorm-services/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewComplaintHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	reservation *api.ReservationHandler,
	complaint *api.ComplaintHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Reservation: reservation,
		Complaint:   complaint,
		Admin:       admin,
	}
}
