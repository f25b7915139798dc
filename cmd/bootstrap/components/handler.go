package components

import (
	"lodgekeeper/internal/handler"
	"lodgekeeper/internal/handler/api"
	"lodgekeeper/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewReservationHandler,
		api.NewVoucherHandler,
		api.NewReportHandler,
	),
	fx.Invoke(
		handler.NewRouter,
	),
)
