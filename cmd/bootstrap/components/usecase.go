package components

import (
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,

		queries.NewAvailabilityQueries,
		queries.NewOccupancyQueries,
		queries.NewRoomQueries,
		queries.NewReservationQueries,
		queries.NewVoucherQueries,
		queries.NewUserQueries,

		commands.NewBookingCommands,
		commands.NewVoucherCommands,
		commands.NewRoomCommands,
		commands.NewAuthCommands,
	),
)
