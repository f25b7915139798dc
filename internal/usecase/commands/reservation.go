package commands

import (
	"context"
	"errors"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/infra/tx"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange        = errs.New("check-out must be after check-in")
	ErrRoomNotFound            = errs.New("room not found")
	ErrNotAvailable            = errs.New("room is not available for the requested dates")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrReservationCancelled    = errs.New("reservation is cancelled")
	ErrDomainValidation        = errs.New("domain validation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateReservationInput struct {
	RoomID        uuid.UUID
	CustomerName  string
	VoucherNumber string
	CheckIn       time.Time
	CheckOut      time.Time
	Notes         string
	// SkipAvailabilityCheck bypasses the read-side pre-check. The exclusion
	// constraint still rejects an overlapping write at commit.
	SkipAvailabilityCheck bool
}

type EditReservationInput struct {
	RoomID        uuid.UUID
	CustomerName  string
	VoucherNumber string
	CheckIn       time.Time
	CheckOut      time.Time
	Notes         string
}

type BookingCommands interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*queries.ReservationView, error)
	EditReservation(ctx context.Context, id uuid.UUID, input EditReservationInput) (*queries.ReservationView, error)
	// CancelReservation is idempotent: cancelling an already-cancelled
	// reservation succeeds without touching the row.
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	reservationRepo  ReservationRepository
	reservationReads ReservationReads
	roomReads        RoomReads
	runner           TxRunner
}

func NewBookingCommands(
	reservationRepo ReservationRepository,
	reservationReads ReservationReads,
	roomReads RoomReads,
	runner TxRunner,
) BookingCommands {
	return &bookingCommandsImpl{
		reservationRepo:  reservationRepo,
		reservationReads: reservationReads,
		roomReads:        roomReads,
		runner:           runner,
	}
}

func (c *bookingCommandsImpl) CreateReservation(ctx context.Context, input CreateReservationInput) (*queries.ReservationView, error) {
	stay, err := reservation.NewStayPeriod(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	if _, err := c.roomReads.FindActiveByID(ctx, input.RoomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !input.SkipAvailabilityCheck {
		overlaps, err := c.reservationReads.HasOverlap(ctx, input.RoomID, stay, nil)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overlaps {
			return nil, ErrNotAvailable
		}
	}

	rsv, err := reservation.NewReservation(input.RoomID, input.CustomerName, input.VoucherNumber, stay, input.Notes)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.reservationRepo.Create(ctx, q, rsv)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}

	view, err := c.reservationReads.FindByID(ctx, rsv.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) EditReservation(ctx context.Context, id uuid.UUID, input EditReservationInput) (*queries.ReservationView, error) {
	rsv, err := c.reservationReads.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rsv.IsCancelled() {
		return nil, ErrReservationCancelled
	}

	stay, err := reservation.NewStayPeriod(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	if _, err := c.roomReads.FindActiveByID(ctx, input.RoomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The reservation being edited must not collide with itself.
	excludeID := rsv.ID()
	overlaps, err := c.reservationReads.HasOverlap(ctx, input.RoomID, stay, &excludeID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if overlaps {
		return nil, ErrNotAvailable
	}

	rsv.Reschedule(input.RoomID, stay)
	if err := rsv.Revise(input.CustomerName, input.VoucherNumber, input.Notes); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.reservationRepo.Update(ctx, q, rsv)
	})
	if err != nil {
		return nil, classifyWriteError(err)
	}

	view, err := c.reservationReads.FindByID(ctx, rsv.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	rsv, err := c.reservationReads.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrReservationNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rsv.IsCancelled() {
		return nil
	}

	rsv.Cancel()
	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.reservationRepo.UpdateStatus(ctx, q, rsv)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// classifyWriteError maps persistence failures from a booking write to
// usecase errors. Both a lost race on the exclusion constraint and an
// exhausted retry surface as the room simply not being available.
func classifyWriteError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrNotAvailable)
	case errors.Is(err, tx.ErrRetryExhausted):
		return errs.Mark(err, ErrNotAvailable)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrReservationNotFound)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrRoomNotFound)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
