package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/pkg/errs"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrVoucherNotFound         = errs.New("voucher not found")
	ErrVoucherAlreadyConfirmed = errs.New("voucher is already confirmed")
	ErrVoucherMissingDates     = errs.New("voucher has no usable dates")
)

type RegisterVoucherInput struct {
	CustomerName  string
	VoucherNumber string
	CheckIn       *time.Time
	CheckOut      *time.Time
	RawText       string
	ExtractedData map[string]any
}

type ReviseVoucherInput struct {
	CustomerName  string
	VoucherNumber string
	CheckIn       *time.Time
	CheckOut      *time.Time
}

type ConfirmVoucherInput struct {
	RoomID uuid.UUID
	Notes  string
}

type VoucherCommands interface {
	RegisterVoucher(ctx context.Context, input RegisterVoucherInput) (*queries.VoucherView, error)
	ReviseVoucher(ctx context.Context, id uuid.UUID, input ReviseVoucherInput) (*queries.VoucherView, error)
	// ConfirmVoucher books the voucher's stay into a room and links the
	// voucher to the reservation it produced. The booking skips the read-side
	// availability pre-check; the commit-time constraint still rejects
	// overlaps. A failure to record the link never rolls the booking back.
	ConfirmVoucher(ctx context.Context, id uuid.UUID, input ConfirmVoucherInput) (*queries.ReservationView, error)
}

type voucherCommandsImpl struct {
	voucherRepo  VoucherRepository
	voucherReads VoucherReads
	booking      BookingCommands
	runner       TxRunner
}

func NewVoucherCommands(
	voucherRepo VoucherRepository,
	voucherReads VoucherReads,
	booking BookingCommands,
	runner TxRunner,
) VoucherCommands {
	return &voucherCommandsImpl{
		voucherRepo:  voucherRepo,
		voucherReads: voucherReads,
		booking:      booking,
		runner:       runner,
	}
}

func (c *voucherCommandsImpl) RegisterVoucher(ctx context.Context, input RegisterVoucherInput) (*queries.VoucherView, error) {
	v := voucher.NewVoucher(input.CustomerName, input.VoucherNumber, input.CheckIn, input.CheckOut, input.RawText, input.ExtractedData)

	err := c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.voucherRepo.Create(ctx, q, v)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c.view(ctx, v.ID())
}

func (c *voucherCommandsImpl) ReviseVoucher(ctx context.Context, id uuid.UUID, input ReviseVoucherInput) (*queries.VoucherView, error) {
	v, err := c.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Revise(input.CustomerName, input.VoucherNumber, input.CheckIn, input.CheckOut)
	err = c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
		return c.voucherRepo.Update(ctx, q, v)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return c.view(ctx, v.ID())
}

func (c *voucherCommandsImpl) ConfirmVoucher(ctx context.Context, id uuid.UUID, input ConfirmVoucherInput) (*queries.ReservationView, error) {
	v, err := c.loadPending(ctx, id)
	if err != nil {
		return nil, err
	}

	stay, err := v.Stay()
	if err != nil {
		if errors.Is(err, voucher.ErrMissingDates) {
			return nil, errs.Mark(err, ErrVoucherMissingDates)
		}
		return nil, errs.Mark(err, ErrInvalidDateRange)
	}

	rsvView, err := c.booking.CreateReservation(ctx, CreateReservationInput{
		RoomID:                input.RoomID,
		CustomerName:          v.CustomerName(),
		VoucherNumber:         v.VoucherNumber(),
		CheckIn:               stay.CheckIn(),
		CheckOut:              stay.CheckOut(),
		Notes:                 input.Notes,
		SkipAvailabilityCheck: true,
	})
	if err != nil {
		return nil, err
	}

	// The reservation is committed. Linking runs afterwards; if it fails the
	// booking stands and the voucher stays pending for a later retry.
	if err := v.MarkConfirmed(rsvView.ID); err == nil {
		linkErr := c.runner.Within(ctx, func(ctx context.Context, q db.Querier) error {
			return c.voucherRepo.Link(ctx, q, v)
		})
		if linkErr != nil {
			slog.Warn("failed to link voucher to reservation",
				"voucher_id", v.ID().String(),
				"reservation_id", rsvView.ID.String(),
				"error", linkErr.Error())
		}
	}

	return rsvView, nil
}

func (c *voucherCommandsImpl) loadPending(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	v, err := c.voucherReads.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrVoucherNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if v.IsConfirmed() {
		return nil, ErrVoucherAlreadyConfirmed
	}
	return v, nil
}

func (c *voucherCommandsImpl) view(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	view, err := c.voucherReads.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
