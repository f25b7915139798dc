package repository

import (
	"context"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/infra/tx"
)

// ReservationRepository persists reservations. Writes that violate the
// per-room exclusion constraint surface as KindConflict so the usecase layer
// can translate them to a not-available outcome.
type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error {
	_, err := q.Exec(ctx, `
		INSERT INTO reservations (id, room_id, customer_name, voucher_number, check_in, check_out, status, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''))`,
		rsv.ID(), rsv.RoomID(), rsv.CustomerName(), rsv.VoucherNumber(),
		rsv.Stay().CheckIn(), rsv.Stay().CheckOut(), rsv.Status().String(), rsv.Notes(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to create reservation", err, kind)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error {
	tag, err := q.Exec(ctx, `
		UPDATE reservations
		SET room_id = $2,
		    customer_name = $3,
		    voucher_number = NULLIF($4, ''),
		    check_in = $5,
		    check_out = $6,
		    status = $7,
		    notes = NULLIF($8, ''),
		    updated_at = now()
		WHERE id = $1`,
		rsv.ID(), rsv.RoomID(), rsv.CustomerName(), rsv.VoucherNumber(),
		rsv.Stay().CheckIn(), rsv.Stay().CheckOut(), rsv.Status().String(), rsv.Notes(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to update reservation", err, kind)
		}
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	return nil
}

// UpdateStatus flips only the status column. Used by cancellation, which must
// not touch the stay columns.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error {
	tag, err := q.Exec(ctx, `
		UPDATE reservations
		SET status = $2, updated_at = now()
		WHERE id = $1`,
		rsv.ID(), rsv.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("reservation not found", infra.KindNotFound)
	}
	return nil
}
