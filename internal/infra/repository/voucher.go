package repository

import (
	"context"

	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/infra/tx"
)

type VoucherRepository struct{}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{}
}

func (r *VoucherRepository) Create(ctx context.Context, q db.Querier, v *voucher.Voucher) error {
	_, err := q.Exec(ctx, `
		INSERT INTO vouchers (id, customer_name, voucher_number, check_in, check_out, raw_text, extracted_data, is_confirmed, reservation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID(), v.CustomerName(), v.VoucherNumber(), v.CheckIn(), v.CheckOut(),
		v.RawText(), v.ExtractedData(), v.IsConfirmed(), v.ReservationID(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to create voucher", err, kind)
		}
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

func (r *VoucherRepository) Update(ctx context.Context, q db.Querier, v *voucher.Voucher) error {
	tag, err := q.Exec(ctx, `
		UPDATE vouchers
		SET customer_name = $2, voucher_number = $3, check_in = $4, check_out = $5, updated_at = now()
		WHERE id = $1`,
		v.ID(), v.CustomerName(), v.VoucherNumber(), v.CheckIn(), v.CheckOut(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("voucher not found", infra.KindNotFound)
	}
	return nil
}

// Link records the reservation a confirmed voucher produced. It runs outside
// the booking transaction; a failure here leaves the reservation intact and
// the voucher unconfirmed.
func (r *VoucherRepository) Link(ctx context.Context, q db.Querier, v *voucher.Voucher) error {
	tag, err := q.Exec(ctx, `
		UPDATE vouchers
		SET is_confirmed = TRUE, reservation_id = $2, updated_at = now()
		WHERE id = $1 AND is_confirmed = FALSE`,
		v.ID(), v.ReservationID(),
	)
	if err != nil {
		if kind, ok := tx.ClassifyPgError(err); ok {
			return infra.WrapRepoErr("failed to link voucher", err, kind)
		}
		return infra.WrapRepoErr("failed to link voucher", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("voucher already confirmed or missing", infra.KindConflict)
	}
	return nil
}
