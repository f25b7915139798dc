package readstore

import (
	"context"
	"errors"
	"time"

	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VoucherReadStore struct {
	q db.Querier
}

func NewVoucherReadStore(q db.Querier) *VoucherReadStore {
	return &VoucherReadStore{q: q}
}

func (s *VoucherReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error) {
	row := s.q.QueryRow(ctx, `
		SELECT v.id, COALESCE(v.customer_name, ''), COALESCE(v.voucher_number, ''),
		       v.check_in, v.check_out, COALESCE(v.raw_text, ''), v.extracted_data,
		       v.is_confirmed, v.reservation_id, v.created_at, v.updated_at
		FROM vouchers v
		WHERE v.id = $1`, id)

	var view queries.VoucherView
	if err := row.Scan(
		&view.ID, &view.CustomerName, &view.VoucherNumber,
		&view.CheckIn, &view.CheckOut, &view.RawText, &view.ExtractedData,
		&view.IsConfirmed, &view.ReservationID, &view.CreatedAt, &view.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by ID", err)
	}
	return &view, nil
}

// FindEntityByID reconstructs the domain entity for revise and confirm flows.
func (s *VoucherReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error) {
	row := s.q.QueryRow(ctx, `
		SELECT v.id, COALESCE(v.customer_name, ''), COALESCE(v.voucher_number, ''),
		       v.check_in, v.check_out, COALESCE(v.raw_text, ''), v.extracted_data,
		       v.is_confirmed, v.reservation_id, v.created_at, v.updated_at
		FROM vouchers v
		WHERE v.id = $1`, id)

	var (
		vid                         uuid.UUID
		customerName, voucherNumber string
		checkIn, checkOut           *time.Time
		rawText                     string
		extractedData               map[string]any
		confirmed                   bool
		reservationID               *uuid.UUID
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(
		&vid, &customerName, &voucherNumber, &checkIn, &checkOut,
		&rawText, &extractedData, &confirmed, &reservationID, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load voucher entity", err)
	}

	return voucher.Reconstruct(
		vid, customerName, voucherNumber, checkIn, checkOut,
		rawText, extractedData, confirmed, reservationID, createdAt, updatedAt,
	), nil
}

// List returns vouchers newest-first, optionally filtered to unconfirmed ones.
func (s *VoucherReadStore) List(ctx context.Context, pendingOnly bool, limit, offset int) ([]*queries.VoucherView, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.q.Query(ctx, `
		SELECT v.id, COALESCE(v.customer_name, ''), COALESCE(v.voucher_number, ''),
		       v.check_in, v.check_out, COALESCE(v.raw_text, ''), v.extracted_data,
		       v.is_confirmed, v.reservation_id, v.created_at, v.updated_at
		FROM vouchers v
		WHERE ($1 = FALSE OR v.is_confirmed = FALSE)
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3`, pendingOnly, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers", err)
	}
	defer rows.Close()

	views := make([]*queries.VoucherView, 0)
	for rows.Next() {
		var view queries.VoucherView
		if err := rows.Scan(
			&view.ID, &view.CustomerName, &view.VoucherNumber,
			&view.CheckIn, &view.CheckOut, &view.RawText, &view.ExtractedData,
			&view.IsConfirmed, &view.ReservationID, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate voucher rows", err)
	}
	return views, nil
}
