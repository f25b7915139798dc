package readstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/domain/room"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationViewColumns = `
	b.id, b.room_id, r.room_number, b.customer_name, b.voucher_number,
	b.check_in, b.check_out, b.status, b.notes, b.created_at, b.updated_at`

type ReservationReadStore struct {
	q db.Querier
}

func NewReservationReadStore(q db.Querier) *ReservationReadStore {
	return &ReservationReadStore{q: q}
}

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+reservationViewColumns+`
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.id = $1`, id)

	v, err := scanReservationView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return v, nil
}

// FindEntityByID reconstructs the domain entity for edit and cancel flows.
func (s *ReservationReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := s.q.QueryRow(ctx, `
		SELECT b.id, b.room_id, b.customer_name, COALESCE(b.voucher_number, ''),
		       b.check_in, b.check_out, b.status, COALESCE(b.notes, ''),
		       b.created_at, b.updated_at
		FROM reservations b
		WHERE b.id = $1`, id)

	var (
		rid, roomID                 uuid.UUID
		customerName, voucherNumber string
		checkIn, checkOut           time.Time
		status, notes               string
		createdAt, updatedAt        time.Time
	)
	if err := row.Scan(&rid, &roomID, &customerName, &voucherNumber, &checkIn, &checkOut, &status, &notes, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load reservation entity", err)
	}

	stay, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation has invalid stay period", err)
	}

	return reservation.Reconstruct(
		rid, roomID, customerName, voucherNumber, stay,
		reservation.Status(status), notes, createdAt, updatedAt,
	), nil
}

// HasOverlap reports whether any confirmed reservation on the room, other
// than excludeID, intersects the half-open interval [checkIn, checkOut).
func (s *ReservationReadStore) HasOverlap(ctx context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := s.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM reservations b
			WHERE b.room_id = $1
			  AND b.status = 'confirmed'
			  AND b.check_in < $2
			  AND b.check_out > $3
			  AND ($4::uuid IS NULL OR b.id <> $4)
		)`, roomID, stay.CheckOut(), stay.CheckIn(), excludeID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return exists, nil
}

func (s *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.q.Query(ctx, `
		SELECT `+reservationViewColumns+`
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		WHERE ($1 = '' OR b.customer_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR b.voucher_number ILIKE '%' || $2 || '%')
		  AND ($3::date IS NULL OR b.check_in >= $3)
		  AND ($4::date IS NULL OR b.check_out <= $4)
		ORDER BY b.created_at DESC
		LIMIT $5 OFFSET $6`,
		filter.CustomerName, filter.VoucherNumber, filter.CheckInFrom, filter.CheckOutTo, limit, filter.Offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collectReservationViews(rows)
}

// CheckIns returns confirmed reservations whose check-in date falls within
// the inclusive range, ordered by room number then check-in date.
func (s *ReservationReadStore) CheckIns(ctx context.Context, start, end time.Time) ([]*queries.ReservationView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+reservationViewColumns+`
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status = 'confirmed'
		  AND b.check_in >= $1 AND b.check_in <= $2
		ORDER BY b.check_in`, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list check-ins", err)
	}
	views, err := collectReservationViews(rows)
	if err != nil {
		return nil, err
	}
	sortViewsByRoomNumber(views)
	return views, nil
}

// CheckOuts is the same projection keyed on check-out date.
func (s *ReservationReadStore) CheckOuts(ctx context.Context, start, end time.Time) ([]*queries.ReservationView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+reservationViewColumns+`
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status = 'confirmed'
		  AND b.check_out >= $1 AND b.check_out <= $2
		ORDER BY b.check_out`, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list check-outs", err)
	}
	views, err := collectReservationViews(rows)
	if err != nil {
		return nil, err
	}
	sortViewsByRoomNumber(views)
	return views, nil
}

// ConfirmedOverlapping returns confirmed reservations intersecting
// [start, endExclusive) across all rooms, for the availability board. Stays
// whose check-out equals start are included: the board marks the departure
// day itself, so a stay ending on the window's first day still matters.
func (s *ReservationReadStore) ConfirmedOverlapping(ctx context.Context, start, endExclusive time.Time) ([]*queries.ReservationView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+reservationViewColumns+`
		FROM reservations b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.status = 'confirmed'
		  AND b.check_in < $1 AND b.check_out >= $2
		ORDER BY b.check_in`, endExclusive, start)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping reservations", err)
	}
	return collectReservationViews(rows)
}

// sortViewsByRoomNumber groups report rows by room label. The stable sort
// keeps the date order the query established within each room.
func sortViewsByRoomNumber(views []*queries.ReservationView) {
	sort.SliceStable(views, func(i, j int) bool {
		return room.LessByNumber(views[i].RoomNumber, views[j].RoomNumber)
	})
}

func scanReservationView(row rowScanner) (*queries.ReservationView, error) {
	var v queries.ReservationView
	if err := row.Scan(
		&v.ID, &v.RoomID, &v.RoomNumber, &v.CustomerName, &v.VoucherNumber,
		&v.CheckIn, &v.CheckOut, &v.Status, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func collectReservationViews(rows pgx.Rows) ([]*queries.ReservationView, error) {
	defer rows.Close()

	var result []*queries.ReservationView
	for rows.Next() {
		v, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
