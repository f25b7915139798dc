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

// Room labels are usually numeric but annex rooms carry free-form labels, so
// ordering happens in Go via room.LessByNumber rather than a SQL cast that
// would fail on a label like "A1".

type RoomReadStore struct {
	q db.Querier
}

func NewRoomReadStore(q db.Querier) *RoomReadStore {
	return &RoomReadStore{q: q}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := s.q.QueryRow(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.id = $1`, id)

	v, err := scanRoomView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return v, nil
}

// FindActiveByID returns the room only when it exists and is active, the
// precondition for any booking write.
func (s *RoomReadStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := s.q.QueryRow(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.id = $1 AND r.is_active`, id)

	v, err := scanRoomView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("active room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active room by ID", err)
	}
	return v, nil
}

func (s *RoomReadStore) ListActive(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.is_active`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active rooms", err)
	}
	views, err := collectRoomViews(rows)
	if err != nil {
		return nil, err
	}
	sortRoomViews(views)
	return views, nil
}

// ListAvailable returns active rooms with no confirmed reservation
// overlapping the half-open interval [checkIn, checkOut).
func (s *RoomReadStore) ListAvailable(ctx context.Context, stay reservation.StayPeriod, excludeReservationID *uuid.UUID) ([]*queries.RoomView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.is_active
		  AND r.id NOT IN (
			SELECT DISTINCT b.room_id
			FROM reservations b
			WHERE b.status = 'confirmed'
			  AND b.check_in < $1
			  AND b.check_out > $2
			  AND ($3::uuid IS NULL OR b.id <> $3)
		  )`, stay.CheckOut(), stay.CheckIn(), excludeReservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available rooms", err)
	}
	views, err := collectRoomViews(rows)
	if err != nil {
		return nil, err
	}
	sortRoomViews(views)
	return views, nil
}

// ListNeverBooked returns active rooms with zero confirmed reservations of
// any date. The room-picker dropdown uses this interval-independent list.
func (s *RoomReadStore) ListNeverBooked(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := s.q.Query(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.is_active
		  AND r.id NOT IN (
			SELECT DISTINCT b.room_id
			FROM reservations b
			WHERE b.status = 'confirmed'
		  )`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list never-booked rooms", err)
	}
	views, err := collectRoomViews(rows)
	if err != nil {
		return nil, err
	}
	sortRoomViews(views)
	return views, nil
}

func (s *RoomReadStore) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM rooms WHERE is_active`).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count active rooms", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	var v queries.RoomView
	var createdAt, updatedAt time.Time
	if err := row.Scan(&v.ID, &v.Number, &v.Type, &v.Active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt = createdAt
	v.UpdatedAt = updatedAt
	return &v, nil
}

func sortRoomViews(views []*queries.RoomView) {
	sort.SliceStable(views, func(i, j int) bool {
		return room.LessByNumber(views[i].Number, views[j].Number)
	})
}

func collectRoomViews(rows pgx.Rows) ([]*queries.RoomView, error) {
	defer rows.Close()

	var result []*queries.RoomView
	for rows.Next() {
		v, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return result, nil
}

// FindEntityByID reconstructs the domain entity for administrative updates.
func (s *RoomReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := s.q.QueryRow(ctx, `
		SELECT r.id, r.room_number, COALESCE(r.room_type, ''), r.is_active, r.created_at, r.updated_at
		FROM rooms r
		WHERE r.id = $1`, id)

	var (
		rid                  uuid.UUID
		number, roomType     string
		active               bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&rid, &number, &roomType, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load room entity", err)
	}
	return room.Reconstruct(rid, number, roomType, active, createdAt, updatedAt), nil
}
