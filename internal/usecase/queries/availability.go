package queries

import (
	"context"
	"errors"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errs.New("check-out must be after check-in")
	ErrRoomNotFound     = errs.New("room not found")
)

type AvailabilityQueries interface {
	// IsRoomAvailable reports whether the room has no confirmed reservation
	// overlapping [checkIn, checkOut). A degenerate period (checkOut not
	// after checkIn) is never available.
	IsRoomAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
	// ListAvailableRooms returns active rooms free for the whole stay, in
	// numeric room-number order. A degenerate period yields no rooms.
	ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, error)
	// ListAvailableRoomsExcluding behaves like ListAvailableRooms but ignores
	// one reservation, so an edit can keep its own room in the choices.
	ListAvailableRoomsExcluding(ctx context.Context, checkIn, checkOut time.Time, reservationID uuid.UUID) ([]*RoomView, error)
	// ListNeverBookedRooms returns active rooms that have never held a
	// reservation in any state. It ignores dates entirely.
	ListNeverBookedRooms(ctx context.Context) ([]*RoomView, error)
}

type availabilityQueriesImpl struct {
	rooms        RoomReadStore
	reservations ReservationReadStore
}

func NewAvailabilityQueries(rooms RoomReadStore, reservations ReservationReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{rooms: rooms, reservations: reservations}
}

func (q *availabilityQueriesImpl) IsRoomAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	stay, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, reservation.ErrInvalidDateRange) {
			// A zero-night or inverted period fits no room.
			return false, nil
		}
		return false, err
	}

	if _, err := q.rooms.FindActiveByID(ctx, roomID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.Mark(err, ErrRoomNotFound)
		}
		return false, err
	}

	overlaps, err := q.reservations.HasOverlap(ctx, roomID, stay, nil)
	if err != nil {
		return false, err
	}
	return !overlaps, nil
}

func (q *availabilityQueriesImpl) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]*RoomView, error) {
	return q.listAvailable(ctx, checkIn, checkOut, nil)
}

func (q *availabilityQueriesImpl) ListAvailableRoomsExcluding(ctx context.Context, checkIn, checkOut time.Time, reservationID uuid.UUID) ([]*RoomView, error) {
	return q.listAvailable(ctx, checkIn, checkOut, &reservationID)
}

func (q *availabilityQueriesImpl) listAvailable(ctx context.Context, checkIn, checkOut time.Time, excludeReservationID *uuid.UUID) ([]*RoomView, error) {
	stay, err := reservation.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, reservation.ErrInvalidDateRange) {
			return []*RoomView{}, nil
		}
		return nil, err
	}
	return q.rooms.ListAvailable(ctx, stay, excludeReservationID)
}

func (q *availabilityQueriesImpl) ListNeverBookedRooms(ctx context.Context) ([]*RoomView, error) {
	return q.rooms.ListNeverBooked(ctx)
}
