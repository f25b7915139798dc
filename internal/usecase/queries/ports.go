package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/domain/user"

	"github.com/google/uuid"
)

// Read-side store interfaces, satisfied by internal/infra/readstore.

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListActive(ctx context.Context) ([]*RoomView, error)
	ListAvailable(ctx context.Context, stay reservation.StayPeriod, excludeReservationID *uuid.UUID) ([]*RoomView, error)
	ListNeverBooked(ctx context.Context) ([]*RoomView, error)
	CountActive(ctx context.Context) (int, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	HasOverlap(ctx context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	CheckIns(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
	CheckOuts(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
	ConfirmedOverlapping(ctx context.Context, start, endExclusive time.Time) ([]*ReservationView, error)
}

type OccupancyReadStore interface {
	CountBookedOn(ctx context.Context, date time.Time) (int, error)
	CountBookedOverlapping(ctx context.Context, start, endExclusive time.Time) (int, error)
	CountBookedPerDay(ctx context.Context, start, endExclusive time.Time) (map[time.Time]int, error)
	CountBookingsStartingIn(ctx context.Context, start, endExclusive time.Time) (int, error)
}

type VoucherReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherView, error)
	List(ctx context.Context, pendingOnly bool, limit, offset int) ([]*VoucherView, error)
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
