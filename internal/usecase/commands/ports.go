package commands

import (
	"context"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/domain/room"
	"lodgekeeper/internal/domain/user"
	"lodgekeeper/internal/domain/voucher"
	"lodgekeeper/internal/infra/db"
	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

// TxRunner executes a closure inside a transaction, retrying retryable aborts
// once before giving up.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error
}

type ReservationRepository interface {
	Create(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error
	Update(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error
	UpdateStatus(ctx context.Context, q db.Querier, rsv *reservation.Reservation) error
}

type RoomRepository interface {
	Create(ctx context.Context, q db.Querier, rm *room.Room) error
	Update(ctx context.Context, q db.Querier, rm *room.Room) error
}

type VoucherRepository interface {
	Create(ctx context.Context, q db.Querier, v *voucher.Voucher) error
	Update(ctx context.Context, q db.Querier, v *voucher.Voucher) error
	Link(ctx context.Context, q db.Querier, v *voucher.Voucher) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, q db.Querier, userID uuid.UUID, at time.Time) error
}

// Read-side lookups the write side depends on.

type ReservationReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	FindEntityByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	HasOverlap(ctx context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error)
}

type RoomReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error)
	FindEntityByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type VoucherReads interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.VoucherView, error)
	FindEntityByID(ctx context.Context, id uuid.UUID) (*voucher.Voucher, error)
}

type UserReads interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
