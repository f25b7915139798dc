package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error)
	// CheckIns and CheckOuts list confirmed arrivals/departures over an
	// inclusive date range, ordered by room then date.
	CheckIns(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
	CheckOuts(ctx context.Context, start, end time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter) ([]*ReservationView, error) {
	return q.readStore.List(ctx, filter)
}

func (q *reservationQueriesImpl) CheckIns(ctx context.Context, start, end time.Time) ([]*ReservationView, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	return q.readStore.CheckIns(ctx, start, end)
}

func (q *reservationQueriesImpl) CheckOuts(ctx context.Context, start, end time.Time) ([]*ReservationView, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	return q.readStore.CheckOuts(ctx, start, end)
}
