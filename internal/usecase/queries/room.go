package queries

import (
	"context"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

// RoomDayCell is one room/date cell of the availability board.
type RoomDayCell struct {
	Date   time.Time     `json:"date"`
	Status RoomDayStatus `json:"status"`
}

type RoomBoardRow struct {
	Room RoomView      `json:"room"`
	Days []RoomDayCell `json:"days"`
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	ListActive(ctx context.Context) ([]*RoomView, error)
	// Board renders per-room day statuses over an inclusive date range: each
	// cell is available, check_in, check_out or booked.
	Board(ctx context.Context, start, end time.Time) ([]*RoomBoardRow, error)
}

type roomQueriesImpl struct {
	rooms        RoomReadStore
	reservations ReservationReadStore
}

func NewRoomQueries(rooms RoomReadStore, reservations ReservationReadStore) RoomQueries {
	return &roomQueriesImpl{rooms: rooms, reservations: reservations}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRoomNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) ListActive(ctx context.Context) ([]*RoomView, error) {
	return q.rooms.ListActive(ctx)
}

func (q *roomQueriesImpl) Board(ctx context.Context, start, end time.Time) ([]*RoomBoardRow, error) {
	start = reservation.Date(start)
	end = reservation.Date(end)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	endExclusive := end.AddDate(0, 0, 1)

	rooms, err := q.rooms.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	overlapping, err := q.reservations.ConfirmedOverlapping(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[uuid.UUID][]*ReservationView, len(rooms))
	for _, r := range overlapping {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	board := make([]*RoomBoardRow, 0, len(rooms))
	for _, rm := range rooms {
		row := &RoomBoardRow{Room: *rm}
		for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
			row.Days = append(row.Days, RoomDayCell{Date: d, Status: dayStatus(byRoom[rm.ID], d)})
		}
		board = append(board, row)
	}
	return board, nil
}

// dayStatus resolves one cell. A check-in wins over a check-out on the same
// day, so a turnover day reads as the arriving guest's.
func dayStatus(reservations []*ReservationView, date time.Time) RoomDayStatus {
	status := RoomDayAvailable
	for _, r := range reservations {
		switch {
		case r.CheckIn.Equal(date):
			return RoomDayCheckIn
		case date.After(r.CheckIn) && date.Before(r.CheckOut):
			status = RoomDayBooked
		case r.CheckOut.Equal(date) && status == RoomDayAvailable:
			status = RoomDayCheckOut
		}
	}
	return status
}
