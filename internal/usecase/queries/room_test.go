//go:build unit

package queries_test

import (
	"context"
	"testing"

	"lodgekeeper/internal/usecase/queries"
	queriesmock "lodgekeeper/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRoomQueries(t *testing.T) (queries.RoomQueries, *queriesmock.MockRoomReadStore, *queriesmock.MockReservationReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	rooms := queriesmock.NewMockRoomReadStore(ctrl)
	reservations := queriesmock.NewMockReservationReadStore(ctrl)
	return queries.NewRoomQueries(rooms, reservations), rooms, reservations
}

func TestRoomQueries_Board(t *testing.T) {
	t.Parallel()

	t.Run("marks arrivals, departures and booked nights", func(t *testing.T) {
		t.Parallel()
		q, rooms, reservations := newRoomQueries(t)

		roomA := &queries.RoomView{ID: uuid.New(), Number: "1", Active: true}
		roomB := &queries.RoomView{ID: uuid.New(), Number: "2", Active: true}
		start, end := date(2025, 7, 1), date(2025, 7, 5)

		rooms.EXPECT().ListActive(gomock.Any()).Return([]*queries.RoomView{roomA, roomB}, nil)
		reservations.EXPECT().
			ConfirmedOverlapping(gomock.Any(), start, date(2025, 7, 6)).
			Return([]*queries.ReservationView{
				{RoomID: roomA.ID, CheckIn: date(2025, 7, 2), CheckOut: date(2025, 7, 4)},
			}, nil)

		board, err := q.Board(context.Background(), start, end)
		require.NoError(t, err)
		require.Len(t, board, 2)

		statuses := func(row *queries.RoomBoardRow) []queries.RoomDayStatus {
			got := make([]queries.RoomDayStatus, 0, len(row.Days))
			for _, cell := range row.Days {
				got = append(got, cell.Status)
			}
			return got
		}

		assert.Equal(t, []queries.RoomDayStatus{
			queries.RoomDayAvailable,
			queries.RoomDayCheckIn,
			queries.RoomDayBooked,
			queries.RoomDayCheckOut,
			queries.RoomDayAvailable,
		}, statuses(board[0]))

		assert.Equal(t, []queries.RoomDayStatus{
			queries.RoomDayAvailable,
			queries.RoomDayAvailable,
			queries.RoomDayAvailable,
			queries.RoomDayAvailable,
			queries.RoomDayAvailable,
		}, statuses(board[1]))
	})

	t.Run("the arriving guest owns a turnover day", func(t *testing.T) {
		t.Parallel()
		q, rooms, reservations := newRoomQueries(t)

		rm := &queries.RoomView{ID: uuid.New(), Number: "1", Active: true}
		turnover := date(2025, 7, 3)

		rooms.EXPECT().ListActive(gomock.Any()).Return([]*queries.RoomView{rm}, nil)
		reservations.EXPECT().
			ConfirmedOverlapping(gomock.Any(), turnover, date(2025, 7, 4)).
			Return([]*queries.ReservationView{
				{RoomID: rm.ID, CheckIn: date(2025, 7, 1), CheckOut: turnover},
				{RoomID: rm.ID, CheckIn: turnover, CheckOut: date(2025, 7, 6)},
			}, nil)

		board, err := q.Board(context.Background(), turnover, turnover)
		require.NoError(t, err)
		require.Len(t, board, 1)
		require.Len(t, board[0].Days, 1)
		assert.Equal(t, queries.RoomDayCheckIn, board[0].Days[0].Status)
	})

	t.Run("a stay ending on the first board day marks a departure", func(t *testing.T) {
		t.Parallel()
		q, rooms, reservations := newRoomQueries(t)

		rm := &queries.RoomView{ID: uuid.New(), Number: "1", Active: true}
		start, end := date(2026, 8, 5), date(2026, 8, 6)

		rooms.EXPECT().ListActive(gomock.Any()).Return([]*queries.RoomView{rm}, nil)
		reservations.EXPECT().
			ConfirmedOverlapping(gomock.Any(), start, date(2026, 8, 7)).
			Return([]*queries.ReservationView{
				{RoomID: rm.ID, CheckIn: date(2026, 8, 1), CheckOut: start},
			}, nil)

		board, err := q.Board(context.Background(), start, end)
		require.NoError(t, err)
		require.Len(t, board, 1)
		require.Len(t, board[0].Days, 2)
		assert.Equal(t, queries.RoomDayCheckOut, board[0].Days[0].Status)
		assert.Equal(t, queries.RoomDayAvailable, board[0].Days[1].Status)
	})

	t.Run("end before start", func(t *testing.T) {
		t.Parallel()
		q, _, _ := newRoomQueries(t)

		_, err := q.Board(context.Background(), date(2025, 7, 5), date(2025, 7, 1))
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})
}
