//go:build unit

package queries_test

import (
	"context"
	"testing"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/usecase/queries"
	queriesmock "lodgekeeper/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAvailabilityQueries(t *testing.T) (queries.AvailabilityQueries, *queriesmock.MockRoomReadStore, *queriesmock.MockReservationReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	rooms := queriesmock.NewMockRoomReadStore(ctrl)
	reservations := queriesmock.NewMockReservationReadStore(ctrl)
	return queries.NewAvailabilityQueries(rooms, reservations), rooms, reservations
}

func TestAvailabilityQueries_IsRoomAvailable(t *testing.T) {
	t.Parallel()

	roomID := uuid.New()
	roomView := &queries.RoomView{ID: roomID, Number: "5", Active: true}
	checkIn, checkOut := date(2025, 7, 1), date(2025, 7, 4)

	t.Run("free room", func(t *testing.T) {
		t.Parallel()
		q, rooms, reservations := newAvailabilityQueries(t)

		rooms.EXPECT().FindActiveByID(gomock.Any(), roomID).Return(roomView, nil)
		reservations.EXPECT().HasOverlap(gomock.Any(), roomID, gomock.Any(), nil).Return(false, nil)

		available, err := q.IsRoomAvailable(context.Background(), roomID, checkIn, checkOut)
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("occupied room", func(t *testing.T) {
		t.Parallel()
		q, rooms, reservations := newAvailabilityQueries(t)

		rooms.EXPECT().FindActiveByID(gomock.Any(), roomID).Return(roomView, nil)
		reservations.EXPECT().HasOverlap(gomock.Any(), roomID, gomock.Any(), nil).Return(true, nil)

		available, err := q.IsRoomAvailable(context.Background(), roomID, checkIn, checkOut)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("inverted dates read as unavailable, not as an error", func(t *testing.T) {
		t.Parallel()
		q, _, _ := newAvailabilityQueries(t)

		available, err := q.IsRoomAvailable(context.Background(), roomID, checkOut, checkIn)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("a zero-night period reads as unavailable", func(t *testing.T) {
		t.Parallel()
		q, _, _ := newAvailabilityQueries(t)

		available, err := q.IsRoomAvailable(context.Background(), roomID, checkIn, checkIn)
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("unknown room", func(t *testing.T) {
		t.Parallel()
		q, rooms, _ := newAvailabilityQueries(t)

		rooms.EXPECT().
			FindActiveByID(gomock.Any(), roomID).
			Return(nil, infra.NewRepoErr("room not found", infra.KindNotFound))

		_, err := q.IsRoomAvailable(context.Background(), roomID, checkIn, checkOut)
		assert.ErrorIs(t, err, queries.ErrRoomNotFound)
	})
}

func TestAvailabilityQueries_ListAvailableRooms(t *testing.T) {
	t.Parallel()

	t.Run("passes the stay through, no exclusion", func(t *testing.T) {
		t.Parallel()
		q, rooms, _ := newAvailabilityQueries(t)

		want := []*queries.RoomView{{Number: "2"}, {Number: "10"}}
		rooms.EXPECT().ListAvailable(gomock.Any(), gomock.Any(), nil).Return(want, nil)

		got, err := q.ListAvailableRooms(context.Background(), date(2025, 7, 1), date(2025, 7, 4))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("excluding a reservation forwards its id", func(t *testing.T) {
		t.Parallel()
		q, rooms, _ := newAvailabilityQueries(t)

		rsvID := uuid.New()
		rooms.EXPECT().
			ListAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ reservation.StayPeriod, excludeID *uuid.UUID) ([]*queries.RoomView, error) {
				require.NotNil(t, excludeID)
				assert.Equal(t, rsvID, *excludeID)
				return nil, nil
			})

		_, err := q.ListAvailableRoomsExcluding(context.Background(), date(2025, 7, 1), date(2025, 7, 4), rsvID)
		require.NoError(t, err)
	})

	t.Run("inverted dates yield no rooms, not an error", func(t *testing.T) {
		t.Parallel()
		q, _, _ := newAvailabilityQueries(t)

		got, err := q.ListAvailableRooms(context.Background(), date(2025, 7, 4), date(2025, 7, 1))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAvailabilityQueries_ListNeverBookedRooms(t *testing.T) {
	t.Parallel()

	q, rooms, _ := newAvailabilityQueries(t)

	want := []*queries.RoomView{{Number: "14"}}
	rooms.EXPECT().ListNeverBooked(gomock.Any()).Return(want, nil)

	got, err := q.ListNeverBookedRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
