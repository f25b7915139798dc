//go:build e2e

package e2e

import (
	"context"
	"sync"
	"testing"
	"time"

	"lodgekeeper/internal/infra/readstore"
	"lodgekeeper/internal/infra/repository"
	"lodgekeeper/internal/infra/tx"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/tests/common/dbtest"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	suite.Suite
	pool         *pgxpool.Pool
	rooms        *readstore.RoomReadStore
	booking      commands.BookingCommands
	availability queries.AvailabilityQueries
	occupancy    queries.OccupancyQueries
}

func (s *BookingE2ETestSuite) SetupSuite() {
	s.pool = setupTestDatabase(s.T())

	rooms := readstore.NewRoomReadStore(s.pool)
	s.rooms = rooms
	reservations := readstore.NewReservationReadStore(s.pool)
	occupancy := readstore.NewOccupancyReadStore(s.pool)
	runner := tx.NewRunner(s.pool)

	s.booking = commands.NewBookingCommands(repository.NewReservationRepository(), reservations, rooms, runner)
	s.availability = queries.NewAvailabilityQueries(rooms, reservations)
	s.occupancy = queries.NewOccupancyQueries(rooms, reservations, occupancy)
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

func (s *BookingE2ETestSuite) date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *BookingE2ETestSuite) TestOverlapPrevention() {
	ctx := context.Background()
	roomID := dbtest.InsertRoom(s.T(), s.pool, "101", "double")

	first, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
		RoomID:       roomID,
		CustomerName: "Jane Banda",
		CheckIn:      s.date(2025, 7, 10),
		CheckOut:     s.date(2025, 7, 15),
	})
	s.Require().NoError(err)
	s.Equal("confirmed", first.Status)

	s.Run("an overlapping stay is rejected", func() {
		_, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
			RoomID:       roomID,
			CustomerName: "John Phiri",
			CheckIn:      s.date(2025, 7, 12),
			CheckOut:     s.date(2025, 7, 18),
		})
		s.ErrorIs(err, commands.ErrNotAvailable)
	})

	s.Run("the constraint also rejects when the pre-check is skipped", func() {
		_, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
			RoomID:                roomID,
			CustomerName:          "John Phiri",
			CheckIn:               s.date(2025, 7, 12),
			CheckOut:              s.date(2025, 7, 18),
			SkipAvailabilityCheck: true,
		})
		s.ErrorIs(err, commands.ErrNotAvailable)
		s.Equal(1, dbtest.CountReservations(s.T(), s.pool, roomID, "confirmed"))
	})

	s.Run("a back-to-back stay on the check-out day is allowed", func() {
		next, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
			RoomID:       roomID,
			CustomerName: "John Phiri",
			CheckIn:      s.date(2025, 7, 15),
			CheckOut:     s.date(2025, 7, 18),
		})
		s.Require().NoError(err)
		s.Equal("confirmed", next.Status)
	})
}

func (s *BookingE2ETestSuite) TestConcurrentOverlappingCreates() {
	ctx := context.Background()
	roomID := dbtest.InsertRoom(s.T(), s.pool, "104", "double")

	// Two writers race for the same dates; the exclusion constraint is the
	// only arbiter since both pre-checks can pass before either commits.
	start := make(chan struct{})
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = s.booking.CreateReservation(ctx, commands.CreateReservationInput{
				RoomID:       roomID,
				CustomerName: "Jane Banda",
				CheckIn:      s.date(2025, 10, 10),
				CheckOut:     s.date(2025, 10, 15),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			s.ErrorIs(err, commands.ErrNotAvailable)
		}
	}
	s.Equal(1, winners, "exactly one writer may confirm the stay")
	s.Equal(1, dbtest.CountReservations(s.T(), s.pool, roomID, "confirmed"))
}

func (s *BookingE2ETestSuite) TestCancelledStaysFreeTheDates() {
	ctx := context.Background()
	roomID := dbtest.InsertRoom(s.T(), s.pool, "102", "single")

	first, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
		RoomID:       roomID,
		CustomerName: "Jane Banda",
		CheckIn:      s.date(2025, 8, 1),
		CheckOut:     s.date(2025, 8, 5),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.booking.CancelReservation(ctx, first.ID))
	// idempotent
	s.Require().NoError(s.booking.CancelReservation(ctx, first.ID))

	available, err := s.availability.IsRoomAvailable(ctx, roomID, s.date(2025, 8, 1), s.date(2025, 8, 5))
	s.Require().NoError(err)
	s.True(available, "a cancelled stay must not block the dates")

	_, err = s.booking.CreateReservation(ctx, commands.CreateReservationInput{
		RoomID:       roomID,
		CustomerName: "John Phiri",
		CheckIn:      s.date(2025, 8, 1),
		CheckOut:     s.date(2025, 8, 5),
	})
	s.NoError(err, "the freed dates must be bookable again")
}

func (s *BookingE2ETestSuite) TestEditIgnoresOwnDates() {
	ctx := context.Background()
	roomID := dbtest.InsertRoom(s.T(), s.pool, "103", "double")

	rsv, err := s.booking.CreateReservation(ctx, commands.CreateReservationInput{
		RoomID:       roomID,
		CustomerName: "Jane Banda",
		CheckIn:      s.date(2025, 9, 1),
		CheckOut:     s.date(2025, 9, 5),
	})
	s.Require().NoError(err)

	// extend the same stay by two nights; the overlap with itself must not
	// block the edit
	updated, err := s.booking.EditReservation(ctx, rsv.ID, commands.EditReservationInput{
		RoomID:       roomID,
		CustomerName: "Jane Banda",
		CheckIn:      s.date(2025, 9, 1),
		CheckOut:     s.date(2025, 9, 7),
	})
	s.Require().NoError(err)
	s.Equal(s.date(2025, 9, 7), updated.CheckOut)
}

func (s *BookingE2ETestSuite) TestListingSurvivesNonNumericLabels() {
	ctx := context.Background()
	dbtest.InsertRoom(s.T(), s.pool, "12", "double")
	dbtest.InsertRoom(s.T(), s.pool, "Annex", "single")
	dbtest.InsertRoom(s.T(), s.pool, "3", "single")

	views, err := s.rooms.ListActive(ctx)
	s.Require().NoError(err, "a non-numeric label must not break the listing")

	pos := make(map[string]int, len(views))
	for i, v := range views {
		pos[v.Number] = i
	}
	s.Contains(pos, "3")
	s.Contains(pos, "12")
	s.Contains(pos, "Annex")
	s.Less(pos["3"], pos["12"], `"3" sorts numerically before "12"`)
	s.Less(pos["12"], pos["Annex"], "non-numeric labels sort after numeric ones")
}

func (s *BookingE2ETestSuite) TestOccupancySnapshotAndWindow() {
	ctx := context.Background()
	roomA := dbtest.InsertRoom(s.T(), s.pool, "201", "double")
	roomB := dbtest.InsertRoom(s.T(), s.pool, "202", "double")

	dbtest.InsertReservation(s.T(), s.pool, roomA, "Jane Banda",
		s.date(2026, 1, 1), s.date(2026, 1, 3), "confirmed")
	dbtest.InsertReservation(s.T(), s.pool, roomB, "John Phiri",
		s.date(2026, 1, 2), s.date(2026, 1, 4), "confirmed")

	snap, err := s.occupancy.Snapshot(ctx, s.date(2026, 1, 1))
	s.Require().NoError(err)
	s.Equal(1, snap.BookedRooms, "only room A is occupied on the 1st")

	snap, err = s.occupancy.Snapshot(ctx, s.date(2026, 1, 2))
	s.Require().NoError(err)
	s.Equal(2, snap.BookedRooms, "both rooms are occupied on the 2nd")

	snap, err = s.occupancy.Snapshot(ctx, s.date(2026, 1, 3))
	s.Require().NoError(err)
	s.Equal(1, snap.BookedRooms, "room A checks out on the 3rd")

	window, err := s.occupancy.Window(ctx, s.date(2026, 1, 1), s.date(2026, 1, 4))
	s.Require().NoError(err)
	s.Equal(2, window.BookedRooms, "the window counts distinct rooms, not a daily average")
}
