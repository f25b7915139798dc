package readstore

import (
	"context"
	"time"

	"lodgekeeper/internal/infra"
	"lodgekeeper/internal/infra/db"
)

// OccupancyReadStore answers the distinct-room counting queries behind both
// occupancy notions: the single-date snapshot and the window union count.
type OccupancyReadStore struct {
	q db.Querier
}

func NewOccupancyReadStore(q db.Querier) *OccupancyReadStore {
	return &OccupancyReadStore{q: q}
}

// CountBookedOn counts distinct rooms with a confirmed reservation whose
// interval contains the date: check_in <= date < check_out.
func (s *OccupancyReadStore) CountBookedOn(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT b.room_id)
		FROM reservations b
		WHERE b.status = 'confirmed'
		  AND b.check_in <= $1
		  AND b.check_out > $1`, date).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count booked rooms for date", err)
	}
	return n, nil
}

// CountBookedOverlapping counts distinct rooms with any confirmed
// reservation intersecting [start, endExclusive). This is a union count
// over the whole window, not a per-day figure.
func (s *OccupancyReadStore) CountBookedOverlapping(ctx context.Context, start, endExclusive time.Time) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(DISTINCT b.room_id)
		FROM reservations b
		WHERE b.status = 'confirmed'
		  AND b.check_in < $1
		  AND b.check_out > $2`, endExclusive, start).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count booked rooms in window", err)
	}
	return n, nil
}

// CountBookedPerDay returns the per-day distinct-room counts for every date
// in [start, endExclusive) in one generate_series pass, for the monthly
// daily series. Days with no bookings are present with a zero count.
func (s *OccupancyReadStore) CountBookedPerDay(ctx context.Context, start, endExclusive time.Time) (map[time.Time]int, error) {
	rows, err := s.q.Query(ctx, `
		SELECT d.day::date, COUNT(DISTINCT b.room_id)
		FROM generate_series($1::date, $2::date - 1, interval '1 day') AS d(day)
		LEFT JOIN reservations b
		  ON b.status = 'confirmed'
		 AND b.check_in <= d.day
		 AND b.check_out > d.day
		GROUP BY d.day
		ORDER BY d.day`, start, endExclusive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count booked rooms per day", err)
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var day time.Time
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan per-day count", err)
		}
		counts[day.UTC()] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read per-day counts", err)
	}
	return counts, nil
}

// CountBookingsStartingIn counts confirmed reservations with check-in inside
// [start, endExclusive), the monthly "total bookings" figure.
func (s *OccupancyReadStore) CountBookingsStartingIn(ctx context.Context, start, endExclusive time.Time) (int, error) {
	var n int
	err := s.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations b
		WHERE b.status = 'confirmed'
		  AND b.check_in >= $1
		  AND b.check_in < $2`, start, endExclusive).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings in month", err)
	}
	return n, nil
}
