package queries

import (
	"context"
	"fmt"
	"math"
	"time"

	"lodgekeeper/internal/domain/reservation"
	"lodgekeeper/internal/pkg/errs"
)

var (
	ErrUnknownReportMode  = errs.New("unknown report mode")
	ErrMissingCustomRange = errs.New("custom mode requires start and end dates")
)

// Report range modes accepted by ResolveReportRange.
const (
	ReportModeDaily   = "daily"
	ReportModeWeekly  = "weekly"
	ReportModeMonthly = "monthly"
	ReportModeCustom  = "custom"
)

type OccupancyQueries interface {
	// Snapshot counts rooms occupied on a single date: confirmed reservations
	// with check_in <= date < check_out.
	Snapshot(ctx context.Context, date time.Time) (*OccupancyView, error)
	// Window counts distinct rooms with any confirmed reservation overlapping
	// the inclusive range [start, end]. It is not an average and must not be
	// confused with the snapshot notion.
	Window(ctx context.Context, start, end time.Time) (*OccupancyView, error)
	// MonthlySeries returns the per-day snapshot series for a calendar month
	// plus the average daily occupancy rate across it.
	MonthlySeries(ctx context.Context, year int, month time.Month) (*MonthlyOccupancyView, error)
	// RangeReport aggregates occupancy over a resolved inclusive range.
	RangeReport(ctx context.Context, mode string, start, end time.Time) (*RangeReportView, error)
	// Dashboard summarizes a single day: occupancy plus arrivals/departures.
	Dashboard(ctx context.Context, date time.Time) (*DashboardView, error)
}

type occupancyQueriesImpl struct {
	rooms        RoomReadStore
	reservations ReservationReadStore
	occupancy    OccupancyReadStore
}

func NewOccupancyQueries(rooms RoomReadStore, reservations ReservationReadStore, occupancy OccupancyReadStore) OccupancyQueries {
	return &occupancyQueriesImpl{rooms: rooms, reservations: reservations, occupancy: occupancy}
}

func (q *occupancyQueriesImpl) Snapshot(ctx context.Context, date time.Time) (*OccupancyView, error) {
	date = reservation.Date(date)

	total, err := q.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := q.occupancy.CountBookedOn(ctx, date)
	if err != nil {
		return nil, err
	}
	return &OccupancyView{
		TotalRooms:  total,
		BookedRooms: booked,
		Rate:        occupancyRate(booked, total),
	}, nil
}

func (q *occupancyQueriesImpl) Window(ctx context.Context, start, end time.Time) (*OccupancyView, error) {
	start = reservation.Date(start)
	end = reservation.Date(end)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	total, err := q.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	// The inclusive end date becomes an exclusive bound one day later, so a
	// stay checking in on the last day of the window still counts.
	booked, err := q.occupancy.CountBookedOverlapping(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &OccupancyView{
		TotalRooms:  total,
		BookedRooms: booked,
		Rate:        occupancyRate(booked, total),
	}, nil
}

func (q *occupancyQueriesImpl) MonthlySeries(ctx context.Context, year int, month time.Month) (*MonthlyOccupancyView, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	endExclusive := start.AddDate(0, 1, 0)

	total, err := q.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := q.dailySeries(ctx, start, endExclusive, total)
	if err != nil {
		return nil, err
	}
	bookings, err := q.occupancy.CountBookingsStartingIn(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}

	return &MonthlyOccupancyView{
		Month:            fmt.Sprintf("%04d-%02d", year, month),
		TotalRooms:       total,
		TotalBookings:    bookings,
		AverageOccupancy: averageRate(daily),
		Daily:            daily,
	}, nil
}

func (q *occupancyQueriesImpl) RangeReport(ctx context.Context, mode string, start, end time.Time) (*RangeReportView, error) {
	start = reservation.Date(start)
	end = reservation.Date(end)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	endExclusive := end.AddDate(0, 0, 1)

	total, err := q.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := q.dailySeries(ctx, start, endExclusive, total)
	if err != nil {
		return nil, err
	}
	booked, err := q.occupancy.CountBookedOverlapping(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}
	bookings, err := q.occupancy.CountBookingsStartingIn(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}

	return &RangeReportView{
		Mode:             mode,
		Start:            start,
		End:              end,
		TotalRooms:       total,
		BookedRooms:      booked,
		TotalBookings:    bookings,
		AverageOccupancy: averageRate(daily),
		Daily:            daily,
	}, nil
}

func (q *occupancyQueriesImpl) Dashboard(ctx context.Context, date time.Time) (*DashboardView, error) {
	date = reservation.Date(date)

	total, err := q.rooms.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := q.occupancy.CountBookedOn(ctx, date)
	if err != nil {
		return nil, err
	}
	checkIns, err := q.reservations.CheckIns(ctx, date, date)
	if err != nil {
		return nil, err
	}
	checkOuts, err := q.reservations.CheckOuts(ctx, date, date)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Date:           date,
		TotalRooms:     total,
		AvailableRooms: total - booked,
		BookedRooms:    booked,
		OccupancyRate:  occupancyRate(booked, total),
		CheckIns:       make([]ReservationView, 0, len(checkIns)),
		CheckOuts:      make([]ReservationView, 0, len(checkOuts)),
	}
	for _, r := range checkIns {
		view.CheckIns = append(view.CheckIns, *r)
	}
	for _, r := range checkOuts {
		view.CheckOuts = append(view.CheckOuts, *r)
	}
	return view, nil
}

func (q *occupancyQueriesImpl) dailySeries(ctx context.Context, start, endExclusive time.Time, totalRooms int) ([]DailyOccupancy, error) {
	perDay, err := q.occupancy.CountBookedPerDay(ctx, start, endExclusive)
	if err != nil {
		return nil, err
	}

	daily := make([]DailyOccupancy, 0, len(perDay))
	for d := start; d.Before(endExclusive); d = d.AddDate(0, 0, 1) {
		booked := perDay[d]
		daily = append(daily, DailyOccupancy{
			Date:        d,
			BookedRooms: booked,
			Rate:        occupancyRate(booked, totalRooms),
		})
	}
	return daily, nil
}

// ResolveReportRange turns a report mode into an inclusive date range anchored
// at ref. Weekly ranges run Monday through Sunday. Custom mode requires both
// bounds from the caller.
func ResolveReportRange(mode string, ref time.Time, start, end *time.Time) (time.Time, time.Time, error) {
	ref = reservation.Date(ref)

	switch mode {
	case ReportModeDaily:
		return ref, ref, nil
	case ReportModeWeekly:
		offset := (int(ref.Weekday()) + 6) % 7 // Monday = 0
		monday := ref.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 6), nil
	case ReportModeMonthly:
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), nil
	case ReportModeCustom:
		if start == nil || end == nil {
			return time.Time{}, time.Time{}, ErrMissingCustomRange
		}
		s, e := reservation.Date(*start), reservation.Date(*end)
		if e.Before(s) {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		return s, e, nil
	default:
		return time.Time{}, time.Time{}, ErrUnknownReportMode
	}
}

func occupancyRate(booked, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(booked)/float64(total)*10000) / 100
}

func averageRate(daily []DailyOccupancy) float64 {
	if len(daily) == 0 {
		return 0
	}
	var sum float64
	for _, d := range daily {
		sum += d.Rate
	}
	return math.Round(sum/float64(len(daily))*100) / 100
}
