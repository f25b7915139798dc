package reservation

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("check-out date must be after check-in date")

const dateLayout = "2006-01-02"

// StayPeriod is a half-open date interval [CheckIn, CheckOut). The check-out
// day does not consume the room, so one guest's check-out date may equal the
// next guest's check-in date without conflict.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	checkIn = truncateToDate(checkIn)
	checkOut = truncateToDate(checkOut)
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals [a,b) and [c,d)
// intersect: a < d && c < b.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

// Contains reports whether date falls inside the stay: checkIn <= date < checkOut.
func (p StayPeriod) Contains(date time.Time) bool {
	date = truncateToDate(date)
	return !date.Before(p.checkIn) && date.Before(p.checkOut)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(dateLayout), p.checkOut.Format(dateLayout))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date normalizes an arbitrary timestamp to the calendar date used for
// interval arithmetic.
func Date(t time.Time) time.Time {
	return truncateToDate(t)
}
