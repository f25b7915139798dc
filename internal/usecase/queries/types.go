package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReservationView struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	CustomerName  string    `json:"customer_name"`
	VoucherNumber *string   `json:"voucher_number,omitempty"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type VoucherView struct {
	ID            uuid.UUID      `json:"id"`
	CustomerName  string         `json:"customer_name"`
	VoucherNumber string         `json:"voucher_number"`
	CheckIn       *time.Time     `json:"check_in,omitempty"`
	CheckOut      *time.Time     `json:"check_out,omitempty"`
	RawText       string         `json:"raw_text,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	IsConfirmed   bool           `json:"is_confirmed"`
	ReservationID *uuid.UUID     `json:"reservation_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// OccupancyView is the snapshot/window occupancy summary. Rate is a
// percentage; it is 0 when there are no active rooms.
type OccupancyView struct {
	TotalRooms  int     `json:"total_rooms"`
	BookedRooms int     `json:"booked_rooms"`
	Rate        float64 `json:"rate"`
}

type DailyOccupancy struct {
	Date        time.Time `json:"date"`
	BookedRooms int       `json:"booked_rooms"`
	Rate        float64   `json:"rate"`
}

type MonthlyOccupancyView struct {
	Month            string           `json:"month"`
	TotalRooms       int              `json:"total_rooms"`
	TotalBookings    int              `json:"total_bookings"`
	AverageOccupancy float64          `json:"average_occupancy"`
	Daily            []DailyOccupancy `json:"daily"`
}

// RangeReportView aggregates occupancy over an inclusive date range.
// BookedRooms counts distinct rooms touched anywhere in the range (the window
// notion); Daily holds the per-date snapshot series the average is taken over.
type RangeReportView struct {
	Mode             string           `json:"mode"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end"`
	TotalRooms       int              `json:"total_rooms"`
	BookedRooms      int              `json:"booked_rooms"`
	TotalBookings    int              `json:"total_bookings"`
	AverageOccupancy float64          `json:"average_occupancy"`
	Daily            []DailyOccupancy `json:"daily"`
}

// RoomDayStatus is the per-date room state used by the availability board:
// available, check_in, check_out or booked.
type RoomDayStatus string

const (
	RoomDayAvailable RoomDayStatus = "available"
	RoomDayCheckIn   RoomDayStatus = "check_in"
	RoomDayCheckOut  RoomDayStatus = "check_out"
	RoomDayBooked    RoomDayStatus = "booked"
)

type ReservationFilter struct {
	CustomerName  string
	VoucherNumber string
	CheckInFrom   *time.Time
	CheckOutTo    *time.Time
	Limit         int
	Offset        int
}

type DashboardView struct {
	Date           time.Time         `json:"date"`
	TotalRooms     int               `json:"total_rooms"`
	AvailableRooms int               `json:"available_rooms"`
	BookedRooms    int               `json:"booked_rooms"`
	OccupancyRate  float64           `json:"occupancy_rate"`
	CheckIns       []ReservationView `json:"check_ins"`
	CheckOuts      []ReservationView `json:"check_outs"`
}
