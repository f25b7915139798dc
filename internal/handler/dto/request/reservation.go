package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	VoucherNumber string    `json:"voucher_number,omitempty"`
	CheckIn       string    `json:"check_in" binding:"required"`
	CheckOut      string    `json:"check_out" binding:"required"`
	Notes         string    `json:"notes,omitempty"`
	// SkipAvailabilityCheck bypasses the pre-check; the database constraint
	// still rejects a genuine overlap at commit.
	SkipAvailabilityCheck bool `json:"skip_availability_check,omitempty"`
}

func (r CreateReservationRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = ParseDate(r.CheckIn)
	if err != nil {
		return
	}
	checkOut, err = ParseDate(r.CheckOut)
	return
}

type UpdateReservationRequest struct {
	RoomID        uuid.UUID `json:"room_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	VoucherNumber string    `json:"voucher_number,omitempty"`
	CheckIn       string    `json:"check_in" binding:"required"`
	CheckOut      string    `json:"check_out" binding:"required"`
	Notes         string    `json:"notes,omitempty"`
}

func (r UpdateReservationRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = ParseDate(r.CheckIn)
	if err != nil {
		return
	}
	checkOut, err = ParseDate(r.CheckOut)
	return
}
