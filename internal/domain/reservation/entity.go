package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
)

// Reservation is a room booking. It is confirmed from birth; there is no
// pending state. Cancellation is the only terminal transition and the row is
// kept for audit, never deleted.
type Reservation struct {
	id            uuid.UUID
	roomID        uuid.UUID
	customerName  string
	voucherNumber string
	stay          StayPeriod
	status        Status
	notes         string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewReservation(roomID uuid.UUID, customerName, voucherNumber string, stay StayPeriod, notes string) (*Reservation, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	return &Reservation{
		id:            uuid.New(),
		roomID:        roomID,
		customerName:  customerName,
		voucherNumber: strings.TrimSpace(voucherNumber),
		stay:          stay,
		status:        StatusConfirmed,
		notes:         strings.TrimSpace(notes),
	}, nil
}

func Reconstruct(
	id, roomID uuid.UUID,
	customerName, voucherNumber string,
	stay StayPeriod,
	status Status,
	notes string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		roomID:        roomID,
		customerName:  customerName,
		voucherNumber: voucherNumber,
		stay:          stay,
		status:        status,
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Cancel flips the reservation to cancelled. Cancelling an already-cancelled
// reservation is a no-op; there is no un-cancel.
func (r *Reservation) Cancel() {
	r.status = StatusCancelled
}

// Reschedule moves the reservation to a new room and stay. Callers re-check
// availability excluding this reservation before persisting.
func (r *Reservation) Reschedule(roomID uuid.UUID, stay StayPeriod) {
	r.roomID = roomID
	r.stay = stay
}

// Revise updates the guest-facing fields without touching room or stay.
func (r *Reservation) Revise(customerName, voucherNumber, notes string) error {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return ErrEmptyCustomerName
	}
	r.customerName = customerName
	r.voucherNumber = strings.TrimSpace(voucherNumber)
	r.notes = strings.TrimSpace(notes)
	return nil
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) RoomID() uuid.UUID     { return r.roomID }
func (r *Reservation) CustomerName() string  { return r.customerName }
func (r *Reservation) VoucherNumber() string { return r.voucherNumber }
func (r *Reservation) Stay() StayPeriod      { return r.stay }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Notes() string         { return r.notes }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
