package voucher

import (
	"errors"
	"time"

	"lodgekeeper/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrAlreadyConfirmed = errors.New("voucher is already confirmed")
	ErrMissingDates     = errors.New("voucher has no usable check-in/check-out dates")
)

// Voucher holds candidate booking fields produced by an external document
// extractor. Every field is untrusted free text until a staff member reviews
// it; confirming a voucher books a room through the same path as manual entry.
type Voucher struct {
	id            uuid.UUID
	customerName  string
	voucherNumber string
	checkIn       *time.Time
	checkOut      *time.Time
	rawText       string
	extractedData map[string]any
	confirmed     bool
	reservationID *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time
}

func NewVoucher(customerName, voucherNumber string, checkIn, checkOut *time.Time, rawText string, extractedData map[string]any) *Voucher {
	if extractedData == nil {
		extractedData = map[string]any{}
	}
	return &Voucher{
		id:            uuid.New(),
		customerName:  customerName,
		voucherNumber: voucherNumber,
		checkIn:       normalize(checkIn),
		checkOut:      normalize(checkOut),
		rawText:       rawText,
		extractedData: extractedData,
	}
}

func Reconstruct(
	id uuid.UUID,
	customerName, voucherNumber string,
	checkIn, checkOut *time.Time,
	rawText string,
	extractedData map[string]any,
	confirmed bool,
	reservationID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:            id,
		customerName:  customerName,
		voucherNumber: voucherNumber,
		checkIn:       checkIn,
		checkOut:      checkOut,
		rawText:       rawText,
		extractedData: extractedData,
		confirmed:     confirmed,
		reservationID: reservationID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Revise overwrites the candidate fields with staff-corrected values.
func (v *Voucher) Revise(customerName, voucherNumber string, checkIn, checkOut *time.Time) {
	v.customerName = customerName
	v.voucherNumber = voucherNumber
	v.checkIn = normalize(checkIn)
	v.checkOut = normalize(checkOut)
}

// Stay builds the stay period from the candidate dates. Both dates must be
// present and form a valid half-open interval.
func (v *Voucher) Stay() (reservation.StayPeriod, error) {
	if v.checkIn == nil || v.checkOut == nil {
		return reservation.StayPeriod{}, ErrMissingDates
	}
	return reservation.NewStayPeriod(*v.checkIn, *v.checkOut)
}

// MarkConfirmed links the voucher to the reservation it produced.
func (v *Voucher) MarkConfirmed(reservationID uuid.UUID) error {
	if v.confirmed {
		return ErrAlreadyConfirmed
	}
	v.confirmed = true
	id := reservationID
	v.reservationID = &id
	return nil
}

func (v *Voucher) ID() uuid.UUID             { return v.id }
func (v *Voucher) CustomerName() string      { return v.customerName }
func (v *Voucher) VoucherNumber() string     { return v.voucherNumber }
func (v *Voucher) CheckIn() *time.Time       { return v.checkIn }
func (v *Voucher) CheckOut() *time.Time      { return v.checkOut }
func (v *Voucher) RawText() string           { return v.rawText }
func (v *Voucher) ExtractedData() map[string]any { return v.extractedData }
func (v *Voucher) IsConfirmed() bool         { return v.confirmed }
func (v *Voucher) ReservationID() *uuid.UUID { return v.reservationID }
func (v *Voucher) CreatedAt() time.Time      { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time      { return v.updatedAt }

func normalize(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := reservation.Date(*t)
	return &d
}
