package response

import (
	"time"

	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomNumber    string    `json:"roomNumber"`
	CustomerName  string    `json:"customerName"`
	VoucherNumber *string   `json:"voucherNumber,omitempty"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:            v.ID,
		RoomID:        v.RoomID,
		RoomNumber:    v.RoomNumber,
		CustomerName:  v.CustomerName,
		VoucherNumber: v.VoucherNumber,
		CheckIn:       v.CheckIn.Format(dateLayout),
		CheckOut:      v.CheckOut.Format(dateLayout),
		Nights:        int(v.CheckOut.Sub(v.CheckIn).Hours() / 24),
		Status:        v.Status,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromReservationView(v))
	}
	return out
}
