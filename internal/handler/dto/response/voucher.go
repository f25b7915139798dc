package response

import (
	"time"

	"lodgekeeper/internal/usecase/queries"

	"github.com/google/uuid"
)

type VoucherResponse struct {
	ID            uuid.UUID      `json:"id"`
	CustomerName  string         `json:"customerName"`
	VoucherNumber string         `json:"voucherNumber"`
	CheckIn       *string        `json:"checkIn,omitempty"`
	CheckOut      *string        `json:"checkOut,omitempty"`
	RawText       string         `json:"rawText,omitempty"`
	ExtractedData map[string]any `json:"extractedData,omitempty"`
	IsConfirmed   bool           `json:"isConfirmed"`
	ReservationID *uuid.UUID     `json:"reservationId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func FromVoucherView(v *queries.VoucherView) *VoucherResponse {
	return &VoucherResponse{
		ID:            v.ID,
		CustomerName:  v.CustomerName,
		VoucherNumber: v.VoucherNumber,
		CheckIn:       formatOptionalDate(v.CheckIn),
		CheckOut:      formatOptionalDate(v.CheckOut),
		RawText:       v.RawText,
		ExtractedData: v.ExtractedData,
		IsConfirmed:   v.IsConfirmed,
		ReservationID: v.ReservationID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func FromVoucherViews(views []*queries.VoucherView) []*VoucherResponse {
	out := make([]*VoucherResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromVoucherView(v))
	}
	return out
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
