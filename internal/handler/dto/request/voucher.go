package request

import (
	"github.com/google/uuid"
)

type RegisterVoucherRequest struct {
	CustomerName  string         `json:"customer_name,omitempty"`
	VoucherNumber string         `json:"voucher_number,omitempty"`
	CheckIn       *string        `json:"check_in,omitempty"`
	CheckOut      *string        `json:"check_out,omitempty"`
	RawText       string         `json:"raw_text,omitempty"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
}

type ReviseVoucherRequest struct {
	CustomerName  string  `json:"customer_name,omitempty"`
	VoucherNumber string  `json:"voucher_number,omitempty"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
}

type ConfirmVoucherRequest struct {
	RoomID uuid.UUID `json:"room_id" binding:"required"`
	Notes  string    `json:"notes,omitempty"`
}
