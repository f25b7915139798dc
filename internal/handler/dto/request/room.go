package request

type CreateRoomRequest struct {
	Number string `json:"number" binding:"required"`
	Type   string `json:"type,omitempty"`
}
