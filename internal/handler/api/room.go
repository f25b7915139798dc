package api

import (
	"errors"
	"net/http"

	reqdto "lodgekeeper/internal/handler/dto/request"
	resdto "lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands        commands.RoomCommands
	roomQueries         queries.RoomQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewRoomHandler(
	roomCommands commands.RoomCommands,
	roomQueries queries.RoomQueries,
	availabilityQueries queries.AvailabilityQueries,
) *RoomHandler {
	return &RoomHandler{
		roomCommands:        roomCommands,
		roomQueries:         roomQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary List rooms
// @Description List active rooms in numeric room-number order
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomQueries.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.roomCommands.CreateRoom(c.Request.Context(), req.Number, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNumberTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room number already exists",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Room number is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

// @Summary Deactivate room
// @Description Remove a room from future allocation without touching history
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [delete]
func (h *RoomHandler) DeactivateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID",
		})
		return
	}

	if err := h.roomCommands.DeactivateRoom(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List available rooms
// @Description Rooms free for the whole stay [check_in, check_out).
// @Description An inverted or zero-night range yields an empty list.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param exclude_reservation_id query string false "Reservation to ignore when editing"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/available [get]
func (h *RoomHandler) ListAvailableRooms(c *gin.Context) {
	checkIn, err := reqdto.ParseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_in date",
		})
		return
	}
	checkOut, err := reqdto.ParseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_out date",
		})
		return
	}

	var rooms []*queries.RoomView
	if raw := c.Query("exclude_reservation_id"); raw != "" {
		excludeID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid exclude_reservation_id",
			})
			return
		}
		rooms, err = h.availabilityQueries.ListAvailableRoomsExcluding(c.Request.Context(), checkIn, checkOut, excludeID)
	} else {
		rooms, err = h.availabilityQueries.ListAvailableRooms(c.Request.Context(), checkIn, checkOut)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary List never-booked rooms
// @Description Active rooms with no reservation history, regardless of dates
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms/never-booked [get]
func (h *RoomHandler) ListNeverBookedRooms(c *gin.Context) {
	rooms, err := h.availabilityQueries.ListNeverBookedRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Availability board
// @Description Per-room day statuses over an inclusive date range
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} queries.RoomBoardRow
// @Failure 400 {object} map[string]string
// @Router /rooms/board [get]
func (h *RoomHandler) Board(c *gin.Context) {
	start, err := reqdto.ParseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start date",
		})
		return
	}
	end, err := reqdto.ParseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end date",
		})
		return
	}

	board, err := h.roomQueries.Board(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "End date must not precede start date",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, board)
}
