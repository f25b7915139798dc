package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "lodgekeeper/internal/handler/dto/request"
	resdto "lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	bookingCommands     commands.BookingCommands
	reservationQueries  queries.ReservationQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewReservationHandler(
	bookingCommands commands.BookingCommands,
	reservationQueries queries.ReservationQueries,
	availabilityQueries queries.AvailabilityQueries,
) *ReservationHandler {
	return &ReservationHandler{
		bookingCommands:     bookingCommands,
		reservationQueries:  reservationQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Create reservation
// @Description Book a room for a half-open stay [check_in, check_out)
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD",
		})
		return
	}

	view, err := h.bookingCommands.CreateReservation(c.Request.Context(), commands.CreateReservationInput{
		RoomID:                req.RoomID,
		CustomerName:          req.CustomerName,
		VoucherNumber:         req.VoucherNumber,
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		Notes:                 req.Notes,
		SkipAvailabilityCheck: req.SkipAvailabilityCheck,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description Search reservations by customer, voucher number or date range
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param customer_name query string false "Customer name substring"
// @Param voucher_number query string false "Voucher number substring"
// @Param check_in_from query string false "Earliest check-in (YYYY-MM-DD)"
// @Param check_out_to query string false "Latest check-out (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.ReservationResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	filter := queries.ReservationFilter{
		CustomerName:  c.Query("customer_name"),
		VoucherNumber: c.Query("voucher_number"),
	}
	if raw := c.Query("check_in_from"); raw != "" {
		t, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid check_in_from date",
			})
			return
		}
		filter.CheckInFrom = &t
	}
	if raw := c.Query("check_out_to"); raw != "" {
		t, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid check_out_to date",
			})
			return
		}
		filter.CheckOutTo = &t
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	views, err := h.reservationQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Update reservation
// @Description Move or edit a confirmed reservation; its own dates never
// @Description conflict with themselves
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Reservation"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dates must use YYYY-MM-DD",
		})
		return
	}

	view, err := h.bookingCommands.EditReservation(c.Request.Context(), id, commands.EditReservationInput{
		RoomID:        req.RoomID,
		CustomerName:  req.CustomerName,
		VoucherNumber: req.VoucherNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Idempotent: cancelling twice succeeds. The row is kept.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID",
		})
		return
	}

	if err := h.bookingCommands.CancelReservation(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
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

// @Summary Check availability
// @Description Whether a room is free for the half-open stay
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param room_id query string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/availability [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room_id",
		})
		return
	}
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

	available, err := h.availabilityQueries.IsRoomAvailable(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
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
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *ReservationHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Check-out must be after check-in",
		})
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrNotAvailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room is not available for the requested dates",
		})
	case errors.Is(err, commands.ErrReservationCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation is cancelled",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Customer name is required",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
