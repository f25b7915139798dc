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

type VoucherHandler struct {
	voucherCommands commands.VoucherCommands
	voucherQueries  queries.VoucherQueries
}

func NewVoucherHandler(voucherCommands commands.VoucherCommands, voucherQueries queries.VoucherQueries) *VoucherHandler {
	return &VoucherHandler{
		voucherCommands: voucherCommands,
		voucherQueries:  voucherQueries,
	}
}

// @Summary Register voucher
// @Description Store an extracted travel voucher awaiting staff review
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterVoucherRequest true "Voucher"
// @Success 201 {object} resdto.VoucherResponse
// @Failure 400 {object} map[string]string
// @Router /vouchers [post]
func (h *VoucherHandler) RegisterVoucher(c *gin.Context) {
	var req reqdto.RegisterVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	checkIn, err := reqdto.OptionalDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_in date",
		})
		return
	}
	checkOut, err := reqdto.OptionalDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_out date",
		})
		return
	}

	view, err := h.voucherCommands.RegisterVoucher(c.Request.Context(), commands.RegisterVoucherInput{
		CustomerName:  req.CustomerName,
		VoucherNumber: req.VoucherNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		RawText:       req.RawText,
		ExtractedData: req.ExtractedData,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromVoucherView(view))
}

// @Summary List vouchers
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param pending query bool false "Only unconfirmed vouchers"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} resdto.VoucherResponse
// @Router /vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	pendingOnly := c.Query("pending") == "true"
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	views, err := h.voucherQueries.List(c.Request.Context(), pendingOnly, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherViews(views))
}

// @Summary Get voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} map[string]string
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID",
		})
		return
	}

	view, err := h.voucherQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrVoucherNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary Revise voucher
// @Description Overwrite voucher candidate fields with staff corrections
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.ReviseVoucherRequest true "Corrections"
// @Success 200 {object} resdto.VoucherResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id} [put]
func (h *VoucherHandler) ReviseVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID",
		})
		return
	}

	var req reqdto.ReviseVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	checkIn, err := reqdto.OptionalDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_in date",
		})
		return
	}
	checkOut, err := reqdto.OptionalDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_out date",
		})
		return
	}

	view, err := h.voucherCommands.ReviseVoucher(c.Request.Context(), id, commands.ReviseVoucherInput{
		CustomerName:  req.CustomerName,
		VoucherNumber: req.VoucherNumber,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	})
	if err != nil {
		h.writeVoucherError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}

// @Summary Confirm voucher
// @Description Book the voucher's stay into a room and link the result
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Voucher ID"
// @Param request body reqdto.ConfirmVoucherRequest true "Room choice"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vouchers/{id}/confirm [post]
func (h *VoucherHandler) ConfirmVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid voucher ID",
		})
		return
	}

	var req reqdto.ConfirmVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.voucherCommands.ConfirmVoucher(c.Request.Context(), id, commands.ConfirmVoucherInput{
		RoomID: req.RoomID,
		Notes:  req.Notes,
	})
	if err != nil {
		h.writeVoucherError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func (h *VoucherHandler) writeVoucherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVoucherNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Voucher not found",
		})
	case errors.Is(err, commands.ErrVoucherAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Voucher is already confirmed",
		})
	case errors.Is(err, commands.ErrVoucherMissingDates):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Voucher has no usable check-in/check-out dates",
		})
	case errors.Is(err, commands.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Check-out must be after check-in",
		})
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrNotAvailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room is not available for the requested dates",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
