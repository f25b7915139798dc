package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lodgekeeper/internal/export"
	reqdto "lodgekeeper/internal/handler/dto/request"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	occupancyQueries   queries.OccupancyQueries
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReportHandler(
	occupancyQueries queries.OccupancyQueries,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) *ReportHandler {
	return &ReportHandler{
		occupancyQueries:   occupancyQueries,
		reservationQueries: reservationQueries,
		clock:              clk,
	}
}

// @Summary Dashboard
// @Description Today's occupancy with arrivals and departures
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} queries.DashboardView
// @Router /dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	date := clock.Today(h.clock)
	if raw := c.Query("date"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date",
			})
			return
		}
		date = parsed
	}

	view, err := h.occupancyQueries.Dashboard(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Occupancy
// @Description Single-date snapshot, or a window summary when start/end given
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param date query string false "Snapshot date (YYYY-MM-DD)"
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} queries.OccupancyView
// @Failure 400 {object} map[string]string
// @Router /reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	startRaw, endRaw := c.Query("start"), c.Query("end")

	if startRaw != "" || endRaw != "" {
		start, err := reqdto.ParseDate(startRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid start date",
			})
			return
		}
		end, err := reqdto.ParseDate(endRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid end date",
			})
			return
		}

		view, err := h.occupancyQueries.Window(c.Request.Context(), start, end)
		if err != nil {
			h.writeOccupancyError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	date := clock.Today(h.clock)
	if raw := c.Query("date"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date",
			})
			return
		}
		date = parsed
	}

	view, err := h.occupancyQueries.Snapshot(c.Request.Context(), date)
	if err != nil {
		h.writeOccupancyError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Monthly occupancy
// @Description Per-day occupancy series and average for a calendar month
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} queries.MonthlyOccupancyView
// @Failure 400 {object} map[string]string
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid year",
		})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid month",
		})
		return
	}

	view, err := h.occupancyQueries.MonthlySeries(c.Request.Context(), year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Range report
// @Description Occupancy report over daily, weekly (Mon-Sun), monthly or
// @Description custom ranges. Pass format=xlsx to download a workbook.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param mode query string true "daily|weekly|monthly|custom"
// @Param date query string false "Anchor date (YYYY-MM-DD), defaults to today"
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end, inclusive (YYYY-MM-DD)"
// @Param format query string false "xlsx for workbook download"
// @Success 200 {object} queries.RangeReportView
// @Failure 400 {object} map[string]string
// @Router /reports/range [get]
func (h *ReportHandler) Range(c *gin.Context) {
	mode := c.DefaultQuery("mode", queries.ReportModeDaily)

	ref := clock.Today(h.clock)
	if raw := c.Query("date"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date",
			})
			return
		}
		ref = parsed
	}

	var customStart, customEnd *time.Time
	if raw := c.Query("start"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid start date",
			})
			return
		}
		customStart = &parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid end date",
			})
			return
		}
		customEnd = &parsed
	}

	start, end, err := queries.ResolveReportRange(mode, ref, customStart, customEnd)
	if err != nil {
		h.writeOccupancyError(c, err)
		return
	}

	report, err := h.occupancyQueries.RangeReport(c.Request.Context(), mode, start, end)
	if err != nil {
		h.writeOccupancyError(c, err)
		return
	}

	if c.Query("format") != "xlsx" {
		c.JSON(http.StatusOK, report)
		return
	}

	checkIns, err := h.reservationQueries.CheckIns(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	checkOuts, err := h.reservationQueries.CheckOuts(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	workbook, err := export.RangeReportWorkbook(report, checkIns, checkOuts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build report workbook",
		})
		return
	}

	filename := fmt.Sprintf("occupancy_%s_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		workbook)
}

func (h *ReportHandler) writeOccupancyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "End date must not precede start date",
		})
	case errors.Is(err, queries.ErrUnknownReportMode):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown report mode",
		})
	case errors.Is(err, queries.ErrMissingCustomRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Custom mode requires start and end dates",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
