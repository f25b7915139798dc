//go:build unit

package api_test

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"lodgekeeper/internal/handler/api"
	"lodgekeeper/internal/pkg/clock"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/tests/common/httptest"
	queriesmock "lodgekeeper/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

type ReportHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockOccupancy    *queriesmock.MockOccupancyQueries
	mockReservations *queriesmock.MockReservationQueries
	clock            *clock.MockClock
	handler          *api.ReportHandler
}

func (s *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockOccupancy = queriesmock.NewMockOccupancyQueries(s.mockCtrl)
	s.mockReservations = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC))
	s.handler = api.NewReportHandler(s.mockOccupancy, s.mockReservations, s.clock)

	s.router.GET("/dashboard", s.handler.Dashboard)
	s.router.GET("/reports/occupancy", s.handler.Occupancy)
	s.router.GET("/reports/monthly", s.handler.Monthly)
	s.router.GET("/reports/range", s.handler.Range)
}

func (s *ReportHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}

func (s *ReportHandlerTestSuite) TestDashboard() {
	s.Run("success: defaults to today", func() {
		today := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			Dashboard(gomock.Any(), today).
			Return(&queries.DashboardView{Date: today, TotalRooms: 10, BookedRooms: 4, OccupancyRate: 40}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dashboard", nil, "")

		var resp queries.DashboardView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(4, resp.BookedRooms)
		s.InDelta(40.0, resp.OccupancyRate, 0.001)
	})

	s.Run("success: explicit date overrides today", func() {
		date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			Dashboard(gomock.Any(), date).
			Return(&queries.DashboardView{Date: date}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dashboard?date=2025-06-01", nil, "")

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("error: malformed date returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/dashboard?date=01-06-2025", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid date")
	})
}

func (s *ReportHandlerTestSuite) TestOccupancy() {
	s.Run("success: single-date snapshot", func() {
		date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			Snapshot(gomock.Any(), date).
			Return(&queries.OccupancyView{TotalRooms: 8, BookedRooms: 2, Rate: 25}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/occupancy", nil, "")

		var resp queries.OccupancyView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(2, resp.BookedRooms)
	})

	s.Run("success: start and end switch to the window summary", func() {
		start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			Window(gomock.Any(), start, end).
			Return(&queries.OccupancyView{TotalRooms: 8, BookedRooms: 5, Rate: 62.5}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/occupancy?start=2025-06-01&end=2025-06-07", nil, "")

		var resp queries.OccupancyView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(5, resp.BookedRooms)
	})

	s.Run("error: start without end returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/occupancy?start=2025-06-01", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid end date")
	})

	s.Run("error: inverted window returns 400", func() {
		s.mockOccupancy.EXPECT().
			Window(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidDateRange)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/occupancy?start=2025-06-07&end=2025-06-01", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "must not precede")
	})
}

func (s *ReportHandlerTestSuite) TestMonthly() {
	s.Run("success: returns the monthly series", func() {
		s.mockOccupancy.EXPECT().
			MonthlySeries(gomock.Any(), 2025, time.June).
			Return(&queries.MonthlyOccupancyView{Month: "2025-06", TotalRooms: 8, AverageOccupancy: 31.25}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/monthly?year=2025&month=6", nil, "")

		var resp queries.MonthlyOccupancyView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("2025-06", resp.Month)
	})

	s.Run("error: month out of range returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/monthly?year=2025&month=13", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid month")
	})

	s.Run("error: missing year returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/monthly?month=6", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid year")
	})
}

func (s *ReportHandlerTestSuite) TestRange() {
	s.Run("success: weekly mode resolves Monday through Sunday around today", func() {
		start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			RangeReport(gomock.Any(), queries.ReportModeWeekly, start, end).
			Return(&queries.RangeReportView{Mode: queries.ReportModeWeekly, Start: start, End: end}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/range?mode=weekly", nil, "")

		var resp queries.RangeReportView
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(queries.ReportModeWeekly, resp.Mode)
	})

	s.Run("success: xlsx format streams a workbook attachment", func() {
		start := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
		s.mockOccupancy.EXPECT().
			RangeReport(gomock.Any(), queries.ReportModeDaily, start, start).
			Return(&queries.RangeReportView{Mode: queries.ReportModeDaily, Start: start, End: start, TotalRooms: 8}, nil)
		s.mockReservations.EXPECT().
			CheckIns(gomock.Any(), start, start).
			Return([]*queries.ReservationView{}, nil)
		s.mockReservations.EXPECT().
			CheckOuts(gomock.Any(), start, start).
			Return([]*queries.ReservationView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/range?mode=daily&format=xlsx", nil, "")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Header().Get("Content-Disposition"), "occupancy_2025-06-11_2025-06-11.xlsx")

		book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		s.Require().NoError(err)
		defer book.Close()
		s.Contains(book.GetSheetList(), "Summary")
	})

	s.Run("error: custom mode without bounds returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/range?mode=custom", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "requires start and end")
	})

	s.Run("error: unknown mode returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/range?mode=quarterly", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Unknown report mode")
	})
}
