//go:build unit

package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"lodgekeeper/internal/handler/api"
	resdto "lodgekeeper/internal/handler/dto/response"
	"lodgekeeper/internal/usecase/commands"
	"lodgekeeper/internal/usecase/queries"
	"lodgekeeper/tests/common/httptest"
	commandsmock "lodgekeeper/tests/mock/commands"
	queriesmock "lodgekeeper/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockBooking      *commandsmock.MockBookingCommands
	mockQueries      *queriesmock.MockReservationQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBooking = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockBooking, s.mockQueries, s.mockAvailability)

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListReservations)
	s.router.GET("/reservations/availability", s.handler.CheckAvailability)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PUT("/reservations/:id", s.handler.UpdateReservation)
	s.router.DELETE("/reservations/:id", s.handler.CancelReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func validCreateBody(roomID uuid.UUID) map[string]any {
	return map[string]any{
		"room_id":       roomID.String(),
		"customer_name": "Jane Banda",
		"check_in":      "2025-07-01",
		"check_out":     "2025-07-04",
	}
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"
	roomID := uuid.New()

	s.Run("success: returns 201 Created with the new reservation", func() {
		rsvID := uuid.New()
		s.mockBooking.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			Return(&queries.ReservationView{
				ID:           rsvID,
				RoomID:       roomID,
				RoomNumber:   "12",
				CustomerName: "Jane Banda",
				CheckIn:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				CheckOut:     time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
				Status:       "confirmed",
			}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validCreateBody(roomID), "")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(rsvID, resp.ID)
		s.Equal("2025-07-01", resp.CheckIn)
		s.Equal("2025-07-04", resp.CheckOut)
		s.Equal(3, resp.Nights)
	})

	s.Run("conflict: returns 409 when the room is taken", func() {
		s.mockBooking.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrNotAvailable).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validCreateBody(roomID), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "not available")
	})

	s.Run("bad request: returns 400 for an inverted date range", func() {
		s.mockBooking.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidDateRange).Times(1)

		body := validCreateBody(roomID)
		body["check_in"], body["check_out"] = body["check_out"], body["check_in"]

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "after check-in")
	})

	s.Run("bad request: returns 400 for a malformed date", func() {
		body := validCreateBody(roomID)
		body["check_in"] = "01/07/2025"

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("bad request: returns 400 when required fields are missing", func() {
		body := validCreateBody(roomID)
		delete(body, "customer_name")

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("not found: returns 404 for an unknown room", func() {
		s.mockBooking.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRoomNotFound).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validCreateBody(roomID), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})

	s.Run("unprocessable: returns 422 for a blank customer name", func() {
		s.mockBooking.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		body := validCreateBody(roomID)
		body["customer_name"] = "   "

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Customer name")
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	rsvID := uuid.New()
	roomID := uuid.New()
	url := fmt.Sprintf("/reservations/%s", rsvID)

	body := map[string]any{
		"room_id":       roomID.String(),
		"customer_name": "Jane Banda",
		"check_in":      "2025-07-02",
		"check_out":     "2025-07-05",
	}

	s.Run("success: returns 200 OK with the updated reservation", func() {
		s.mockBooking.EXPECT().
			EditReservation(gomock.Any(), rsvID, gomock.Any()).
			Return(&queries.ReservationView{
				ID:       rsvID,
				RoomID:   roomID,
				CheckIn:  time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
				Status:   "confirmed",
			}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(rsvID, resp.ID)
	})

	s.Run("conflict: returns 409 when editing a cancelled reservation", func() {
		s.mockBooking.EXPECT().
			EditReservation(gomock.Any(), rsvID, gomock.Any()).
			Return(nil, commands.ErrReservationCancelled).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "cancelled")
	})

	s.Run("not found: returns 404 for an unknown reservation", func() {
		s.mockBooking.EXPECT().
			EditReservation(gomock.Any(), rsvID, gomock.Any()).
			Return(nil, commands.ErrReservationNotFound).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("bad request: returns 400 for a malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/not-a-uuid", body, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	rsvID := uuid.New()
	url := fmt.Sprintf("/reservations/%s", rsvID)

	s.Run("success: returns 204 No Content", func() {
		s.mockBooking.EXPECT().CancelReservation(gomock.Any(), rsvID).Return(nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, w.Code)
		s.Empty(w.Body.String())
	})

	s.Run("not found: returns 404 for an unknown reservation", func() {
		s.mockBooking.EXPECT().
			CancelReservation(gomock.Any(), rsvID).
			Return(commands.ErrReservationNotFound).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestCheckAvailability() {
	roomID := uuid.New()

	s.Run("success: reports a free room", func() {
		s.mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(true, nil).Times(1)

		url := fmt.Sprintf("/reservations/availability?room_id=%s&check_in=2025-07-01&check_out=2025-07-04", roomID)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp map[string]bool
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.True(resp["available"])
	})

	s.Run("success: reports an occupied room", func() {
		s.mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(false, nil).Times(1)

		url := fmt.Sprintf("/reservations/availability?room_id=%s&check_in=2025-07-01&check_out=2025-07-04", roomID)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp map[string]bool
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.False(resp["available"])
	})

	s.Run("bad request: returns 400 for a missing room_id", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations/availability?check_in=2025-07-01&check_out=2025-07-04", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid room_id")
	})

	s.Run("not found: returns 404 for an unknown room", func() {
		s.mockAvailability.EXPECT().
			IsRoomAvailable(gomock.Any(), roomID, gomock.Any(), gomock.Any()).
			Return(false, queries.ErrRoomNotFound).Times(1)

		url := fmt.Sprintf("/reservations/availability?room_id=%s&check_in=2025-07-01&check_out=2025-07-04", roomID)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	rsvID := uuid.New()

	s.Run("success: returns the reservation", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), rsvID).
			Return(&queries.ReservationView{
				ID:       rsvID,
				CheckIn:  time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
				Status:   "confirmed",
			}, nil).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+rsvID.String(), nil, "")

		var resp resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(rsvID, resp.ID)
	})

	s.Run("not found: returns 404", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), rsvID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+rsvID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	s.Run("success: forwards filters and returns the page", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
				s.Equal("Banda", filter.CustomerName)
				s.Equal(10, filter.Limit)
				s.Equal(20, filter.Offset)
				return []*queries.ReservationView{
					{ID: uuid.New(), CustomerName: "Jane Banda", Status: "confirmed"},
				}, nil
			}).Times(1)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?customer_name=Banda&limit=10&offset=20", nil, "")

		var resp []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
	})

	s.Run("bad request: returns 400 for a malformed filter date", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?check_in_from=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "check_in_from")
	})
}
