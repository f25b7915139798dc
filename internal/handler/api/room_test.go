//go:build unit

package api_test

import (
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

type RoomHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockRoomCommands
	mockQueries      *queriesmock.MockRoomQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	handler          *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries, s.mockAvailability)

	s.router.GET("/rooms", s.handler.ListRooms)
	s.router.POST("/rooms", s.handler.CreateRoom)
	s.router.DELETE("/rooms/:id", s.handler.DeactivateRoom)
	s.router.GET("/rooms/available", s.handler.ListAvailableRooms)
	s.router.GET("/rooms/never-booked", s.handler.ListNeverBookedRooms)
	s.router.GET("/rooms/board", s.handler.Board)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func roomView(number string) *queries.RoomView {
	return &queries.RoomView{ID: uuid.New(), Number: number, Type: "standard", Active: true}
}

func (s *RoomHandlerTestSuite) TestListRooms() {
	s.Run("success: returns 200 OK with active rooms", func() {
		s.mockQueries.EXPECT().
			ListActive(gomock.Any()).
			Return([]*queries.RoomView{roomView("2"), roomView("10")}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil, "")

		var resp []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("2", resp[0].Number)
		s.Equal("10", resp[1].Number)
	})
}

func (s *RoomHandlerTestSuite) TestCreateRoom() {
	url := "/rooms"

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().
			CreateRoom(gomock.Any(), "15", "suite").
			Return(&queries.RoomView{ID: uuid.New(), Number: "15", Type: "suite", Active: true}, nil)

		body := map[string]any{"number": "15", "type": "suite"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var resp resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal("15", resp.Number)
		s.True(resp.Active)
	})

	s.Run("error: duplicate number returns 409 Conflict", func() {
		s.mockCommands.EXPECT().
			CreateRoom(gomock.Any(), "15", "").
			Return(nil, commands.ErrRoomNumberTaken)

		body := map[string]any{"number": "15"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already exists")
	})

	s.Run("error: blank number returns 422", func() {
		s.mockCommands.EXPECT().
			CreateRoom(gomock.Any(), "   ", "").
			Return(nil, commands.ErrDomainValidation)

		body := map[string]any{"number": "   "}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Room number is required")
	})

	s.Run("error: malformed body returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, "not-json", "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *RoomHandlerTestSuite) TestDeactivateRoom() {
	s.Run("success: returns 204 No Content", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeactivateRoom(gomock.Any(), id).Return(nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/rooms/"+id.String(), nil, "")

		s.Equal(http.StatusNoContent, w.Code)
		s.Empty(w.Body.String())
	})

	s.Run("error: unknown room returns 404", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().DeactivateRoom(gomock.Any(), id).Return(commands.ErrRoomNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/rooms/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})

	s.Run("error: malformed id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/rooms/not-a-uuid", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid room ID")
	})
}

func (s *RoomHandlerTestSuite) TestListAvailableRooms() {
	s.Run("success: returns free rooms for the stay", func() {
		checkIn := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		checkOut := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
		s.mockAvailability.EXPECT().
			ListAvailableRooms(gomock.Any(), checkIn, checkOut).
			Return([]*queries.RoomView{roomView("3")}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-07-01&check_out=2025-07-04", nil, "")

		var resp []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("3", resp[0].Number)
	})

	s.Run("success: exclusion id routes to the excluding query", func() {
		excludeID := uuid.New()
		s.mockAvailability.EXPECT().
			ListAvailableRoomsExcluding(gomock.Any(), gomock.Any(), gomock.Any(), excludeID).
			Return([]*queries.RoomView{}, nil)

		url := fmt.Sprintf("/rooms/available?check_in=2025-07-01&check_out=2025-07-04&exclude_reservation_id=%s", excludeID)
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("success: inverted range yields an empty list", func() {
		s.mockAvailability.EXPECT().
			ListAvailableRooms(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*queries.RoomView{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-07-04&check_out=2025-07-01", nil, "")

		var resp []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp)
	})

	s.Run("error: missing check_in returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_out=2025-07-04", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "check_in")
	})

	s.Run("error: malformed exclusion id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/available?check_in=2025-07-01&check_out=2025-07-04&exclude_reservation_id=abc", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "exclude_reservation_id")
	})
}

func (s *RoomHandlerTestSuite) TestListNeverBookedRooms() {
	s.Run("success: returns rooms without history", func() {
		s.mockAvailability.EXPECT().
			ListNeverBookedRooms(gomock.Any()).
			Return([]*queries.RoomView{roomView("Annex")}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/never-booked", nil, "")

		var resp []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("Annex", resp[0].Number)
	})
}

func (s *RoomHandlerTestSuite) TestBoard() {
	s.Run("success: returns per-room day statuses", func() {
		start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
		row := &queries.RoomBoardRow{
			Room: *roomView("5"),
			Days: []queries.RoomDayCell{
				{Date: start, Status: queries.RoomDayAvailable},
				{Date: start.AddDate(0, 0, 1), Status: queries.RoomDayCheckIn},
				{Date: end, Status: queries.RoomDayBooked},
			},
		}
		s.mockQueries.EXPECT().
			Board(gomock.Any(), start, end).
			Return([]*queries.RoomBoardRow{row}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/board?start=2025-07-01&end=2025-07-03", nil, "")

		var resp []queries.RoomBoardRow
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("5", resp[0].Room.Number)
		s.Equal(queries.RoomDayCheckIn, resp[0].Days[1].Status)
	})

	s.Run("error: inverted range returns 400", func() {
		s.mockQueries.EXPECT().
			Board(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidDateRange)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/rooms/board?start=2025-07-03&end=2025-07-01", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "must not precede")
	})
}
