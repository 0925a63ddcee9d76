//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"studio-booking/internal/handler/api"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/usecase/queries"
	"studio-booking/tests/common/httptest"
	queriesmock "studio-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/availability", s.handler.ListOpenWindows)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestListOpenWindows() {
	url := "/availability?studio=studio_a&date=2026-09-10"

	s.Run("success: returns open windows for the day", func() {
		windows := []queries.OpenWindow{
			{Start: "09:00", End: "10:00"},
			{Start: "12:00", End: "21:00"},
		}
		s.mockQueries.EXPECT().ListOpenWindows(gomock.Any(), "studio_a", "2026-09-10").
			Return(windows, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("studio_a", response.Studio)
		s.Equal("2026-09-10", response.Date)
		s.Len(response.OpenWindows, 2)
		s.Equal("09:00", response.OpenWindows[0].Start)
		s.Equal("21:00", response.OpenWindows[1].End)
	})

	s.Run("success: fully blocked day returns empty windows", func() {
		s.mockQueries.EXPECT().ListOpenWindows(gomock.Any(), "studio_a", "2026-09-10").
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.OpenWindows)
	})

	s.Run("error: 400 Bad Request when studio or date is missing", func() {
		for _, partial := range []string{"/availability", "/availability?studio=studio_a", "/availability?date=2026-09-10"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, partial, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Studio and date are required")
		}
	})

	s.Run("error: 400 Bad Request for unknown studio", func() {
		s.mockQueries.EXPECT().ListOpenWindows(gomock.Any(), "studio_z", "2026-09-10").
			Return(nil, queries.ErrInvalidAvailabilityQuery).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?studio=studio_z&date=2026-09-10", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid studio or date")
	})

	s.Run("error: 500 Internal Server Error on store failure", func() {
		s.mockQueries.EXPECT().ListOpenWindows(gomock.Any(), "studio_a", "2026-09-10").
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}
