//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"
	"studio-booking/internal/handler/api"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/commands"
	"studio-booking/tests/common/httptest"
	"studio-booking/tests/common/testutil"
	commandsmock "studio-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BlackoutHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockCmds *commandsmock.MockBlackoutCommands
	handler  *api.BlackoutHandler
}

func (s *BlackoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockBlackoutCommands(s.mockCtrl)
	s.handler = api.NewBlackoutHandler(s.mockCmds)

	// Mock staff authentication middleware for testing
	staffAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("staff_id", "staff-1")
		c.Set("is_staff", true)
		c.Next()
	}

	// Setup routes
	s.router.POST("/blackouts", staffAuth, s.handler.Create)
	s.router.POST("/blackouts/bulk", staffAuth, s.handler.BulkCreate)
	s.router.DELETE("/blackouts", staffAuth, s.handler.DeleteRange)
	s.router.DELETE("/blackouts/:id", staffAuth, s.handler.Delete)
}

func (s *BlackoutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBlackoutHandlerSuite(t *testing.T) {
	suite.Run(t, new(BlackoutHandlerTestSuite))
}

func validBlackoutBody() map[string]any {
	return map[string]any{
		"studio": "studio_b",
		"date":   "2026-09-15",
		"start":  "10:00",
		"end":    "13:00",
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BlackoutHandlerTestSuite) TestCreate() {
	url := "/blackouts"

	slot, err := blackout.NewSlot(booking.StudioB, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), 10*60, 13*60, "staff-1")
	s.Require().NoError(err)

	s.Run("success: returns 201 Created with BlackoutResponse", func() {
		s.mockCmds.EXPECT().Create(gomock.Any(), commands.CreateBlackoutInput{
			Studio:    "studio_b",
			Date:      "2026-09-15",
			Start:     "10:00",
			End:       "13:00",
			CreatedBy: "staff-1",
		}).Return(slot, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBlackoutBody(), "staff-token")

		var response resdto.BlackoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(slot.ID, response.ID)
		s.Equal("studio_b", response.Studio)
		s.Equal("2026-09-15", response.Date)
		s.Equal("10:00", response.Start)
		s.Equal("13:00", response.End)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBlackoutBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, field := range []string{"studio", "date", "start", "end"} {
			s.Run("missing field: "+field, func() {
				body := testutil.DtoMap(s.T(), validBlackoutBody(), testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "staff-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "duplicate slot",
				commandsError:  errs.Mark(errs.New("unique constraint on (studio, date, slot)"), commands.ErrDuplicateBlackout),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Blackout already exists for this slot",
			},
			{
				name:           "invalid fields",
				commandsError:  commands.ErrMissingFields,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Studio, dates, start and end are required",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, validBlackoutBody(), "staff-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestBulkCreate
// ================================================================================

func (s *BlackoutHandlerTestSuite) TestBulkCreate() {
	url := "/blackouts/bulk"

	body := map[string]any{
		"studio": "studio_b",
		"dates":  []string{"2026-09-15", "2026-09-16", "2026-09-17"},
		"start":  "10:00",
		"end":    "13:00",
	}

	s.Run("success: reports created count and surviving dates", func() {
		s.mockCmds.EXPECT().BulkCreate(gomock.Any(), commands.BulkCreateBlackoutInput{
			Studio:    "studio_b",
			Dates:     []string{"2026-09-15", "2026-09-16", "2026-09-17"},
			Start:     "10:00",
			End:       "13:00",
			CreatedBy: "staff-1",
		}).Return(&commands.BulkBlackoutResult{
			Created:        2,
			SurvivingDates: []string{"2026-09-15", "2026-09-17"},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "staff-token")

		var response resdto.BulkBlackoutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(int64(2), response.Created)
		s.Equal([]string{"2026-09-15", "2026-09-17"}, response.SurvivingDates)
	})

	s.Run("error: 400 Bad Request for empty dates", func() {
		emptyDates := testutil.DtoMap(s.T(), body, testutil.Field("dates", []string{}))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, emptyDates, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "all dates in the past",
				commandsError:  commands.ErrAllDatesInPast,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "All requested dates are in the past",
			},
			{
				name:           "all dates conflicted",
				commandsError:  errs.Mark(errs.New("2 dates overlap confirmed reservations"), commands.ErrAllSlotsConflicted),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "All surviving dates conflict with confirmed reservations",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCmds.EXPECT().BulkCreate(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "staff-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *BlackoutHandlerTestSuite) TestDelete() {
	blackoutID := uuid.New()
	url := "/blackouts/" + blackoutID.String()

	s.Run("success: returns deleted count", func() {
		s.mockCmds.EXPECT().DeleteByID(gomock.Any(), blackoutID).
			Return(int64(1), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "staff-token")

		var response resdto.DeletedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(1), response.Deleted)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/blackouts/invalid-uuid", nil, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing blackout", func() {
		s.mockCmds.EXPECT().DeleteByID(gomock.Any(), blackoutID).
			Return(int64(0), commands.ErrBlackoutNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Blackout not found")
	})
}

// ================================================================================
// TestDeleteRange
// ================================================================================

func (s *BlackoutHandlerTestSuite) TestDeleteRange() {
	url := "/blackouts"

	body := map[string]any{
		"studio": "studio_b",
		"from":   "2026-09-15",
		"to":     "2026-09-20",
	}

	s.Run("success: returns deleted count", func() {
		s.mockCmds.EXPECT().DeleteRange(gomock.Any(), commands.DeleteBlackoutRangeInput{
			Studio: "studio_b",
			From:   "2026-09-15",
			To:     "2026-09-20",
		}).Return(int64(3), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, body, "staff-token")

		var response resdto.DeletedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(3), response.Deleted)
	})

	s.Run("error: 400 Bad Request for inverted range", func() {
		s.mockCmds.EXPECT().DeleteRange(gomock.Any(), gomock.Any()).
			Return(int64(0), commands.ErrMissingFields).Times(1)

		inverted := testutil.DtoMap(s.T(), body, testutil.Field("from", "2026-09-21"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, inverted, "staff-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Studio, dates, start and end are required")
	})
}
