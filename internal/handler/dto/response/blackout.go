package response

import (
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type BlackoutResponse struct {
	ID        uuid.UUID `json:"id"`
	Studio    string    `json:"studio"`
	Date      string    `json:"date"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type BulkBlackoutResponse struct {
	Created        int64    `json:"created"`
	SurvivingDates []string `json:"surviving_dates"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

func FromBlackoutSlot(s *blackout.Slot) *BlackoutResponse {
	return &BlackoutResponse{
		ID:        s.ID,
		Studio:    s.Studio.String(),
		Date:      s.Date.Format(booking.DateLayout),
		Start:     booking.FromMinutes(s.StartMin),
		End:       booking.FromMinutes(s.EndMin),
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}
