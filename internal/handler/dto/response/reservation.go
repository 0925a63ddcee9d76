package response

import (
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	Studio      string     `json:"studio"`
	Date        string     `json:"date"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	Status      string     `json:"status"`
	Phone       string     `json:"phone"`
	Name        *string    `json:"name,omitempty"`
	Email       *string    `json:"email,omitempty"`
	RatePerHour *float64   `json:"rate_per_hour,omitempty"`
	TotalAmount *int64     `json:"total_amount,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Field names line up 1:1 with the read model.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}

// FromReservation renders a command result without a read-model round trip.
func FromReservation(res *booking.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          res.ID(),
		Studio:      res.Studio().String(),
		Date:        res.Date().Format(booking.DateLayout),
		Start:       booking.FromMinutes(res.StartMin()),
		End:         booking.FromMinutes(res.EndMin()),
		Status:      res.Status().String(),
		Phone:       res.Phone().String(),
		Name:        res.Name(),
		Email:       res.Email(),
		RatePerHour: res.RatePerHour(),
		TotalAmount: res.TotalAmount(),
		CreatedAt:   res.CreatedAt(),
		UpdatedAt:   res.UpdatedAt(),
		CancelledAt: res.CancelledAt(),
	}
}
