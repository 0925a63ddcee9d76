package request

import (
	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	Studio      string   `json:"studio" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	Name        *string  `json:"name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	RatePerHour *float64 `json:"rate_per_hour,omitempty"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		Studio:      r.Studio,
		Date:        r.Date,
		Start:       r.Start,
		End:         r.End,
		Phone:       r.Phone,
		Name:        r.Name,
		Email:       r.Email,
		RatePerHour: r.RatePerHour,
	}
}

type ModifyReservationRequest struct {
	Phone       string   `json:"phone" binding:"required"`
	Studio      string   `json:"studio" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
	Name        *string  `json:"name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	RatePerHour *float64 `json:"rate_per_hour,omitempty"`
}

func (r ModifyReservationRequest) ToInput(id uuid.UUID) commands.ModifyReservationInput {
	return commands.ModifyReservationInput{
		ReservationID: id,
		Phone:         r.Phone,
		Studio:        r.Studio,
		Date:          r.Date,
		Start:         r.Start,
		End:           r.End,
		Name:          r.Name,
		Email:         r.Email,
		RatePerHour:   r.RatePerHour,
	}
}

type CancelReservationRequest struct {
	// Optional when the caller holds a staff token.
	Phone  string  `json:"phone,omitempty"`
	Reason *string `json:"reason,omitempty"`
}
