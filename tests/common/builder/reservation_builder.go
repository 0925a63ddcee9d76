//go:build unit || e2e

package builder

import (
	"time"

	"studio-booking/internal/domain/booking"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// ReservationBuilder assembles a valid reservation and lets individual tests
// mutate one aspect at a time.
type ReservationBuilder struct {
	studio      booking.Studio
	date        time.Time
	startMin    int
	endMin      int
	phone       string
	name        *string
	email       *string
	ratePerHour *float64
}

func NewReservationBuilder() *ReservationBuilder {
	name := "Asha Rao"
	email := "asha@example.com"
	rate := 500.0
	return &ReservationBuilder{
		studio:      booking.StudioA,
		date:        time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		startMin:    10 * 60,
		endMin:      12 * 60,
		phone:       "9876543210",
		name:        &name,
		email:       &email,
		ratePerHour: &rate,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *ReservationBuilder) WithStudio(s booking.Studio) *ReservationBuilder {
	b.studio = s
	return b
}

func (b *ReservationBuilder) WithDate(d time.Time) *ReservationBuilder {
	b.date = d
	return b
}

func (b *ReservationBuilder) WithInterval(startMin, endMin int) *ReservationBuilder {
	b.startMin = startMin
	b.endMin = endMin
	return b
}

func (b *ReservationBuilder) WithPhone(phone string) *ReservationBuilder {
	b.phone = phone
	return b
}

func (b *ReservationBuilder) WithRate(rate *float64) *ReservationBuilder {
	b.ratePerHour = rate
	return b
}

func (b *ReservationBuilder) BuildDomain() (*booking.Reservation, error) {
	phone, err := booking.NewPhone(b.phone)
	if err != nil {
		return nil, err
	}
	return booking.NewReservation(b.studio, b.date, b.startMin, b.endMin, phone, b.name, b.email, b.ratePerHour)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Studio:      b.studio.String(),
		Date:        b.date.Format(booking.DateLayout),
		Start:       booking.FromMinutes(b.startMin),
		End:         booking.FromMinutes(b.endMin),
		Phone:       b.phone,
		Name:        b.name,
		Email:       b.email,
		RatePerHour: b.ratePerHour,
	}
}

func (b *ReservationBuilder) BuildModifyRequestDTO() reqdto.ModifyReservationRequest {
	return reqdto.ModifyReservationRequest{
		Phone:       b.phone,
		Studio:      b.studio.String(),
		Date:        b.date.Format(booking.DateLayout),
		Start:       booking.FromMinutes(b.startMin),
		End:         booking.FromMinutes(b.endMin),
		Name:        b.name,
		Email:       b.email,
		RatePerHour: b.ratePerHour,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	var total *int64
	if b.ratePerHour != nil {
		v := int64(float64(b.endMin-b.startMin) / 60.0 * *b.ratePerHour)
		total = &v
	}
	return &queries.ReservationView{
		ID:          uuid.New(),
		Studio:      b.studio.String(),
		Date:        b.date.Format(booking.DateLayout),
		Start:       booking.FromMinutes(b.startMin),
		End:         booking.FromMinutes(b.endMin),
		Status:      booking.StatusConfirmed.String(),
		Phone:       b.phone,
		Name:        b.name,
		Email:       b.email,
		RatePerHour: b.ratePerHour,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
