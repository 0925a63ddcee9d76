package booking

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidPhone = errors.New("phone must normalize to exactly 10 digits")

// Phone is a normalized 10-digit contact number.
type Phone string

// NewPhone strips every non-digit character and requires exactly 10 digits to
// remain.
func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 10 {
		return "", ErrInvalidPhone
	}
	return Phone(digits), nil
}

func (p Phone) String() string {
	return string(p)
}

// TotalAmount derives the rounded monetary total for a slot, or nil when no
// rate was supplied.
func TotalAmount(ratePerHour *float64, startMin, endMin int) *int64 {
	if ratePerHour == nil {
		return nil
	}
	hours := float64(endMin-startMin) / 60.0
	total := int64(math.Round(*ratePerHour * hours))
	return &total
}
