package response

import (
	"studio-booking/internal/usecase/queries"
)

type OpenWindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityResponse struct {
	Studio      string               `json:"studio"`
	Date        string               `json:"date"`
	OpenWindows []OpenWindowResponse `json:"open_windows"`
}

func FromOpenWindows(studio, date string, windows []queries.OpenWindow) *AvailabilityResponse {
	out := make([]OpenWindowResponse, len(windows))
	for i, w := range windows {
		out[i] = OpenWindowResponse{Start: w.Start, End: w.End}
	}
	return &AvailabilityResponse{Studio: studio, Date: date, OpenWindows: out}
}
