package request

type CreateBlackoutRequest struct {
	Studio string `json:"studio" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
}

type BulkCreateBlackoutRequest struct {
	Studio string   `json:"studio" binding:"required"`
	Dates  []string `json:"dates" binding:"required,min=1"`
	Start  string   `json:"start" binding:"required"`
	End    string   `json:"end" binding:"required"`
}

type DeleteBlackoutRangeRequest struct {
	Studio string `json:"studio" binding:"required"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
}
