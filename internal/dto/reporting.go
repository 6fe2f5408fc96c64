package dto

import "time"

// AsOfParams selects the date of a point-in-time report. Defaults to today.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
}

// PeriodParams selects the window of a period report.
type PeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" binding:"required"`
}
