package models

// StatsReport is the rollup returned by the stats aggregator.
// Field names follow the JSON the frontend already consumes.
type StatsReport struct {
	TotalHours       float64 `json:"totalHours"`
	TotalEarnings    float64 `json:"totalEarnings"`
	GlobalHourlyRate float64 `json:"globalHourlyRate"`

	WeekHours    float64 `json:"weekHours"`
	WeekEarnings float64 `json:"weekEarnings"`
	WeekGames    int64   `json:"weekGames"`
	WeekHands    int64   `json:"weekHands"`

	MonthEarnings float64 `json:"monthEarnings"`

	WeekROI float64 `json:"weekROI"`

	// DaysThisWeek counts sessions in the week window, not distinct days.
	DaysThisWeek int `json:"daysThisWeek"`
}
