package entity

import "time"

// DateRange is a closed date interval, midnight UTC on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartMillis returns the range start as unix milliseconds.
func (d DateRange) StartMillis() int64 {
	return d.Start.UnixMilli()
}

// EndMillis returns the range end as unix milliseconds.
func (d DateRange) EndMillis() int64 {
	return d.End.UnixMilli()
}

// CostQuery describes one view query against a cost source. Dates is nil when
// the caller asked to omit the date filter entirely.
type CostQuery struct {
	ViewID  string
	GroupBy string
	Dates   *DateRange
}
