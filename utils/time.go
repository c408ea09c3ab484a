package utils

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// PickupWindow is the normalized form of the date and time-of-day fields a
// provider submits: the date at midnight plus full start and end timestamps
// on that date.
type PickupWindow struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// CombinePickupWindow builds a PickupWindow from a "2006-01-02" date and two
// "15:04" times of day.
func CombinePickupWindow(date, start, end string) (PickupWindow, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return PickupWindow{}, fmt.Errorf("invalid pickup_date %q: expected YYYY-MM-DD", date)
	}
	startClock, err := time.Parse(timeLayout, start)
	if err != nil {
		return PickupWindow{}, fmt.Errorf("invalid pickup_window_start %q: expected HH:MM", start)
	}
	endClock, err := time.Parse(timeLayout, end)
	if err != nil {
		return PickupWindow{}, fmt.Errorf("invalid pickup_window_end %q: expected HH:MM", end)
	}

	return PickupWindow{
		Date:  day,
		Start: day.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute),
		End:   day.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute),
	}, nil
}
