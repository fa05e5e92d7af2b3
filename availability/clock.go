package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used by the backend and the navigation params.
const DateLayout = "2006-01-02"

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now in Location, or in local time when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location != nil {
		return time.Now().In(c.Location)
	}
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// TimeOfDay is minutes since midnight. Values past 24:00 are representable and left as they are.
type TimeOfDay int

// ParseTimeOfDay reads "HH:MM" or "HH:MM:SS"; seconds are ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns t moved forward by minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Of returns the time of day of tm.
func Of(tm time.Time) TimeOfDay {
	return TimeOfDay(tm.Hour()*60 + tm.Minute())
}

// ParseDate reads an ISO calendar date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, date, loc)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Day is one entry of the date strip shown above the slot picker.
type Day struct {
	Weekday  string `json:"day"`
	Date     int    `json:"date"`
	Month    string `json:"month"`
	FullDate string `json:"fullDate"`
}

// NextDays returns n consecutive days starting today.
func NextDays(clock Clock, n int) []Day {
	today := clock.Now()
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, Day{
			Weekday:  d.Format("Mon"),
			Date:     d.Day(),
			Month:    d.Format("Jan"),
			FullDate: d.Format(DateLayout),
		})
	}
	return days
}
