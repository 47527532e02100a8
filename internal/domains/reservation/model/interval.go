package model

import (
	"errors"
	"fmt"
	"rental/shared/constant"
	"time"
)

var ErrInvalidInterval = errors.New("start date must not be after end date")

// Interval is a closed range of calendar days. Both ends are inclusive, so a
// stay from the 1st to the 5th occupies five days and collides with anything
// that touches the 5th.
type Interval struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Date truncates t to its calendar day, expressed as UTC midnight.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewInterval(start, end time.Time) (Interval, error) {
	start, end = Date(start), Date(end)

	if start.After(end) {
		return Interval{}, ErrInvalidInterval
	}

	return Interval{Start: start, End: end}, nil
}

// ParseInterval builds an interval from two YYYY-MM-DD strings.
func ParseInterval(start, end string) (Interval, error) {
	startDate, err := time.Parse(constant.CalendarFormat, start)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}

	endDate, err := time.Parse(constant.CalendarFormat, end)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	return NewInterval(startDate, endDate)
}

// Overlaps reports whether the two intervals share at least one day.
func Overlaps(a, b Interval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// Intersection returns the shared days of a and b. ok is false when they do not overlap.
func Intersection(a, b Interval) (Interval, bool) {
	if !Overlaps(a, b) {
		return Interval{}, false
	}

	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}

	end := a.End
	if b.End.Before(end) {
		end = b.End
	}

	return Interval{Start: start, End: end}, true
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

func (i Interval) Equal(other Interval) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// Days is the number of calendar days covered, at least one.
func (i Interval) Days() int {
	return int(i.End.Sub(i.Start).Hours()/24) + 1
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start.Format(constant.CalendarFormat), i.End.Format(constant.CalendarFormat))
}
