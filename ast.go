package openhours

import (
	"fmt"
	"time"
)

// DefaultRule is the schedule used for empty input: open all week.
const DefaultRule = "su-sa 00:00-24:00"

// dayCodes maps the two-letter day codes to weekday indices.
var dayCodes = map[string]time.Weekday{
	"su": time.Sunday,
	"mo": time.Monday,
	"tu": time.Tuesday,
	"we": time.Wednesday,
	"th": time.Thursday,
	"fr": time.Friday,
	"sa": time.Saturday,
}

// DayCode returns the two-letter code of a weekday ("su" .. "sa").
func DayCode(w time.Weekday) string {
	codes := [7]string{"su", "mo", "tu", "we", "th", "fr", "sa"}
	return codes[((int(w)%7)+7)%7]
}

// ParseDayCode parses a two-letter day code. Input must already be lowercase.
func ParseDayCode(s string) (time.Weekday, bool) {
	w, ok := dayCodes[s]
	return w, ok
}

// TimeOfDay represents a wall-clock time. Hour may be 24 only as 24:00:00,
// meaning midnight at the end of the day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (t TimeOfDay) String() string {
	if t.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Duration returns the offset of t from the start of its day.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second
}

// TimeRange is one "from-to" item of a rule.
type TimeRange struct {
	From TimeOfDay
	To   TimeOfDay
}

func (r TimeRange) String() string {
	return r.From.String() + "-" + r.To.String()
}

// Rule is a single "<day-set> <time-range-list>" clause.
type Rule struct {
	Days   []time.Weekday
	Ranges []TimeRange
	Span   Span
}

// ScheduleData is the parsed, not yet compiled form of a schedule.
type ScheduleData struct {
	// Input is the cleaned input the rules were read from.
	Input string
	Rules []Rule
}

// Interval is one open period of the reference week.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// StartDay returns the weekday on which the interval opens.
func (iv Interval) StartDay() time.Weekday {
	return iv.Start.Weekday()
}

// StartTime returns the time of day at which the interval opens.
func (iv Interval) StartTime() TimeOfDay {
	return timeOfDay(iv.Start)
}

// EndTime returns the time of day at which the interval closes.
// A close at midnight is reported as 24:00 of the previous day.
func (iv Interval) EndTime() TimeOfDay {
	tod := timeOfDay(iv.End)
	if tod == (TimeOfDay{}) {
		return TimeOfDay{Hour: 24}
	}
	return tod
}

// EndDay returns the weekday the closing time belongs to, treating a
// midnight close as the end of the previous day.
func (iv Interval) EndDay() time.Weekday {
	if timeOfDay(iv.End) == (TimeOfDay{}) {
		return iv.End.Add(-time.Nanosecond).Weekday()
	}
	return iv.End.Weekday()
}

func timeOfDay(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}
